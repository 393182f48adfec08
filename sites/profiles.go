package sites

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type (
	stringFunc func(doc *goquery.Document) string
	listFunc   func(doc *goquery.Document) []string
)

type profile struct {
	name string
	// hosts are matched exactly or as a parent domain.
	hosts []string
	// marker is a selector whose presence identifies the markup.
	marker string

	title       stringFunc
	description stringFunc
	yields      stringFunc
	prepTime    stringFunc
	cookTime    stringFunc
	totalTime   stringFunc
	image       stringFunc
	ingredients listFunc
	steps       listFunc
}

func (p *profile) matches(host string, doc *goquery.Document) bool {
	for _, h := range p.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return p.marker != "" && doc.Find(p.marker).Length() > 0
}

// profiles are checked in order; the first match wins.
var profiles = []profile{
	{
		name:        "wprm",
		marker:      ".wprm-recipe",
		title:       text(".wprm-recipe-name"),
		description: text(".wprm-recipe-summary"),
		yields:      text(".wprm-recipe-servings"),
		prepTime:    text(".wprm-recipe-prep_time-container"),
		cookTime:    text(".wprm-recipe-cook_time-container"),
		totalTime:   text(".wprm-recipe-total_time-container"),
		image:       attr(".wprm-recipe-image img", "data-lazy-src", "src"),
		ingredients: list(".wprm-recipe-ingredient"),
		steps:       list(".wprm-recipe-instruction-text"),
	},
	{
		name:        "tasty-recipes",
		marker:      ".tasty-recipes",
		title:       text(".tasty-recipes-title"),
		description: text(".tasty-recipes-description"),
		yields:      text(".tasty-recipes-yield"),
		prepTime:    text(".tasty-recipes-prep-time"),
		cookTime:    text(".tasty-recipes-cook-time"),
		totalTime:   text(".tasty-recipes-total-time"),
		image:       attr(".tasty-recipes-image img", "data-lazy-src", "src"),
		ingredients: list(".tasty-recipes-ingredients li"),
		steps:       list(".tasty-recipes-instructions li"),
	},
	{
		name:        "hfresh",
		hosts:       []string{"hfresh.info"},
		title:       first(meta("og:title"), text("title")),
		description: meta("description"),
		prepTime:    hfreshPrepTime,
		image:       meta("og:image"),
		ingredients: hfreshIngredients,
		steps:       hfreshSteps,
	},
}

func text(selector string) stringFunc {
	return func(doc *goquery.Document) string {
		return doc.Find(selector).First().Text()
	}
}

func attr(selector string, names ...string) stringFunc {
	return func(doc *goquery.Document) string {
		sel := doc.Find(selector).First()
		for _, name := range names {
			if v := strings.TrimSpace(sel.AttrOr(name, "")); v != "" {
				return v
			}
		}
		return ""
	}
}

func meta(key string) stringFunc {
	return func(doc *goquery.Document) string {
		if v, ok := doc.Find(fmt.Sprintf(`meta[name="%s"]`, key)).Attr("content"); ok {
			return v
		}
		if v, ok := doc.Find(fmt.Sprintf(`meta[property="%s"]`, key)).Attr("content"); ok {
			return v
		}
		return ""
	}
}

func first(fns ...stringFunc) stringFunc {
	return func(doc *goquery.Document) string {
		for _, fn := range fns {
			if v := strings.TrimSpace(fn(doc)); v != "" {
				return v
			}
		}
		return ""
	}
}

func list(selector string) listFunc {
	return func(doc *goquery.Document) []string {
		var out []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			out = append(out, s.Text())
		})
		return out
	}
}

var (
	hfreshMinutesRe = regexp.MustCompile(`^\s*\d+\s*min\s*$`)
	hfreshStepNumRe = regexp.MustCompile(`^\d+$`)
)

// hfreshPrepTime reads the "NN min" fact from the recipe header bar.
func hfreshPrepTime(doc *goquery.Document) string {
	var res string
	doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := strings.TrimSpace(s.Text())
		if hfreshMinutesRe.MatchString(t) {
			res = t
			return false
		}
		return true
	})
	return res
}

// hfreshIngredients renders each ingredient row as "<qty> <name>".
func hfreshIngredients(doc *goquery.Document) []string {
	var out []string
	seen := map[string]struct{}{}
	doc.Find("div.flex.items-center.gap-3").Each(func(_ int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find("img[alt]").First().AttrOr("alt", ""))
		if name == "" {
			return
		}
		ps := row.Find("p")
		if ps.Length() < 2 {
			return
		}
		qty := strings.TrimSpace(ps.Last().Text())
		if qty == "" || !strings.ContainsAny(qty, "0123456789") {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, qty+" "+name)
	})
	return out
}

// hfreshSteps walks the numbered step blocks, emitting each bullet, or the
// block heading when a step has no bullets.
func hfreshSteps(doc *goquery.Document) []string {
	var out []string
	doc.Find("div.flex.gap-4").Each(func(_ int, block *goquery.Selection) {
		num := strings.TrimSpace(block.Children().First().Text())
		if !hfreshStepNumRe.MatchString(num) {
			return
		}
		content := block.Children().Eq(1)
		if content.Length() == 0 {
			return
		}
		bullets := content.Find("ul li")
		if bullets.Length() == 0 {
			out = append(out, content.Find("p").First().Text())
			return
		}
		bullets.Each(func(_ int, li *goquery.Selection) {
			out = append(out, li.Text())
		})
	})
	return out
}
