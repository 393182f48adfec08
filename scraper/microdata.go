package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/aluiziolira/go-scrape-recipes/parser"
)

var (
	microdataRecipeRe = regexp.MustCompile(`(?i)schema\.org/Recipe`)
	rdfaRecipeRe      = regexp.MustCompile(`(?i)Recipe`)
)

// extractMicrodata reads itemprop-annotated markup inside the first element
// typed as a schema.org Recipe.
func extractMicrodata(p *page) *models.Recipe {
	scope := recipeScope(p.doc)
	if scope == nil {
		return nil
	}

	recipe := &models.Recipe{
		Title:       parser.Clean(prop(scope, "name").Text()),
		Description: parser.Clean(prop(scope, "description").Text()),
	}

	if el := prop(scope, "recipeYield"); el.Length() > 0 {
		recipe.Servings = parser.ServingsFromText(attrOrText(el, "content"))
	}
	recipe.PrepTime = microdataDuration(scope, "prepTime")
	recipe.CookTime = microdataDuration(scope, "cookTime")
	recipe.TotalTime = microdataDuration(scope, "totalTime")
	parser.ApplyTotalTimeBackfill(recipe)

	ingredients := props(scope, "recipeIngredient")
	if ingredients.Length() == 0 {
		ingredients = props(scope, "ingredients")
	}
	recipe.Ingredients = cleanedTexts(ingredients)

	steps := props(scope, "recipeInstructions")
	if steps.Length() == 1 {
		if nested := props(steps, "text"); nested.Length() > 0 {
			steps = nested
		} else if items := steps.Find("li"); items.Length() > 0 {
			steps = items
		}
	}
	recipe.Steps = cleanedTexts(steps)

	if img := prop(scope, "image"); img.Length() > 0 {
		recipe.ImageURL = parser.ResolveURL(firstAttr(img, "src", "content", "href"), p.url)
	}
	return recipe
}

func recipeScope(doc *goquery.Document) *goquery.Selection {
	scope := doc.Find("[itemtype]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return microdataRecipeRe.MatchString(s.AttrOr("itemtype", ""))
	}).First()
	if scope.Length() > 0 {
		return scope
	}

	scope = doc.Find("[typeof]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return rdfaRecipeRe.MatchString(s.AttrOr("typeof", ""))
	}).First()
	if scope.Length() > 0 {
		return scope
	}
	return nil
}

func props(scope *goquery.Selection, name string) *goquery.Selection {
	return scope.Find(`[itemprop~="` + name + `"]`)
}

func prop(scope *goquery.Selection, name string) *goquery.Selection {
	return props(scope, name).First()
}

func microdataDuration(scope *goquery.Selection, name string) *int {
	el := prop(scope, name)
	if el.Length() == 0 {
		return nil
	}
	return parser.ParseDuration(attrOrText(el, "content", "datetime"))
}

// attrOrText returns the first non-empty attribute of el, falling back to
// its text.
func attrOrText(el *goquery.Selection, attrs ...string) string {
	if v := firstAttr(el, attrs...); v != "" {
		return v
	}
	return el.Text()
}

func firstAttr(el *goquery.Selection, attrs ...string) string {
	for _, name := range attrs {
		if v := strings.TrimSpace(el.AttrOr(name, "")); v != "" {
			return v
		}
	}
	return ""
}

func cleanedTexts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := parser.Clean(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}
