// Package sites is a site-pattern recipe scraping library. Each profile knows
// the markup of one recipe plugin or website; ScrapeHTML picks the first
// profile that recognizes a page and exposes its fields through accessors
// that fail independently of each other.
package sites

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/go-scrape-recipes/parser"
)

var (
	// ErrUnsupported is returned when no profile recognizes the page.
	ErrUnsupported = errors.New("sites: no profile matches page")
	// ErrFieldMissing is returned by an accessor whose field is absent.
	ErrFieldMissing = errors.New("sites: field not found")
)

// Scraper exposes the recipe fields of one recognized page.
type Scraper interface {
	Site() string
	Title() (string, error)
	Description() (string, error)
	Yields() (string, error)
	PrepTime() (int, error)
	CookTime() (int, error)
	TotalTime() (int, error)
	Ingredients() ([]string, error)
	InstructionsList() ([]string, error)
	Instructions() (string, error)
	Image() (string, error)
}

// ScrapeHTML parses rawHTML and returns a Scraper for the first profile that
// matches the page host or markup.
func ScrapeHTML(rawHTML, pageURL string) (Scraper, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	for i := range profiles {
		p := &profiles[i]
		if p.matches(host, doc) {
			return &pageScraper{profile: p, doc: doc, base: pageURL}, nil
		}
	}
	return nil, ErrUnsupported
}

type pageScraper struct {
	profile *profile
	doc     *goquery.Document
	base    string
}

func (s *pageScraper) Site() string { return s.profile.name }

func (s *pageScraper) Title() (string, error) { return s.text("title", s.profile.title) }

func (s *pageScraper) Description() (string, error) {
	return s.text("description", s.profile.description)
}

func (s *pageScraper) Yields() (string, error) { return s.text("yields", s.profile.yields) }

func (s *pageScraper) PrepTime() (int, error) { return s.minutes("prep time", s.profile.prepTime) }

func (s *pageScraper) CookTime() (int, error) { return s.minutes("cook time", s.profile.cookTime) }

func (s *pageScraper) TotalTime() (int, error) {
	return s.minutes("total time", s.profile.totalTime)
}

func (s *pageScraper) Ingredients() ([]string, error) {
	return s.list("ingredients", s.profile.ingredients)
}

func (s *pageScraper) InstructionsList() ([]string, error) {
	return s.list("instructions", s.profile.steps)
}

func (s *pageScraper) Instructions() (string, error) {
	steps, err := s.InstructionsList()
	if err != nil {
		return "", err
	}
	return strings.Join(steps, "\n"), nil
}

func (s *pageScraper) Image() (string, error) {
	img, err := s.text("image", s.profile.image)
	if err != nil {
		return "", err
	}
	return parser.ResolveURL(img, s.base), nil
}

func (s *pageScraper) text(field string, fn stringFunc) (string, error) {
	if fn == nil {
		return "", fmt.Errorf("%s %s: %w", s.profile.name, field, ErrFieldMissing)
	}
	v := parser.Clean(fn(s.doc))
	if v == "" {
		return "", fmt.Errorf("%s %s: %w", s.profile.name, field, ErrFieldMissing)
	}
	return v, nil
}

func (s *pageScraper) list(field string, fn listFunc) ([]string, error) {
	if fn == nil {
		return nil, fmt.Errorf("%s %s: %w", s.profile.name, field, ErrFieldMissing)
	}
	var out []string
	for _, item := range fn(s.doc) {
		if cleaned := parser.Clean(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %s: %w", s.profile.name, field, ErrFieldMissing)
	}
	return out, nil
}

func (s *pageScraper) minutes(field string, fn stringFunc) (int, error) {
	raw, err := s.text(field, fn)
	if err != nil {
		return 0, err
	}
	n, ok := ParseMinutes(raw)
	if !ok {
		return 0, fmt.Errorf("%s %s %q: %w", s.profile.name, field, raw, ErrFieldMissing)
	}
	return n, nil
}

var (
	hoursRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:hours|hour|horas|hora|hrs|hr|h)`)
	minutesRe = regexp.MustCompile(`(?i)(\d+)\s*(?:minutes|minute|minutos|minuto|mins|min|m)`)
)

// ParseMinutes reads a human duration such as "1 hr 15 mins" or an ISO-8601
// duration into minutes.
func ParseMinutes(text string) (int, bool) {
	if d := parser.ParseDuration(text); d != nil {
		return *d, true
	}

	total, found := 0, false
	if m := hoursRe.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		total += h * 60
		found = true
	}
	if m := minutesRe.FindStringSubmatch(text); m != nil {
		mins, _ := strconv.Atoi(m[1])
		total += mins
		found = true
	}
	if !found || total <= 0 {
		return 0, false
	}
	return total, true
}
