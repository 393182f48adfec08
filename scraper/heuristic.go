package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/aluiziolira/go-scrape-recipes/parser"
)

// Selectors common on recipe blogs, most specific first.
var (
	ingredientSelectors = []string{
		".recipe-ingredients li", ".ingredients li", ".ingredient-list li",
		".wprm-recipe-ingredient", ".tasty-recipe-ingredients li",
		`[class*="ingredient"] li`, ".recipe__ingredients li",
		".ingredientes li", ".lista-ingredientes li",
	}
	stepSelectors = []string{
		".recipe-instructions li", ".instructions li", ".directions li",
		".wprm-recipe-instruction", ".tasty-recipe-instructions li",
		`[class*="instruction"] li`, `[class*="direction"] li`,
		".recipe__instructions li", ".preparacion li", ".pasos li",
		".recipe-instructions p", ".instructions p",
	}
)

const (
	minIngredientMatches = 2
	minStepMatches       = 1
)

// extractHeuristic is the last resort: Open Graph tags for the header fields
// and the first selector that matches enough elements for each list.
func extractHeuristic(p *page) *models.Recipe {
	doc := p.doc

	title := metaContent(doc, "property", "og:title")
	if title == "" {
		title = doc.Find("h1").First().Text()
	}
	description := metaContent(doc, "property", "og:description")
	if description == "" {
		description = metaContent(doc, "name", "description")
	}

	return &models.Recipe{
		Title:       parser.Clean(title),
		Description: parser.Clean(description),
		ImageURL:    parser.ResolveURL(metaContent(doc, "property", "og:image"), p.url),
		Ingredients: firstMatching(doc, ingredientSelectors, minIngredientMatches),
		Steps:       firstMatching(doc, stepSelectors, minStepMatches),
	}
}

func metaContent(doc *goquery.Document, attr, key string) string {
	return doc.Find(`meta[` + attr + `="` + key + `"]`).First().AttrOr("content", "")
}

// firstMatching returns the cleaned texts of the first selector matching at
// least atLeast elements.
func firstMatching(doc *goquery.Document, selectors []string, atLeast int) []string {
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() >= atLeast {
			return cleanedTexts(sel)
		}
	}
	return nil
}
