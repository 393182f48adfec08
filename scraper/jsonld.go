package scraper

import (
	"encoding/json"
	"log/slog"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/aluiziolira/go-scrape-recipes/parser"
)

// extractJSONLD returns the first valid schema.org Recipe found in the
// page's ld+json blocks. Blocks that fail to decode are skipped.
func extractJSONLD(p *page) *models.Recipe {
	var found *models.Recipe
	p.doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}

		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			slog.Debug("skipping malformed ld+json block", slog.Int("index", i), slog.String("url", p.url), slog.Any("error", err))
			return true
		}

		for _, candidate := range recipeCandidates(payload) {
			recipe := recipeFromJSONLD(candidate, p.url)
			if recipe.Valid() {
				found = recipe
				return false
			}
		}
		return true
	})
	return found
}

// recipeCandidates collects every object typed as a Recipe from a bare
// object, an array, or an object wrapping an @graph array.
func recipeCandidates(payload any) []map[string]any {
	if obj, ok := payload.(map[string]any); ok {
		if graph, ok := obj["@graph"]; ok {
			payload = graph
		}
	}

	var out []map[string]any
	switch val := payload.(type) {
	case []any:
		for _, item := range val {
			if obj, ok := item.(map[string]any); ok && typeMentions(obj["@type"], "Recipe") {
				out = append(out, obj)
			}
		}
	case map[string]any:
		if typeMentions(val["@type"], "Recipe") {
			out = append(out, val)
		}
	}
	return out
}

func typeMentions(v any, name string) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(t, name)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.Contains(s, name) {
				return true
			}
		}
	}
	return false
}

func recipeFromJSONLD(obj map[string]any, pageURL string) *models.Recipe {
	recipe := &models.Recipe{
		Title:       parser.CleanValue(obj["name"]),
		Description: parser.CleanValue(obj["description"]),
		Servings:    parser.ExtractServings(obj["recipeYield"]),
		PrepTime:    durationValue(obj["prepTime"]),
		CookTime:    durationValue(obj["cookTime"]),
		TotalTime:   durationValue(obj["totalTime"]),
		Ingredients: parser.NormalizeIngredients(obj["recipeIngredient"]),
		Steps:       parser.NormalizeSteps(obj["recipeInstructions"]),
		ImageURL:    parser.ResolveURL(imageValue(obj["image"]), pageURL),
	}
	parser.ApplyTotalTimeBackfill(recipe)
	return recipe
}

func durationValue(v any) *int {
	switch val := v.(type) {
	case string:
		return parser.ParseDuration(val)
	case float64:
		if n := int(math.Round(val)); n > 0 {
			return &n
		}
	}
	return nil
}

// imageValue reads an image given as a URL string, a list of them, or an
// ImageObject.
func imageValue(v any) string {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		v = list[0]
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		if s, ok := val["url"].(string); ok && s != "" {
			return strings.TrimSpace(s)
		}
		if s, ok := val["contentUrl"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
