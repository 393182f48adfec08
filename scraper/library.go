package scraper

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/aluiziolira/go-scrape-recipes/parser"
	"github.com/aluiziolira/go-scrape-recipes/sites"
)

// extractLibrary reads the page through the site-pattern library. Each
// accessor is optional; only a missing title and content fails the tier.
func extractLibrary(p *page) *models.Recipe {
	site, err := sites.ScrapeHTML(p.html, p.url)
	if err != nil {
		if !errors.Is(err, sites.ErrUnsupported) {
			slog.Debug("site library failed", slog.String("url", p.url), slog.Any("error", err))
		}
		return nil
	}

	recipe := &models.Recipe{}
	recipe.Title, _ = field(p, "title", site.Title)
	recipe.Description, _ = field(p, "description", site.Description)
	if yields, ok := field(p, "yields", site.Yields); ok {
		recipe.Servings = parser.ServingsFromText(yields)
	}
	recipe.PrepTime = minutesField(p, "prep time", site.PrepTime)
	recipe.CookTime = minutesField(p, "cook time", site.CookTime)
	recipe.TotalTime = minutesField(p, "total time", site.TotalTime)
	parser.ApplyTotalTimeBackfill(recipe)

	recipe.Ingredients, _ = field(p, "ingredients", site.Ingredients)

	if steps, ok := field(p, "instructions list", site.InstructionsList); ok && len(steps) > 0 {
		recipe.Steps = steps
	} else if text, ok := field(p, "instructions", site.Instructions); ok {
		recipe.Steps = parser.SplitLines(text)
	}

	if img, ok := field(p, "image", site.Image); ok {
		recipe.ImageURL = img
	}
	return recipe
}

// field calls one library accessor, treating an error or panic as absence.
func field[T any](p *page, name string, get func() (T, error)) (value T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("site field panicked", slog.String("field", name), slog.String("url", p.url), slog.Any("panic", r))
			var zero T
			value, ok = zero, false
		}
	}()

	v, err := get()
	if err != nil {
		if !errors.Is(err, sites.ErrFieldMissing) {
			slog.Debug("site field failed", slog.String("field", name), slog.Any("error", fmt.Errorf("%s: %w", p.url, err)))
		}
		return value, false
	}
	return v, true
}

func minutesField(p *page, name string, get func() (int, error)) *int {
	n, ok := field(p, name, get)
	if !ok || n <= 0 {
		return nil
	}
	return &n
}
