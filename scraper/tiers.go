package scraper

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/aluiziolira/go-scrape-recipes/models"
)

// page is one fetched document shared by every tier.
type page struct {
	url  string
	html string
	doc  *goquery.Document
}

type tier struct {
	method  models.Method
	extract func(p *page) *models.Recipe
}

// defaultTiers lists the extraction strategies in the order they are tried.
func defaultTiers() []tier {
	return []tier{
		{method: models.MethodLibrary, extract: extractLibrary},
		{method: models.MethodJSONLD, extract: extractJSONLD},
		{method: models.MethodMicrodata, extract: extractMicrodata},
		{method: models.MethodHeuristic, extract: extractHeuristic},
	}
}

// run returns the tier's recipe when it is valid. A panic inside the tier
// counts as no result.
func (t tier) run(p *page) (recipe *models.Recipe) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("extraction tier panicked",
				slog.String("method", string(t.method)),
				slog.String("url", p.url),
				slog.Any("panic", r),
			)
			recipe = nil
		}
	}()

	recipe = t.extract(p)
	if !recipe.Valid() {
		return nil
	}
	return recipe
}
