// Package models defines data structures for the scraper.
package models

import "time"

// Method identifies the extraction tier that produced a recipe.
type Method string

const (
	MethodLibrary   Method = "library"
	MethodJSONLD    Method = "json-ld"
	MethodMicrodata Method = "microdata"
	MethodHeuristic Method = "heuristic"
)

// Recipe is the normalized record produced by a single extraction tier.
type Recipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Servings    *int     `json:"servings,omitempty"`
	PrepTime    *int     `json:"prep_time_min,omitempty"`
	CookTime    *int     `json:"cook_time_min,omitempty"`
	TotalTime   *int     `json:"total_time_min,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	ImageURL    string   `json:"image_url"`
}

// Valid reports whether the recipe has a title and at least one ingredient or step.
func (r *Recipe) Valid() bool {
	if r == nil {
		return false
	}
	return r.Title != "" && (len(r.Ingredients) > 0 || len(r.Steps) > 0)
}

// Outcome is the result of one scrape. Exactly one of Recipe or Err is set.
type Outcome struct {
	URL    string  `json:"url"`
	Method Method  `json:"method,omitempty"`
	Recipe *Recipe `json:"recipe,omitempty"`
	Reason string  `json:"error,omitempty"`
	Err    error   `json:"-"`
}

// Success reports whether a tier produced a valid recipe.
func (o Outcome) Success() bool {
	return o.Recipe != nil
}

// ParsedIngredient is one free-text ingredient line split into its parts.
type ParsedIngredient struct {
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Name     string   `json:"name"`
	Notes    string   `json:"notes"`
}

// ScrapedRecipe is a successful extraction handed to the persistence pipeline.
type ScrapedRecipe struct {
	ID                string             `json:"id"`
	SourceURL         string             `json:"source_url"`
	Method            Method             `json:"method"`
	Recipe            Recipe             `json:"recipe"`
	ParsedIngredients []ParsedIngredient `json:"parsed_ingredients,omitempty"`
	ImagePath         string             `json:"image_path,omitempty"`
	ScrapedAt         time.Time          `json:"scraped_at"`
}

// BatchResult holds the overall result of a batch scraping run.
// ProcessedCount counts recipes accepted by the pipeline after dedupe.
type BatchResult struct {
	StartTime      time.Time
	EndTime        time.Time
	URLCount       int
	SuccessCount   int
	ErrorCount     int
	ProcessedCount int
	FailedURLs     []string
	ErrorsByType   map[string]int
	ByMethod       map[Method]int
	RetryCount     int
	RequestCount   int
	ImageCount     int
}
