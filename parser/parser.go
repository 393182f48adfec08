// Package parser holds the normalization helpers shared by every extraction
// tier: text cleanup, URL resolution, durations, servings and list flattening.
package parser

import (
	"fmt"
	"strings"

	"github.com/aluiziolira/go-scrape-recipes/models"
)

// ValidateRecipe ensures a tier captured the minimum viable fields.
func ValidateRecipe(r *models.Recipe) error {
	if r == nil {
		return fmt.Errorf("recipe is nil")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("recipe missing title")
	}
	if len(r.Ingredients) == 0 && len(r.Steps) == 0 {
		return fmt.Errorf("recipe %q has neither ingredients nor steps", r.Title)
	}
	return nil
}

// ApplyTotalTimeBackfill copies the total time into the cook time when the
// page reports only a total duration.
func ApplyTotalTimeBackfill(r *models.Recipe) {
	if r == nil || r.TotalTime == nil {
		return
	}
	if r.PrepTime == nil && r.CookTime == nil {
		total := *r.TotalTime
		r.CookTime = &total
	}
}
