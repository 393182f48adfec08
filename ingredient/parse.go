// Package ingredient splits free-form Spanish ingredient lines such as
// "2 dientes de ajo picados" into quantity, unit, name and notes.
package ingredient

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/aluiziolira/go-scrape-recipes/parser"
	"golang.org/x/text/unicode/norm"
)

var (
	pinchRe   = regexp.MustCompile(`^[Uu]n[ao]?\s+(pizca|pellizco|chorrito|chorro|poco|puñado)\s+de\s+(.*)`)
	labeledRe = regexp.MustCompile(`^([^:]+):\s*(\d[\d.,/\s]*)\s*(.*)`)
	parenRe   = regexp.MustCompile(`\(([^)]+)\)`)
	toTasteRe = regexp.MustCompile(`(?i),?\s*(al? (?:su )?gusto)\.?$`)
)

// minLabelLen is the rune count a "Label:" prefix must exceed to be treated
// as a sub-ingredient header rather than part of the name.
const minLabelLen = 3

// Parse decomposes one ingredient line. Quantity and Unit stay nil when no
// rule recognizes them.
func Parse(line string) models.ParsedIngredient {
	text := strings.TrimSpace(parser.FoldSpaces(norm.NFC.String(line)))
	if text == "" {
		return models.ParsedIngredient{}
	}

	if m := pinchRe.FindStringSubmatch(text); m != nil {
		return models.ParsedIngredient{
			Quantity: floatPtr(1),
			Unit:     stringPtr(strings.ToLower(m[1])),
			Name:     strings.TrimRight(strings.TrimSpace(m[2]), ".,;"),
		}
	}

	if parsed, ok := parseLabeled(text); ok {
		return parsed
	}

	var out models.ParsedIngredient
	rest := text
	if qty, r, ok := ParseQuantity(rest); ok {
		out.Quantity = floatPtr(qty)
		rest = r
	}
	unit, rest, found := ParseUnit(rest)
	if found {
		out.Unit = stringPtr(unit)
	}

	if loc := parenRe.FindStringSubmatchIndex(rest); loc != nil {
		out.Notes = rest[loc[2]:loc[3]]
		rest = strings.TrimSpace(rest[:loc[0]]) + " " + strings.TrimSpace(rest[loc[1]:])
	}

	if loc := toTasteRe.FindStringSubmatchIndex(rest); loc != nil {
		out.Notes = strings.Trim(out.Notes+", "+rest[loc[2]:loc[3]], ", ")
		rest = strings.TrimSpace(rest[:loc[0]])
	}

	out.Name = strings.TrimRight(strings.TrimSpace(rest), ".,;:")
	return out
}

// parseLabeled handles "Label: 200 g harina" lines, prefixing the label onto
// the ingredient name.
func parseLabeled(text string) (models.ParsedIngredient, bool) {
	m := labeledRe.FindStringSubmatch(text)
	if m == nil || utf8.RuneCountInString(m[1]) <= minLabelLen {
		return models.ParsedIngredient{}, false
	}

	label := strings.TrimSpace(m[1])
	qty, _, ok := ParseQuantity(strings.TrimSpace(m[2]) + " x")
	unitRest := strings.TrimSpace(m[3])
	if !ok || unitRest == "" {
		return models.ParsedIngredient{}, false
	}

	out := models.ParsedIngredient{Quantity: floatPtr(qty)}
	unit, extra, found := ParseUnit(unitRest)
	if found {
		out.Unit = stringPtr(unit)
	}
	out.Name = strings.TrimRight(strings.TrimSpace(label+" "+extra), ".,;")
	return out, true
}

// ParseAll parses every line, keeping input order.
func ParseAll(lines []string) []models.ParsedIngredient {
	out := make([]models.ParsedIngredient, 0, len(lines))
	for _, line := range lines {
		out = append(out, Parse(line))
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(s string) *string { return &s }
