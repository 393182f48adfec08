package parser

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/aluiziolira/go-scrape-recipes/models"
)

func intPtr(n int) *int { return &n }

func TestValidateRecipe(t *testing.T) {
	tests := []struct {
		name    string
		recipe  *models.Recipe
		wantErr bool
	}{
		{name: "nil", recipe: nil, wantErr: true},
		{name: "missing title", recipe: &models.Recipe{Ingredients: []string{"sal"}}, wantErr: true},
		{name: "no content", recipe: &models.Recipe{Title: "Tortilla"}, wantErr: true},
		{name: "ingredients only", recipe: &models.Recipe{Title: "Tortilla", Ingredients: []string{"huevos"}}},
		{name: "steps only", recipe: &models.Recipe{Title: "Tortilla", Steps: []string{"batir"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecipe(tt.recipe)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecipe() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.recipe != nil && tt.recipe.Valid() == tt.wantErr {
				t.Errorf("Valid() = %v, want %v", tt.recipe.Valid(), !tt.wantErr)
			}
		})
	}
}

func TestApplyTotalTimeBackfill(t *testing.T) {
	tests := []struct {
		name     string
		recipe   models.Recipe
		wantCook *int
	}{
		{name: "total only", recipe: models.Recipe{TotalTime: intPtr(45)}, wantCook: intPtr(45)},
		{name: "prep and total", recipe: models.Recipe{PrepTime: intPtr(10), TotalTime: intPtr(45)}, wantCook: nil},
		{name: "cook kept", recipe: models.Recipe{CookTime: intPtr(20), TotalTime: intPtr(45)}, wantCook: intPtr(20)},
		{name: "nothing", recipe: models.Recipe{}, wantCook: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.recipe
			ApplyTotalTimeBackfill(&r)
			if !reflect.DeepEqual(r.CookTime, tt.wantCook) {
				t.Fatalf("cook time = %v, want %v", deref(r.CookTime), deref(tt.wantCook))
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: ""},
		{input: "  <b>Tarta</b>   de\n\tqueso ", expected: "Tarta de queso"},
		{input: "Mac &amp; cheese", expected: "Mac & cheese"},
		{input: "200 g harina", expected: "200 g harina"},
	}

	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.expected {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}

	if got := CleanValue(42.0); got != "" {
		t.Errorf("CleanValue(number) = %q, want empty", got)
	}
	if got := CleanValue(nil); got != "" {
		t.Errorf("CleanValue(nil) = %q, want empty", got)
	}
}

func TestResolveURL(t *testing.T) {
	base := "https://example.test/recetas/tarta.html"
	tests := []struct {
		ref      string
		expected string
	}{
		{ref: "", expected: ""},
		{ref: "https://cdn.test/a.jpg", expected: "https://cdn.test/a.jpg"},
		{ref: "http://cdn.test/a.jpg", expected: "http://cdn.test/a.jpg"},
		{ref: "//cdn.test/a.jpg", expected: "//cdn.test/a.jpg"},
		{ref: "/img/a.jpg", expected: "https://example.test/img/a.jpg"},
		{ref: "img/a.jpg", expected: "https://example.test/recetas/img/a.jpg"},
	}

	for _, tt := range tests {
		if got := ResolveURL(tt.ref, base); got != tt.expected {
			t.Errorf("ResolveURL(%q) = %q, want %q", tt.ref, got, tt.expected)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected *int
	}{
		{input: "PT1H30M", expected: intPtr(90)},
		{input: "PT45S", expected: intPtr(1)},
		{input: "PT29S", expected: nil},
		{input: "PT10M30S", expected: intPtr(11)},
		{input: "P1DT2H", expected: intPtr(1560)},
		{input: "pt20m", expected: intPtr(20)},
		{input: "", expected: nil},
		{input: "90", expected: intPtr(90)},
		{input: " 15 ", expected: intPtr(15)},
		{input: "PT0M", expected: nil},
		{input: "0", expected: nil},
		{input: "about an hour", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseDuration(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("ParseDuration(%q) = %v, want %v", tt.input, deref(got), deref(tt.expected))
			}
		})
	}
}

func TestExtractServings(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected *int
	}{
		{name: "text", input: "4 servings", expected: intPtr(4)},
		{name: "list", input: []any{6.0, 8.0}, expected: intPtr(6)},
		{name: "string list", input: []any{"Serves 2", "2 bowls"}, expected: intPtr(2)},
		{name: "nil", input: nil, expected: nil},
		{name: "empty list", input: []any{}, expected: nil},
		{name: "number", input: 3.0, expected: intPtr(3)},
		{name: "int", input: 5, expected: intPtr(5)},
		{name: "no digits", input: "unas cuantas", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractServings(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("ExtractServings(%v) = %v, want %v", tt.input, deref(got), deref(tt.expected))
			}
		})
	}
}

func TestNormalizeIngredientsMixed(t *testing.T) {
	raw := decode(t, `[
		"2 huevos",
		{"quantity": 200, "unitText": "g", "name": "harina"},
		{"text": "<span>1 pizca de sal</span>"},
		{"amount": "1", "unit": "taza", "ingredient": "leche"},
		{"name": "perejil"},
		"   ",
		{},
		[ "1 limón", {"@value": "azúcar"} ]
	]`)

	got := NormalizeIngredients(raw)
	want := []string{"2 huevos", "200 g harina", "1 pizca de sal", "1 taza leche", "perejil", "1 limón", "azúcar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeIngredients = %#v, want %#v", got, want)
	}
}

func TestNormalizeStepsSections(t *testing.T) {
	raw := decode(t, `[
		{"@type": "HowToSection", "name": "Masa", "itemListElement": [
			{"@type": "HowToStep", "text": "Mezclar la harina."},
			{"@type": "HowToStep", "text": "Amasar 10 minutos."}
		]},
		{"@type": "HowToStep", "description": "Hornear."},
		"Servir <em>caliente</em>.",
		[{"@type": "HowToStep", "name": "Decorar"}],
		{"@type": "HowToSection", "name": "Vacía"}
	]`)

	got := NormalizeSteps(raw)
	want := []string{"Mezclar la harina.", "Amasar 10 minutos.", "Hornear.", "Servir caliente.", "Decorar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeSteps = %#v, want %#v", got, want)
	}
}

func TestNormalizeStepsPlainString(t *testing.T) {
	got := NormalizeSteps("Batir los huevos.\n\nFreír las patatas.\r\n")
	want := []string{"Batir los huevos.", "Freír las patatas."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeSteps = %#v, want %#v", got, want)
	}
}

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
