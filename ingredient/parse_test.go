package ingredient

import (
	"math"
	"testing"

	"github.com/aluiziolira/go-scrape-recipes/models"
)

type want struct {
	quantity any // nil or float64
	unit     any // nil or string
	name     string
	notes    string
}

func check(t *testing.T, input string, got models.ParsedIngredient, w want) {
	t.Helper()
	switch q := w.quantity.(type) {
	case nil:
		if got.Quantity != nil {
			t.Errorf("Parse(%q).Quantity = %v, want nil", input, *got.Quantity)
		}
	case float64:
		if got.Quantity == nil || math.Abs(*got.Quantity-q) > 1e-9 {
			t.Errorf("Parse(%q).Quantity = %v, want %v", input, got.Quantity, q)
		}
	}
	switch u := w.unit.(type) {
	case nil:
		if got.Unit != nil {
			t.Errorf("Parse(%q).Unit = %q, want nil", input, *got.Unit)
		}
	case string:
		if got.Unit == nil || *got.Unit != u {
			t.Errorf("Parse(%q).Unit = %v, want %q", input, got.Unit, u)
		}
	}
	if got.Name != w.name {
		t.Errorf("Parse(%q).Name = %q, want %q", input, got.Name, w.name)
	}
	if got.Notes != w.notes {
		t.Errorf("Parse(%q).Notes = %q, want %q", input, got.Notes, w.notes)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  want
	}{
		{input: "½ taza de azúcar", want: want{quantity: 0.5, unit: "taza", name: "azúcar"}},
		{input: "2 dientes de ajo picados", want: want{quantity: 2.0, unit: "diente", name: "ajo picados"}},
		{input: "Un pellizco de sal", want: want{quantity: 1.0, unit: "pellizco", name: "sal"}},
		{input: "Sal y pimienta al gusto", want: want{name: "Sal y pimienta", notes: "al gusto"}},
		{input: "Una pizca de nuez moscada.", want: want{quantity: 1.0, unit: "pizca", name: "nuez moscada"}},
		{input: "1 1/2 tazas de harina", want: want{quantity: 1.5, unit: "taza", name: "harina"}},
		{input: "3/4 litro de leche", want: want{quantity: 0.75, unit: "litro", name: "leche"}},
		{input: "1,5 kg de patatas", want: want{quantity: 1.5, unit: "kg", name: "patatas"}},
		{input: "200 gr. de harina", want: want{quantity: 200.0, unit: "g", name: "harina"}},
		{input: "2 cucharadas soperas de aceite", want: want{quantity: 2.0, unit: "cucharada", name: "aceite"}},
		{input: "1 cucharadita de sal", want: want{quantity: 1.0, unit: "cucharadita", name: "sal"}},
		{input: "2 cdas. de miel", want: want{quantity: 2.0, unit: "cucharada", name: "miel"}},
		{input: "3 huevos (tamaño L)", want: want{quantity: 3.0, name: "huevos", notes: "tamaño L"}},
		{input: "Pimienta negra (recién molida), a su gusto", want: want{name: "Pimienta negra", notes: "recién molida, a su gusto"}},
		{input: "2 de leche", want: want{quantity: 2.0, name: "leche"}},
		{input: "Para la masa: 2 tazas de harina", want: want{quantity: 2.0, unit: "taza", name: "Para la masa harina"}},
		{input: "Relleno: 150 g queso crema", want: want{quantity: 150.0, unit: "g", name: "Relleno queso crema"}},
		{input: "Sal: al gusto", want: want{name: "Sal", notes: "al gusto"}},
		{input: "perejil fresco;", want: want{name: "perejil fresco"}},
		{input: "1 PUÑADO de almendras", want: want{quantity: 1.0, unit: "puñado", name: "almendras"}},
		{input: "", want: want{}},
		{input: "   ", want: want{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			check(t, tt.input, Parse(tt.input), tt.want)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input    string
		value    float64
		rest     string
		expectOK bool
	}{
		{input: "¼ cucharadita", value: 0.25, rest: "cucharadita", expectOK: true},
		{input: "⅓ taza", value: 0.333, rest: "taza", expectOK: true},
		{input: "2 1/4 tazas", value: 2.25, rest: "tazas", expectOK: true},
		{input: "1/2 limón", value: 0.5, rest: "limón", expectOK: true},
		{input: "0,25 l", value: 0.25, rest: "l", expectOK: true},
		{input: "12 huevos", value: 12, rest: "huevos", expectOK: true},
		{input: "1/0 taza", value: 0, rest: "1/0 taza", expectOK: false},
		{input: "huevos", value: 0, rest: "huevos", expectOK: false},
		{input: "12", value: 0, rest: "12", expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, rest, ok := ParseQuantity(tt.input)
			if ok != tt.expectOK || math.Abs(value-tt.value) > 1e-9 || rest != tt.rest {
				t.Fatalf("ParseQuantity(%q) = (%v, %q, %v), want (%v, %q, %v)", tt.input, value, rest, ok, tt.value, tt.rest, tt.expectOK)
			}
		})
	}
}

func TestParseUnitOrdering(t *testing.T) {
	tests := []struct {
		input string
		unit  string
		rest  string
	}{
		{input: "cuchara sopera de vinagre", unit: "cucharada", rest: "vinagre"},
		{input: "cucharaditas de canela", unit: "cucharadita", rest: "canela"},
		{input: "vasitos de vino", unit: "vasito", rest: "vino"},
		{input: "manojo de perejil", unit: "manojo", rest: "perejil"},
		{input: "manos de cerdo", unit: "mano", rest: "cerdo"},
		{input: "sobresitos de levadura", unit: "sobre", rest: "levadura"},
		{input: "ml. agua", unit: "ml", rest: "agua"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			unit, rest, ok := ParseUnit(tt.input)
			if !ok || unit != tt.unit || rest != tt.rest {
				t.Fatalf("ParseUnit(%q) = (%q, %q, %v), want (%q, %q, true)", tt.input, unit, rest, ok, tt.unit, tt.rest)
			}
		})
	}

	if unit, rest, ok := ParseUnit("de harina"); ok || unit != "" || rest != "harina" {
		t.Fatalf("ParseUnit(de harina) = (%q, %q, %v)", unit, rest, ok)
	}
	if _, rest, ok := ParseUnit("tomates maduros"); ok || rest != "tomates maduros" {
		t.Fatalf("ParseUnit(tomates maduros) = (%q, %v)", rest, ok)
	}
}

func TestParseAllKeepsOrder(t *testing.T) {
	got := ParseAll([]string{"1 huevo", "sal"})
	if len(got) != 2 || got[0].Name != "huevo" || got[1].Name != "sal" {
		t.Fatalf("ParseAll = %+v", got)
	}
}
