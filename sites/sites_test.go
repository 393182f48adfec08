package sites

import (
	"errors"
	"reflect"
	"testing"
)

const wprmPage = `<html><body>
<div class="wprm-recipe">
  <h2 class="wprm-recipe-name">Tortilla de patatas</h2>
  <div class="wprm-recipe-summary">La clásica.</div>
  <span class="wprm-recipe-servings">4</span>
  <div class="wprm-recipe-prep_time-container">Prep Time 15 mins</div>
  <div class="wprm-recipe-cook_time-container">Cook Time 1 hr 5 mins</div>
  <div class="wprm-recipe-image"><img data-lazy-src="/img/tortilla.jpg" src="data:,"></div>
  <ul>
    <li class="wprm-recipe-ingredient">4 huevos</li>
    <li class="wprm-recipe-ingredient"> 500 g   patatas </li>
  </ul>
  <div class="wprm-recipe-instruction-text">Pelar las patatas.</div>
  <div class="wprm-recipe-instruction-text">Freír y cuajar.</div>
</div>
</body></html>`

func TestScrapeHTMLWPRM(t *testing.T) {
	s, err := ScrapeHTML(wprmPage, "https://blog.example.com/tortilla/")
	if err != nil {
		t.Fatalf("ScrapeHTML returned error: %v", err)
	}
	if s.Site() != "wprm" {
		t.Fatalf("expected wprm profile, got %q", s.Site())
	}

	if title, err := s.Title(); err != nil || title != "Tortilla de patatas" {
		t.Fatalf("Title = %q, %v", title, err)
	}
	if yields, err := s.Yields(); err != nil || yields != "4" {
		t.Fatalf("Yields = %q, %v", yields, err)
	}
	if prep, err := s.PrepTime(); err != nil || prep != 15 {
		t.Fatalf("PrepTime = %d, %v", prep, err)
	}
	if cook, err := s.CookTime(); err != nil || cook != 65 {
		t.Fatalf("CookTime = %d, %v", cook, err)
	}
	if _, err := s.TotalTime(); !errors.Is(err, ErrFieldMissing) {
		t.Fatalf("TotalTime error = %v, want ErrFieldMissing", err)
	}

	ingredients, err := s.Ingredients()
	if err != nil {
		t.Fatalf("Ingredients returned error: %v", err)
	}
	if want := []string{"4 huevos", "500 g patatas"}; !reflect.DeepEqual(ingredients, want) {
		t.Fatalf("Ingredients = %q, want %q", ingredients, want)
	}

	instructions, err := s.Instructions()
	if err != nil || instructions != "Pelar las patatas.\nFreír y cuajar." {
		t.Fatalf("Instructions = %q, %v", instructions, err)
	}

	if img, err := s.Image(); err != nil || img != "https://blog.example.com/img/tortilla.jpg" {
		t.Fatalf("Image = %q, %v", img, err)
	}
}

func TestScrapeHTMLTasty(t *testing.T) {
	page := `<div class="tasty-recipes">
	  <h2 class="tasty-recipes-title">Gazpacho</h2>
	  <span class="tasty-recipes-total-time">PT20M</span>
	  <div class="tasty-recipes-ingredients"><ul><li>1 kg tomates</li><li>1 pepino</li></ul></div>
	  <div class="tasty-recipes-instructions"><ol><li>Triturar.</li></ol></div>
	</div>`

	s, err := ScrapeHTML(page, "https://example.org/gazpacho")
	if err != nil {
		t.Fatalf("ScrapeHTML returned error: %v", err)
	}
	if s.Site() != "tasty-recipes" {
		t.Fatalf("expected tasty-recipes profile, got %q", s.Site())
	}
	if total, err := s.TotalTime(); err != nil || total != 20 {
		t.Fatalf("TotalTime = %d, %v", total, err)
	}
	if _, err := s.Description(); !errors.Is(err, ErrFieldMissing) {
		t.Fatalf("Description error = %v, want ErrFieldMissing", err)
	}
	if _, err := s.Image(); !errors.Is(err, ErrFieldMissing) {
		t.Fatalf("Image error = %v, want ErrFieldMissing", err)
	}
}

func TestScrapeHTMLHfreshByHost(t *testing.T) {
	page := `<html><head>
	  <meta property="og:title" content="Pollo al curry">
	  <meta name="description" content="Rápido y sabroso">
	  <meta property="og:image" content="https://cdn.hfresh.info/pollo.jpg">
	</head><body>
	  <span>35 min</span>
	  <div class="flex items-center gap-3"><img alt="Pollo"><p>x</p><p>250 g</p></div>
	  <div class="flex items-center gap-3"><img alt="Arroz"><p>x</p><p>150 g</p></div>
	  <div class="flex items-center gap-3"><img alt="Cilantro"><p>x</p><p>al gusto</p></div>
	  <div class="flex gap-4"><span>1</span><div><p>Preparar</p><ul><li>Cortar el pollo.</li><li>Lavar el arroz.</li></ul></div></div>
	  <div class="flex gap-4"><span>2</span><div><p>Cocinar todo junto.</p></div></div>
	</body></html>`

	s, err := ScrapeHTML(page, "https://www.hfresh.info/es/recipe/123")
	if err != nil {
		t.Fatalf("ScrapeHTML returned error: %v", err)
	}
	if s.Site() != "hfresh" {
		t.Fatalf("expected hfresh profile, got %q", s.Site())
	}
	if title, _ := s.Title(); title != "Pollo al curry" {
		t.Fatalf("Title = %q", title)
	}
	if prep, err := s.PrepTime(); err != nil || prep != 35 {
		t.Fatalf("PrepTime = %d, %v", prep, err)
	}
	ingredients, _ := s.Ingredients()
	if want := []string{"250 g Pollo", "150 g Arroz"}; !reflect.DeepEqual(ingredients, want) {
		t.Fatalf("Ingredients = %q, want %q", ingredients, want)
	}
	steps, _ := s.InstructionsList()
	if want := []string{"Cortar el pollo.", "Lavar el arroz.", "Cocinar todo junto."}; !reflect.DeepEqual(steps, want) {
		t.Fatalf("InstructionsList = %q, want %q", steps, want)
	}
}

func TestScrapeHTMLUnsupported(t *testing.T) {
	_, err := ScrapeHTML(`<html><body><h1>Hola</h1></body></html>`, "https://example.com/")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		expectOK bool
	}{
		{input: "PT1H30M", expected: 90, expectOK: true},
		{input: "45", expected: 45, expectOK: true},
		{input: "1 hr 15 mins", expected: 75, expectOK: true},
		{input: "2 horas", expected: 120, expectOK: true},
		{input: "Cook Time 20 minutos", expected: 20, expectOK: true},
		{input: "a while", expectOK: false},
		{input: "0 min", expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMinutes(tt.input)
			if ok != tt.expectOK || got != tt.expected {
				t.Fatalf("ParseMinutes(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.expected, tt.expectOK)
			}
		})
	}
}
