package ingredient

import (
	"regexp"
	"strings"
)

// UnitAlias maps the spellings matched by Pattern to a canonical unit label.
type UnitAlias struct {
	Pattern string
	Unit    string
}

// UnitAliases is tried top to bottom and the first match wins, so longer
// spellings must come before prefixes that would shadow them.
var UnitAliases = []UnitAlias{
	{`tazas?`, "taza"},
	{`cucharadas?\s*soperas?`, "cucharada"},
	{`cucharadas?`, "cucharada"},
	{`cucharaditas?`, "cucharadita"},
	{`cdas?\.?`, "cucharada"},
	{`cdtas?\.?`, "cucharadita"},
	{`cuchara\s+sopera`, "cucharada"},
	{`vasos?`, "vaso"},
	{`vasitos?`, "vasito"},
	{`litros?`, "litro"},
	{`ml\.?`, "ml"},
	{`cl\.?`, "cl"},
	{`cc\.?`, "cc"},
	{`copas?`, "copa"},
	{`grs?\.?`, "g"},
	{`gms?\.?`, "g"},
	{`gramos?`, "g"},
	{`gr\.?`, "g"},
	{`g\.?`, "g"},
	{`kgs?\.?`, "kg"},
	{`kilos?`, "kg"},
	{`libras?`, "libra"},
	{`lbs?\.?`, "libra"},
	{`onzas?`, "onza"},
	{`oz\.?`, "onza"},
	{`latas?`, "lata"},
	{`potes?`, "pote"},
	{`sobres?`, "sobre"},
	{`sobresitos?`, "sobre"},
	{`bolsas?`, "bolsa"},
	{`paquetes?`, "paquete"},
	{`botes?`, "bote"},
	{`tarros?`, "tarro"},
	{`ud\.?`, "unidad"},
	{`uds\.?`, "unidad"},
	{`unidades?`, "unidad"},
	{`piezas?`, "pieza"},
	{`dientes?`, "diente"},
	{`hojas?`, "hoja"},
	{`ramas?`, "rama"},
	{`ramitas?`, "ramita"},
	{`rodajas?`, "rodaja"},
	{`rebanadas?`, "rebanada"},
	{`lonjas?`, "lonja"},
	{`lonchas?`, "loncha"},
	{`manojos?`, "manojo"},
	{`manos?`, "mano"},
	{`pellizcos?`, "pellizco"},
	{`pizcas?`, "pizca"},
	{`chorritos?`, "chorrito"},
	{`chorros?`, "chorro"},
	{`puñados?`, "puñado"},
}

type unitRule struct {
	re   *regexp.Regexp
	unit string
}

// unitRules is built once from UnitAliases and never mutated.
var unitRules = compileUnitRules(UnitAliases)

func compileUnitRules(aliases []UnitAlias) []unitRule {
	rules := make([]unitRule, 0, len(aliases))
	for _, a := range aliases {
		rules = append(rules, unitRule{
			re:   regexp.MustCompile(`(?i)^(?:` + a.Pattern + `)\.?\s+(?:de\s+)?(.*)`),
			unit: a.Unit,
		})
	}
	return rules
}

// ParseUnit strips a leading unit (and a following "de") from text and
// returns its canonical label. A bare leading "de " is dropped without
// producing a unit.
func ParseUnit(text string) (unit string, rest string, ok bool) {
	for _, rule := range unitRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return rule.unit, strings.TrimSpace(m[1]), true
		}
	}
	if strings.HasPrefix(text, "de ") {
		return "", strings.TrimSpace(text[3:]), false
	}
	return "", text, false
}
