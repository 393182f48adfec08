package ingredient

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var vulgarFractions = []struct {
	glyph rune
	value float64
}{
	{'½', 0.5},
	{'¼', 0.25},
	{'¾', 0.75},
	{'⅓', 0.333},
	{'⅔', 0.667},
}

var (
	mixedNumberRe = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)\s+(.*)`)
	fractionRe    = regexp.MustCompile(`^(\d+)/(\d+)\s+(.*)`)
	decimalRe     = regexp.MustCompile(`^(\d+[.,]?\d*)\s+(.*)`)
)

// ParseQuantity reads a leading quantity from text: a vulgar fraction glyph,
// a mixed number ("1 1/2"), a fraction ("3/4") or a decimal using "." or ","
// as separator. ok is false when no rule matches, and text is then returned
// unchanged.
func ParseQuantity(text string) (value float64, rest string, ok bool) {
	if r, size := utf8.DecodeRuneInString(text); size > 0 {
		for _, f := range vulgarFractions {
			if r == f.glyph {
				return f.value, strings.TrimSpace(text[size:]), true
			}
		}
	}

	if m := mixedNumberRe.FindStringSubmatch(text); m != nil {
		whole, _ := strconv.Atoi(m[1])
		num, _ := strconv.Atoi(m[2])
		den, _ := strconv.Atoi(m[3])
		if den != 0 {
			return float64(whole) + float64(num)/float64(den), strings.TrimSpace(m[4]), true
		}
	}

	if m := fractionRe.FindStringSubmatch(text); m != nil {
		num, _ := strconv.Atoi(m[1])
		den, _ := strconv.Atoi(m[2])
		if den != 0 {
			return float64(num) / float64(den), strings.TrimSpace(m[3]), true
		}
	}

	if m := decimalRe.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err == nil {
			return v, strings.TrimSpace(m[2]), true
		}
	}

	return 0, text, false
}
