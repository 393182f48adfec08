package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var digitsRe = regexp.MustCompile(`\d+`)

// ExtractServings pulls the first integer out of a recipe yield that may be a
// number, a string like "4 servings" or a list of either.
func ExtractServings(v any) *int {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}
	if list, ok := v.([]string); ok {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}

	switch val := v.(type) {
	case nil:
		return nil
	case int:
		return &val
	case int64:
		n := int(val)
		return &n
	case float64:
		if val == math.Trunc(val) {
			n := int(val)
			return &n
		}
		return ServingsFromText(strconv.FormatFloat(val, 'f', -1, 64))
	case string:
		return ServingsFromText(val)
	case map[string]any:
		return nil
	default:
		return ServingsFromText(fmt.Sprint(val))
	}
}

// ServingsFromText returns the first run of digits in s.
func ServingsFromText(s string) *int {
	m := digitsRe.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}
