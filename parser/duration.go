package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var isoDurationRe = regexp.MustCompile(`(?i)^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO-8601 duration such as "PT1H30M" into whole
// minutes. Seconds round up to one minute at 30 or more. Strings that are not
// durations are read as bare minute counts. A zero total is reported as nil.
func ParseDuration(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil
		}
		return &n
	}

	days := atoiOrZero(m[1])
	hours := atoiOrZero(m[2])
	minutes := atoiOrZero(m[3])
	seconds := atoiOrZero(m[4])

	total := days*1440 + hours*60 + minutes
	if seconds >= 30 {
		total++
	}
	if total <= 0 {
		return nil
	}
	return &total
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
