package parser

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Clean strips markup, decodes entities and collapses whitespace.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(FoldSpaces(s), " "))
}

// FoldSpaces maps every Unicode space (NBSP included) to an ASCII space so
// that RE2's ASCII-only \s sees it.
func FoldSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

// CleanValue cleans v when it is a string and returns "" for anything else.
func CleanValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return Clean(s)
}

// ResolveURL joins a relative reference against base. Absolute and
// protocol-relative URLs are returned unchanged.
func ResolveURL(ref, base string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//") {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
