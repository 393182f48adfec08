package parser

import (
	"strconv"
	"strings"
)

// NodeKind tags the shape of one element of a loosely structured list.
type NodeKind int

const (
	NodeText NodeKind = iota
	NodeRecord
	NodeSection
	NodeOther
)

// Node is one element of an ingredient or instruction list as found in
// structured data: a plain string, a key/value record or a nested list.
type Node struct {
	Kind   NodeKind
	Text   string
	Record map[string]any
	Items  []Node
}

// NodesFrom converts decoded JSON into a list of nodes. A bare string or
// record is treated as a one-element list.
func NodesFrom(v any) []Node {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]Node, 0, len(val))
		for _, item := range val {
			out = append(out, nodeFrom(item))
		}
		return out
	case []string:
		out := make([]Node, 0, len(val))
		for _, item := range val {
			out = append(out, Node{Kind: NodeText, Text: item})
		}
		return out
	default:
		return []Node{nodeFrom(val)}
	}
}

func nodeFrom(v any) Node {
	switch val := v.(type) {
	case string:
		return Node{Kind: NodeText, Text: val}
	case map[string]any:
		return Node{Kind: NodeRecord, Record: val}
	case []any, []string:
		return Node{Kind: NodeSection, Items: NodesFrom(val)}
	default:
		return Node{Kind: NodeOther}
	}
}

// NormalizeIngredients flattens a recipeIngredient value into cleaned lines.
func NormalizeIngredients(v any) []string {
	return flatten(NodesFrom(v), ingredientText)
}

// NormalizeSteps flattens a recipeInstructions value into cleaned steps.
// HowToSection records are expanded in place. A single string is split on
// line breaks.
func NormalizeSteps(v any) []string {
	if s, ok := v.(string); ok {
		return SplitLines(s)
	}
	return flatten(NodesFrom(v), stepText)
}

// SplitLines cleans every non-empty line of s.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if cleaned := Clean(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

type recordText func(rec map[string]any) (text string, children []Node)

func flatten(nodes []Node, fromRecord recordText) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case NodeText:
			if cleaned := Clean(n.Text); cleaned != "" {
				out = append(out, cleaned)
			}
		case NodeRecord:
			text, children := fromRecord(n.Record)
			if children != nil {
				out = append(out, flatten(children, fromRecord)...)
				continue
			}
			if cleaned := Clean(text); cleaned != "" {
				out = append(out, cleaned)
			}
		case NodeSection:
			out = append(out, flatten(n.Items, fromRecord)...)
		}
	}
	return out
}

func ingredientText(rec map[string]any) (string, []Node) {
	if text := firstString(rec, "text", "@value"); text != "" {
		return text, nil
	}

	var parts []string
	for _, keys := range [][]string{{"quantity", "amount"}, {"unitText", "unit"}, {"name", "ingredient"}} {
		if part := firstString(rec, keys...); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " "), nil
}

func stepText(rec map[string]any) (string, []Node) {
	if isSection(rec["@type"]) {
		return "", nonNil(NodesFrom(rec["itemListElement"]))
	}
	return firstString(rec, "text", "description", "name"), nil
}

func isSection(t any) bool {
	switch val := t.(type) {
	case string:
		return val == "HowToSection"
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok && s == "HowToSection" {
				return true
			}
		}
	}
	return false
}

func nonNil(nodes []Node) []Node {
	if nodes == nil {
		return []Node{}
	}
	return nodes
}

// firstString returns the first key whose value renders to a non-empty string.
func firstString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := scalarString(rec[k]); s != "" {
			return s
		}
	}
	return ""
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case map[string]any:
		// QuantitativeValue and similar wrappers.
		return firstString(val, "value", "name")
	default:
		return ""
	}
}
