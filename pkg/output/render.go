package output

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RenderItems renders items as a YAML block sequence, one element per item.
// A single-pair item takes exactly one line ("- key: value"); further pairs
// of the same item continue on lines indented by two spaces.
func RenderItems(items []Item) (string, error) {
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return "", fmt.Errorf("items[%d]: %w", i, err)
		}
	}

	var b strings.Builder
	elems := make([]any, len(items))
	for i, item := range items {
		elems[i] = item
	}
	if err := writeSequence(&b, elems, 0, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeSequence writes elems as "- " entries at indent. The first entry is
// prefixed with first instead of indentation so it can share a line with a
// parent "- ".
func writeSequence(b *strings.Builder, elems []any, indent int, first string) error {
	pad := strings.Repeat(" ", indent)
	for i, e := range elems {
		lead := pad
		if i == 0 {
			lead = first
		}
		lead += "- "

		switch v := e.(type) {
		case Item:
			if len(v) == 0 {
				b.WriteString(lead + "{}\n")
				continue
			}
			if err := writeMapping(b, v, indent+2, lead); err != nil {
				return err
			}
		case []Item:
			if err := writeNestedSequence(b, itemsToAny(v), indent, lead); err != nil {
				return err
			}
		case []any:
			if err := writeNestedSequence(b, v, indent, lead); err != nil {
				return err
			}
		default:
			s, err := renderScalar(v)
			if err != nil {
				return err
			}
			b.WriteString(lead + s + "\n")
		}
	}
	return nil
}

func writeNestedSequence(b *strings.Builder, elems []any, indent int, lead string) error {
	if len(elems) == 0 {
		b.WriteString(lead + "[]\n")
		return nil
	}
	return writeSequence(b, elems, indent+2, lead)
}

// writeMapping writes the pairs of m at indent. The first pair is prefixed
// with first instead of indentation.
func writeMapping(b *strings.Builder, m Item, indent int, first string) error {
	pad := strings.Repeat(" ", indent)
	for i, p := range m {
		lead := pad
		if i == 0 {
			lead = first
		}
		key, err := renderKey(p.Key)
		if err != nil {
			return err
		}
		lead += key + ":"

		switch v := p.Value.(type) {
		case Item:
			if len(v) == 0 {
				b.WriteString(lead + " {}\n")
				continue
			}
			b.WriteString(lead + "\n")
			if err := writeMapping(b, v, indent+2, strings.Repeat(" ", indent+2)); err != nil {
				return err
			}
		case []Item:
			if err := writeMappedSequence(b, itemsToAny(v), indent, lead); err != nil {
				return err
			}
		case []any:
			if err := writeMappedSequence(b, v, indent, lead); err != nil {
				return err
			}
		default:
			s, err := renderScalar(v)
			if err != nil {
				return err
			}
			b.WriteString(lead + " " + s + "\n")
		}
	}
	return nil
}

// writeMappedSequence writes a sequence that is the value of a mapping key.
// Entries sit at the key's own indentation.
func writeMappedSequence(b *strings.Builder, elems []any, indent int, lead string) error {
	if len(elems) == 0 {
		b.WriteString(lead + " []\n")
		return nil
	}
	b.WriteString(lead + "\n")
	pad := strings.Repeat(" ", indent)
	return writeSequence(b, elems, indent, pad)
}

func renderKey(k Key) (string, error) {
	if k.Symbolic {
		return k.String(), nil
	}
	return renderString(k.Name)
}

func renderScalar(v any) (string, error) {
	switch val := v.(type) {
	case Symbol:
		return SymbolMarker + string(val), nil
	case string:
		return renderString(val)
	case float32, float64:
		s, err := marshalScalar(val)
		if err != nil {
			return "", err
		}
		// Whole numbers need a fraction to read back as floats.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case time.Time:
		return formatTimestamp(val), nil
	default:
		return marshalScalar(val)
	}
}

// formatTimestamp prints UTC midnight as a bare date and everything else in
// RFC 3339, both of which YAML reads back as timestamps.
func formatTimestamp(t time.Time) string {
	if t.Location() == time.UTC && t.Equal(t.Truncate(24*time.Hour)) {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339Nano)
}

// renderString keeps a string on one line and keeps strings that start with
// SymbolMarker from reading back as symbols.
func renderString(s string) (string, error) {
	switch {
	case strings.ContainsAny(s, "\r\n"):
		return marshalScalar(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle})
	case strings.HasPrefix(s, SymbolMarker):
		return marshalScalar(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.SingleQuotedStyle})
	default:
		return marshalScalar(s)
	}
}

func marshalScalar(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: rendering %T: %v", ErrInvalidArgument, v, err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

func itemsToAny(items []Item) []any {
	elems := make([]any, len(items))
	for i, it := range items {
		elems[i] = it
	}
	return elems
}
