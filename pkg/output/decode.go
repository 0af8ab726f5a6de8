package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DecodeItems reads a YAML document holding a sequence of mappings.
// Plain keys and scalars that start with SymbolMarker decode as symbolic
// keys and Symbol values, so VerboseList output reads back to the same items.
func DecodeItems(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	return ParseItems(data)
}

// ParseItems parses items from YAML bytes. An empty document yields an
// empty collection.
func ParseItems(data []byte) ([]Item, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing items: %v", ErrInvalidArgument, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return []Item{}, nil
	}

	root := resolveAlias(doc.Content[0])
	switch {
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return []Item{}, nil
	case root.Kind != yaml.SequenceNode:
		return nil, fmt.Errorf("%w: line %d: items must be a sequence of mappings", ErrInvalidArgument, root.Line)
	}

	items := make([]Item, 0, len(root.Content))
	for i, n := range root.Content {
		n = resolveAlias(n)
		if n.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: items[%d] (line %d): expected a mapping", ErrInvalidArgument, i, n.Line)
		}
		item, err := decodeMapping(n)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeMapping(n *yaml.Node) (Item, error) {
	item := make(Item, 0, len(n.Content)/2)
	seen := make(map[Key]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn := resolveAlias(n.Content[i])
		if kn.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: keys must be scalars", ErrInvalidArgument, kn.Line)
		}
		key := decodeKey(kn)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate key %s", ErrInvalidArgument, kn.Line, key)
		}
		seen[key] = struct{}{}

		value, err := decodeValue(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		item = append(item, Pair{Key: key, Value: value})
	}
	return item, nil
}

func decodeKey(n *yaml.Node) Key {
	if name, ok := symbolName(n); ok {
		return Sym(name)
	}
	return Str(n.Value)
}

func decodeValue(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.SequenceNode:
		elems := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := decodeValue(c)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			elems = append(elems, v)
		}
		return elems, nil
	case yaml.ScalarNode:
		return decodeScalar(n)
	default:
		return nil, fmt.Errorf("%w: line %d: unsupported node", ErrInvalidArgument, n.Line)
	}
}

func decodeScalar(n *yaml.Node) (any, error) {
	if name, ok := symbolName(n); ok {
		return Symbol(name), nil
	}
	switch n.Tag {
	case "!!str":
		return n.Value, nil
	case "!!null":
		return nil, nil
	case "!!int", "!!float", "!!bool":
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidArgument, n.Line, err)
		}
		return v, nil
	case "!!timestamp":
		// Decoding into any would leave a string; ask for the time explicitly.
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidArgument, n.Line, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: line %d: unsupported tag %s", ErrInvalidArgument, n.Line, n.Tag)
	}
}

// symbolName reports whether a plain scalar is written as a symbol.
func symbolName(n *yaml.Node) (string, bool) {
	if n.Style != 0 || n.Tag != "!!str" {
		return "", false
	}
	name, ok := strings.CutPrefix(n.Value, SymbolMarker)
	if !ok || !isSymbolName(name) {
		return "", false
	}
	return name, true
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
