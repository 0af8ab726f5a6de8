// Package output provides the item model and the formatters that print
// labeled item collections.
package output

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidArgument is returned when a label, key or value cannot be rendered.
var ErrInvalidArgument = errors.New("invalid argument")

// SymbolMarker is the literal prefix printed before symbolic keys and values.
const SymbolMarker = ":"

// Key is a mapping key. Symbolic keys are printed with SymbolMarker in front
// of the name; plain keys are printed as YAML scalars.
type Key struct {
	Name     string
	Symbolic bool
}

// Sym returns a symbolic key.
func Sym(name string) Key {
	return Key{Name: name, Symbolic: true}
}

// Str returns a plain string key.
func Str(name string) Key {
	return Key{Name: name}
}

// String returns the key as it appears in output.
func (k Key) String() string {
	if k.Symbolic {
		return SymbolMarker + k.Name
	}
	return k.Name
}

// Symbol is a symbolic scalar value, printed as ":name".
type Symbol string

// Pair is one key-value entry of an Item.
type Pair struct {
	Key   Key
	Value any
}

// Item is an ordered mapping. Keys must be unique.
type Item []Pair

// NewItem builds an Item from alternating keys and values.
// It panics on an odd argument count or a non-Key key, so it is meant for
// literals in code and tests.
func NewItem(kv ...any) Item {
	if len(kv)%2 != 0 {
		panic("output.NewItem: odd number of arguments")
	}
	item := make(Item, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(Key)
		if !ok {
			panic(fmt.Sprintf("output.NewItem: argument %d is %T, want Key", i, kv[i]))
		}
		item = append(item, Pair{Key: k, Value: kv[i+1]})
	}
	return item
}

// List is a labeled item collection handed to a Formatter.
type List struct {
	Label string
	Items []Item
}

// Validate checks that the list can be rendered.
func (l *List) Validate() error {
	if strings.TrimSpace(l.Label) == "" {
		return fmt.Errorf("%w: label is empty", ErrInvalidArgument)
	}
	if strings.ContainsAny(l.Label, "\r\n") {
		return fmt.Errorf("%w: label %q spans multiple lines", ErrInvalidArgument, l.Label)
	}
	for i, item := range l.Items {
		if err := validateItem(item); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

func validateItem(item Item) error {
	seen := make(map[Key]struct{}, len(item))
	for _, p := range item {
		if err := validateKey(p.Key); err != nil {
			return err
		}
		if _, dup := seen[p.Key]; dup {
			return fmt.Errorf("%w: duplicate key %s", ErrInvalidArgument, p.Key)
		}
		seen[p.Key] = struct{}{}
		if err := validateValue(p.Value); err != nil {
			return fmt.Errorf("%s: %w", p.Key, err)
		}
	}
	return nil
}

func validateKey(k Key) error {
	if k.Name == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidArgument)
	}
	if k.Symbolic && !isSymbolName(k.Name) {
		return fmt.Errorf("%w: symbol key %q cannot be printed as a single token", ErrInvalidArgument, k.Name)
	}
	return nil
}

func validateValue(v any) error {
	switch val := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, time.Time:
		return nil
	case Symbol:
		if !isSymbolName(string(val)) {
			return fmt.Errorf("%w: symbol %q cannot be printed as a single token", ErrInvalidArgument, string(val))
		}
		return nil
	case Item:
		return validateItem(val)
	case []Item:
		for i, it := range val {
			if err := validateItem(it); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	case []any:
		for i, e := range val {
			if err := validateValue(e); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported value type %T", ErrInvalidArgument, v)
	}
}

// isSymbolName reports whether name can follow SymbolMarker unquoted.
func isSymbolName(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, " \t\r\n#,[]{}\"'") {
		return false
	}
	return !strings.HasSuffix(name, ":")
}
