package output

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/itchyny/gojq"
)

// Select keeps the items for which the jq expression query yields a truthy
// first result. Items are presented to jq as objects keyed by key name,
// without SymbolMarker, so an item may not hold :name and name together.
// Order is preserved; items is not modified.
func Select(items []Item, query string) ([]Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return items, nil
	}

	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid query: %v", ErrInvalidArgument, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid query: %v", ErrInvalidArgument, err)
	}

	selected := make([]Item, 0, len(items))
	for i, item := range items {
		input, err := toJQ(item)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		iter := code.Run(input)
		v, ok := iter.Next()
		if !ok {
			continue
		}
		if qerr, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error on items[%d]: %w", i, qerr)
		}
		if truthy(v) {
			selected = append(selected, item)
		}
	}
	return selected, nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}

// toJQ converts a value into the types gojq accepts. A symbolic and a plain
// key with the same name would collide in a jq object and are rejected.
func toJQ(v any) (any, error) {
	switch val := v.(type) {
	case Item:
		m := make(map[string]any, len(val))
		for _, p := range val {
			if _, dup := m[p.Key.Name]; dup {
				return nil, fmt.Errorf("%w: key %q is both symbolic and plain", ErrInvalidArgument, p.Key.Name)
			}
			e, err := toJQ(p.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Key, err)
			}
			m[p.Key.Name] = e
		}
		return m, nil
	case []Item:
		out := make([]any, len(val))
		for i, it := range val {
			e, err := toJQ(it)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = e
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			e, err := toJQ(el)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = e
		}
		return out, nil
	case Symbol:
		return string(val), nil
	case time.Time:
		return formatTimestamp(val), nil
	case int8:
		return int(val), nil
	case int16:
		return int(val), nil
	case int32:
		return jqInt(int64(val)), nil
	case int64:
		return jqInt(val), nil
	case uint:
		return jqUint(uint64(val)), nil
	case uint8:
		return int(val), nil
	case uint16:
		return int(val), nil
	case uint32:
		return jqUint(uint64(val)), nil
	case uint64:
		return jqUint(val), nil
	case float32:
		return float64(val), nil
	default:
		return v, nil
	}
}

// jqInt and jqUint fall back to big.Int when the value does not fit an int.
func jqInt(v int64) any {
	if v < math.MinInt || v > math.MaxInt {
		return big.NewInt(v)
	}
	return int(v)
}

func jqUint(v uint64) any {
	if v > math.MaxInt {
		return new(big.Int).SetUint64(v)
	}
	return int(v)
}
