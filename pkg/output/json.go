package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter formats lists as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

type jsonList struct {
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// Format renders the list as JSON. Nothing is written unless Verbose is set.
func (f *JSONFormatter) Format(_ context.Context, list *List, w io.Writer) error {
	if err := list.Validate(); err != nil {
		return err
	}
	if !f.opts.Verbose {
		return nil
	}

	items := list.Items
	if items == nil {
		items = []Item{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jsonList{Label: list.Label, Items: items}); err != nil {
		return fmt.Errorf("encoding %s: %w", list.Label, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", list.Label, err)
	}
	return nil
}

// MarshalJSON encodes the item as an object with keys in declared order.
func (it Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range it {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key.String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(jsonValue(p.Value))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonValue maps symbols to their printed form. Item and []Item already
// marshal themselves.
func jsonValue(v any) any {
	switch val := v.(type) {
	case Symbol:
		return SymbolMarker + string(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = jsonValue(e)
		}
		return out
	default:
		return v
	}
}
