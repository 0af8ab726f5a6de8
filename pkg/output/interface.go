package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders a labeled item list in a specific format.
type Formatter interface {
	// Format renders the list to the given writer.
	Format(ctx context.Context, list *List, w io.Writer) error

	// Name returns the format name (yaml, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose enables output. Formatters print nothing when it is false.
	Verbose bool
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "yaml", "":
		return NewYAMLFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q (must be yaml or json)", ErrInvalidArgument, name)
	}
}
