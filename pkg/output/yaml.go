package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// DocumentSeparator starts the YAML document that follows the label.
const DocumentSeparator = "---"

// YAMLFormatter prints a label followed by a YAML dump of the items.
type YAMLFormatter struct {
	opts FormatOptions
}

// NewYAMLFormatter creates a new YAML formatter with the given options.
func NewYAMLFormatter(opts FormatOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Name returns the format name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Format renders the list. Nothing is written unless Verbose is set.
func (f *YAMLFormatter) Format(_ context.Context, list *List, w io.Writer) error {
	return VerboseList(w, f.opts, list.Label, list.Items)
}

// VerboseList writes label and a YAML dump of items to w when opts.Verbose
// is set:
//
//	label
//	---
//	- :a: 1
//	- :b: 2
//	<blank line>
//
// An empty collection prints the label line only. The arguments are
// validated even when nothing is printed, and the output is written with a
// single call so a failed render never leaves a partial block behind.
func VerboseList(w io.Writer, opts FormatOptions, label string, items []Item) error {
	list := &List{Label: label, Items: items}
	if err := list.Validate(); err != nil {
		return err
	}
	if !opts.Verbose {
		return nil
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString("\n")
	if len(items) > 0 {
		body, err := RenderItems(items)
		if err != nil {
			return err
		}
		b.WriteString(DocumentSeparator)
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing %s: %w", label, err)
	}
	return nil
}
