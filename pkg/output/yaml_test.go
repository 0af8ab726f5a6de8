package output

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func abItems() []Item {
	return []Item{
		NewItem(Sym("a"), 1),
		NewItem(Sym("b"), 2),
	}
}

func TestNewYAMLFormatter(t *testing.T) {
	f := NewYAMLFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewYAMLFormatter() returned nil")
	}
	if f.Name() != "yaml" {
		t.Errorf("Name() = %q, want %q", f.Name(), "yaml")
	}
}

func TestVerboseList(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		label   string
		items   []Item
		want    string
	}{
		{
			name:    "array of hash",
			verbose: true,
			label:   "foo",
			items:   abItems(),
			want:    "foo\n---\n- :a: 1\n- :b: 2\n\n",
		},
		{
			name:    "empty array",
			verbose: true,
			label:   "foo",
			items:   []Item{},
			want:    "foo\n",
		},
		{
			name:    "nil items",
			verbose: true,
			label:   "foo",
			items:   nil,
			want:    "foo\n",
		},
		{
			name:    "not verbose",
			verbose: false,
			label:   "foo",
			items:   abItems(),
			want:    "",
		},
		{
			name:    "not verbose empty",
			verbose: false,
			label:   "foo",
			items:   []Item{},
			want:    "",
		},
		{
			name:    "plain keys",
			verbose: true,
			label:   "environments to add",
			items: []Item{
				NewItem(Str("name"), "production"),
				NewItem(Str("name"), "development"),
			},
			want: "environments to add\n---\n- name: production\n- name: development\n\n",
		},
		{
			name:    "multi pair item",
			verbose: true,
			label:   "foo",
			items: []Item{
				NewItem(Sym("name"), "production", Sym("id"), 7),
			},
			want: "foo\n---\n- :name: production\n  :id: 7\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := VerboseList(&buf, FormatOptions{Verbose: tt.verbose}, tt.label, tt.items)
			if err != nil {
				t.Fatalf("VerboseList() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("VerboseList() output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVerboseList_Idempotent(t *testing.T) {
	items := []Item{
		NewItem(Sym("a"), 1, Sym("nested"), NewItem(Str("x"), []any{1, "two"})),
		NewItem(Sym("b"), 2),
	}
	before := cloneItems(items)

	var first, second bytes.Buffer
	opts := FormatOptions{Verbose: true}
	if err := VerboseList(&first, opts, "foo", items); err != nil {
		t.Fatalf("VerboseList() error = %v", err)
	}
	if err := VerboseList(&second, opts, "foo", items); err != nil {
		t.Fatalf("VerboseList() error = %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("second call output differs:\n%q\n%q", first.String(), second.String())
	}
	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("items modified (-before +after):\n%s", diff)
	}
}

func TestVerboseList_InvalidArgument(t *testing.T) {
	tests := []struct {
		name  string
		label string
		items []Item
	}{
		{name: "empty label", label: "", items: abItems()},
		{name: "blank label", label: "  ", items: nil},
		{name: "multi-line label", label: "foo\nbar", items: nil},
		{name: "empty key", label: "foo", items: []Item{NewItem(Str(""), 1)}},
		{name: "duplicate key", label: "foo", items: []Item{NewItem(Sym("a"), 1, Sym("a"), 2)}},
		{name: "unsupported value", label: "foo", items: []Item{NewItem(Sym("a"), struct{}{})}},
		{name: "nested unsupported value", label: "foo", items: []Item{NewItem(Sym("a"), []any{map[string]int{}})}},
		{name: "symbol with space", label: "foo", items: []Item{NewItem(Sym("a b"), 1)}},
		{name: "symbol value with space", label: "foo", items: []Item{NewItem(Sym("a"), Symbol("x y"))}},
	}

	for _, tt := range tests {
		for _, verbose := range []bool{true, false} {
			var buf bytes.Buffer
			err := VerboseList(&buf, FormatOptions{Verbose: verbose}, tt.label, tt.items)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("%s (verbose=%v): error = %v, want ErrInvalidArgument", tt.name, verbose, err)
			}
			if buf.Len() != 0 {
				t.Errorf("%s (verbose=%v): wrote %q before failing", tt.name, verbose, buf.String())
			}
		}
	}
}

type failingWriter struct{}

var errWriteFailed = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteFailed }

func TestVerboseList_WriteError(t *testing.T) {
	err := VerboseList(failingWriter{}, FormatOptions{Verbose: true}, "foo", abItems())
	if !errors.Is(err, errWriteFailed) {
		t.Errorf("error = %v, want wrapped write error", err)
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("write error reported as ErrInvalidArgument")
	}
}

type countingWriter struct {
	calls int
	buf   bytes.Buffer
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.calls++
	return w.buf.Write(p)
}

func TestVerboseList_SingleWrite(t *testing.T) {
	var w countingWriter
	if err := VerboseList(&w, FormatOptions{Verbose: true}, "foo", abItems()); err != nil {
		t.Fatalf("VerboseList() error = %v", err)
	}
	if w.calls != 1 {
		t.Errorf("Write called %d times, want 1", w.calls)
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := NewYAMLFormatter(FormatOptions{Verbose: true})

	var buf bytes.Buffer
	err := f.Format(context.Background(), &List{Label: "foo", Items: abItems()}, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if diff := cmp.Diff("foo\n---\n- :a: 1\n- :b: 2\n\n", buf.String()); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{name: "", wantName: "yaml"},
		{name: "yaml", wantName: "yaml"},
		{name: "json", wantName: "json"},
		{name: "xml", wantErr: true},
	}

	for _, tt := range tests {
		f, err := NewFormatter(tt.name, FormatOptions{})
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewFormatter(%q) error = %v, want ErrInvalidArgument", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NewFormatter(%q) error = %v", tt.name, err)
		}
		if f.Name() != tt.wantName {
			t.Errorf("NewFormatter(%q).Name() = %q, want %q", tt.name, f.Name(), tt.wantName)
		}
	}
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = cloneValue(it).(Item)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Item:
		out := make(Item, len(val))
		for i, p := range val {
			out[i] = Pair{Key: p.Key, Value: cloneValue(p.Value)}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
