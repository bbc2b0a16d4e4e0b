package extract

import (
	"typeprobe/internal/source"
)

type entry struct {
	text string
	span source.Span
}

// Table maps type names to their exact declaration source text.
// Iteration order is declaration order in the original source; a repeated
// name overwrites the earlier entry in place (last-write-wins).
type Table struct {
	names   []string
	entries map[string]entry
}

func NewTable() *Table {
	return &Table{entries: make(map[string]entry)}
}

func (t *Table) put(name, text string, sp source.Span) {
	if _, seen := t.entries[name]; !seen {
		t.names = append(t.names, name)
	}
	t.entries[name] = entry{text: text, span: sp}
}

func (t *Table) Len() int {
	return len(t.names)
}

// Names returns the type names in declaration order. The slice is a copy.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Source returns the exact declaration text for name.
func (t *Table) Source(name string) (string, bool) {
	e, ok := t.entries[name]
	return e.text, ok
}

// Span returns the byte range the declaration occupied in the original
// source.
func (t *Table) Span(name string) (source.Span, bool) {
	e, ok := t.entries[name]
	return e.span, ok
}

func (t *Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}
