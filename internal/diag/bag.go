package diag

import (
	"fmt"

	"fortio.org/safecast"
)

// Bag is a bounded, order-preserving collection of diagnostics. Order is
// the order in which the checker produced them; a Bag never sorts.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	capped, err := safecast.Conv[uint16](max)
	if err != nil {
		panic(fmt.Errorf("bag capacity overflow: %w", err))
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   capped,
	}
}

// Add appends a diagnostic, honoring the limit.
// Returns false when the diagnostic was dropped (limit reached).
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AttachCause adds cause to the most recently added diagnostic. Used for
// tab-indented follow-on errors from the checker. Returns false when the
// bag is empty.
func (b *Bag) AttachCause(cause Message) bool {
	if len(b.items) == 0 {
		return false
	}
	last := &b.items[len(b.items)-1]
	last.Message = last.Message.WithCause(cause)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether at least one diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// Items returns a read-only view of the diagnostics.
// Do not modify the returned slice; it aliases the Bag's storage.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends diagnostics from another Bag, growing max when needed.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	total, err := safecast.Conv[uint16](newTotal)
	if err != nil {
		panic(fmt.Errorf("bag merge overflow: %w", err))
	}
	if total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Messages flattens every diagnostic into its single-string form,
// preserving order.
func (b *Bag) Messages() []string {
	out := make([]string, 0, len(b.items))
	for _, d := range b.items {
		out = append(out, d.Flatten())
	}
	return out
}
