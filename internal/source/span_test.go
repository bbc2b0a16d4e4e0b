package source

import (
	"testing"
)

func TestSpan_Slice(t *testing.T) {
	src := []byte("type Alias = string")

	tests := []struct {
		name     string
		span     Span
		expected string
	}{
		{
			name:     "full buffer",
			span:     Span{Start: 0, End: 19},
			expected: "type Alias = string",
		},
		{
			name:     "inner slice",
			span:     Span{Start: 5, End: 10},
			expected: "Alias",
		},
		{
			name:     "empty span",
			span:     Span{Start: 4, End: 4},
			expected: "",
		},
		{
			name:     "end past buffer is clamped",
			span:     Span{Start: 13, End: 100},
			expected: "string",
		},
		{
			name:     "start past buffer is clamped",
			span:     Span{Start: 50, End: 100},
			expected: "",
		},
		{
			name:     "inverted span yields nothing",
			span:     Span{Start: 10, End: 5},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(tt.span.Slice(src))
			if got != tt.expected {
				t.Errorf("Slice() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{Start: 10, End: 20}
	b := Span{Start: 5, End: 15}

	got := a.Cover(b)
	want := Span{Start: 5, End: 20}
	if got != want {
		t.Errorf("Cover() = %+v, want %+v", got, want)
	}

	// Covering a contained span is a no-op.
	got = a.Cover(Span{Start: 12, End: 14})
	if got != a {
		t.Errorf("Cover(contained) = %+v, want %+v", got, a)
	}
}

func TestSpan_EmptyLen(t *testing.T) {
	s := Span{Start: 3, End: 3}
	if !s.Empty() {
		t.Errorf("expected empty span")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	s = Span{Start: 3, End: 8}
	if s.Empty() {
		t.Errorf("expected non-empty span")
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}
