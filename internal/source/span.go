package source

import (
	"fmt"
)

// Span is a half-open byte range into a single source buffer.
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Slice returns the exact bytes the span covers. Out-of-range spans are
// clamped to the buffer so a span built from a tolerant parse never panics.
func (s Span) Slice(src []byte) []byte {
	start, end := s.Start, s.End
	if start > uint32(len(src)) {
		start = uint32(len(src))
	}
	if end > uint32(len(src)) {
		end = uint32(len(src))
	}
	if start > end {
		return nil
	}
	return src[start:end]
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
