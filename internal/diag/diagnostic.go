package diag

import (
	"strings"
)

// MaxCauseDepth bounds how deep Flatten descends into nested causes.
const MaxCauseDepth = 2

// Message is one node of a diagnostic message tree: the text itself plus
// any follow-on causes the checker attached to it.
type Message struct {
	Text   string
	Causes []Message
}

// Leaf builds a message with no causes.
func Leaf(text string) Message {
	return Message{Text: text}
}

// WithCause returns a copy of m with cause appended.
func (m Message) WithCause(cause Message) Message {
	causes := make([]Message, 0, len(m.Causes)+1)
	causes = append(causes, m.Causes...)
	causes = append(causes, cause)
	m.Causes = causes
	return m
}

// Flatten joins the tree into a single string. Causes are separated from
// their parent by a blank line and indented two spaces per nesting level.
// Levels beyond MaxCauseDepth are dropped.
func (m Message) Flatten() string {
	var b strings.Builder
	m.flattenInto(&b, 0)
	return b.String()
}

func (m Message) flattenInto(b *strings.Builder, depth int) {
	if depth > 0 {
		b.WriteString("\n\n")
	}
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(strings.ReplaceAll(m.Text, "\n", "\n"+indent))
	if depth >= MaxCauseDepth {
		return
	}
	for _, c := range m.Causes {
		c.flattenInto(b, depth+1)
	}
}

// Diagnostic is one finding of the checker for a compilation unit.
type Diagnostic struct {
	Severity Severity
	Pos      string // checker-formatted position, may be empty
	Message  Message
}

// Flatten renders the diagnostic's message tree as one string.
func (d Diagnostic) Flatten() string {
	return d.Message.Flatten()
}
