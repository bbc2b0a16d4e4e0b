package checker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExpectedInvalid is returned by IsNotValid when the snippet
// unexpectedly type-checked.
var ErrExpectedInvalid = errors.New("expected code to be invalid")

// InvalidSnippetError bundles every diagnostic of a failed assertion.
type InvalidSnippetError struct {
	Messages []string
	Extra    string
}

func (e *InvalidSnippetError) Error() string {
	var b strings.Builder
	b.WriteString("expected code to be valid")
	if e.Extra != "" {
		b.WriteString(": ")
		b.WriteString(e.Extra)
	}
	for _, msg := range e.Messages {
		b.WriteString("\n\n")
		b.WriteString(msg)
	}
	return b.String()
}

// Assertion is the deferred pair of checks produced by Assert. The
// verdict is computed once, up front; IsValid and IsNotValid only decide
// whether that verdict is a failure.
type Assertion struct {
	verdict Verdict
}

// Assert evaluates snippet and returns the deferred checks. Usage errors
// (missing type name, unreadable files, bad version tag) surface here.
func (c *Checker) Assert(snippet string, typeName ...string) (*Assertion, error) {
	v, err := c.Run(snippet, typeName...)
	if err != nil {
		return nil, err
	}
	return &Assertion{verdict: v}, nil
}

// Verdict exposes the computed outcome.
func (a *Assertion) Verdict() Verdict {
	return a.verdict
}

// IsValid returns nil when the snippet type-checked, otherwise an error
// carrying every diagnostic message plus the optional caller context.
func (a *Assertion) IsValid(extra ...string) error {
	if a.verdict.Valid {
		return nil
	}
	return &InvalidSnippetError{
		Messages: a.verdict.Messages,
		Extra:    firstOf(extra),
	}
}

// IsNotValid returns nil when the snippet failed to type-check, otherwise
// ErrExpectedInvalid (wrapped with the optional caller context).
func (a *Assertion) IsNotValid(extra ...string) error {
	if !a.verdict.Valid {
		return nil
	}
	if msg := firstOf(extra); msg != "" {
		return fmt.Errorf("%w: %s", ErrExpectedInvalid, msg)
	}
	return ErrExpectedInvalid
}

func firstOf(extra []string) string {
	if len(extra) > 0 {
		return extra[0]
	}
	return ""
}
