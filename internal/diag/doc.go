// Package diag defines the diagnostic model shared by the virtual checker
// and the CLI.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture what
//     the type checker reports for one synthetic compilation unit.
//   - Offer light-weight utilities (Bag, Flatten) that let producers collect
//     diagnostics without coupling to storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; collection happens in
// internal/checker.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Pos: the checker-reported position, already formatted (file:line:col).
//   - Message: a recursive tree of message text plus causes. The underlying
//     checker reports follow-on details as separate tab-indented errors;
//     those attach as causes of the diagnostic they elaborate.
//
// Message.Flatten joins a tree into a single string, separating nested
// causes with a blank line and indenting each nesting level, bounded to a
// fixed depth so pathological chains cannot produce unbounded output.
//
// Keep the data model deterministic: diagnostics preserve the order in which
// the checker produced them, and a Bag never reorders its items.
package diag
