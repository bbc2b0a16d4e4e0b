package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"typeprobe/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	posColor     = color.New(color.Faint)
)

// Pretty renders the bag's diagnostics in a human-readable form, one
// block per diagnostic, preserving the checker's order:
//
//	<pos>: <SEVERITY>: <flattened message>
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if opts.ShowPos && d.Pos != "" {
			fmt.Fprintf(w, "%s: ", paint(posColor, d.Pos, opts.Color))
		}
		fmt.Fprintf(w, "%s: %s\n", paint(severityColor(d.Severity), d.Severity.String(), opts.Color), d.Flatten())
	}
	if truncated := bag.Len() - len(items); truncated > 0 {
		fmt.Fprintf(w, "\n... and %d more diagnostics\n", truncated)
	}
}

// Summary renders a one-line pass/fail verdict.
func Summary(w io.Writer, label string, valid bool, useColor bool) {
	if valid {
		fmt.Fprintf(w, "%s %s\n", paint(color.New(color.FgGreen, color.Bold), "ok", useColor), label)
		return
	}
	fmt.Fprintf(w, "%s %s\n", paint(errorColor, "FAIL", useColor), label)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevWarning:
		return warningColor
	case diag.SevInfo:
		return infoColor
	default:
		return errorColor
	}
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// Indent prefixes every line of s, used when nesting a diagnostic block
// under its file heading.
func Indent(s, prefix string) string {
	if s == "" {
		return s
	}
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
