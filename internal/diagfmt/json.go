package diagfmt

import (
	"encoding/json"
	"io"

	"typeprobe/internal/diag"
)

// DiagnosticJSON is the wire form of one diagnostic.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Pos      string `json:"pos,omitempty"`
	Message  string `json:"message"`
}

// VerdictJSON is the wire form of one test outcome.
type VerdictJSON struct {
	Label       string           `json:"label,omitempty"`
	Valid       bool             `json:"valid"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
}

// ToJSON converts a bag into its wire form, preserving order.
func ToJSON(bag *diag.Bag, opts JSONOpts) []DiagnosticJSON {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	out := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		out = append(out, DiagnosticJSON{
			Severity: d.Severity.String(),
			Pos:      d.Pos,
			Message:  d.Flatten(),
		})
	}
	return out
}

// WriteJSON encodes payload with stable indentation.
func WriteJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
