package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color   bool
	ShowPos bool
	Max     int // 0 means no output truncation
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Max int // output truncation, does not touch the Bag
}
