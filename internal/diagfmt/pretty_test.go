package diagfmt

import (
	"strings"
	"testing"

	"typeprobe/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Pos:      "__snippet__.go:4:5",
		Message:  diag.Leaf("cannot use 1 (untyped int constant) as string value"),
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Message:  diag.Leaf("declared and not used: tmp"),
	})
	return bag
}

func TestPretty_PlainOutput(t *testing.T) {
	var b strings.Builder
	Pretty(&b, sampleBag(), PrettyOpts{ShowPos: true})
	out := b.String()

	if !strings.Contains(out, "ERROR: cannot use 1") {
		t.Errorf("error line missing: %q", out)
	}
	if !strings.Contains(out, "__snippet__.go:4:5") {
		t.Errorf("position missing: %q", out)
	}
	if !strings.Contains(out, "WARNING: declared and not used") {
		t.Errorf("warning line missing: %q", out)
	}
	// Order must match production order.
	if strings.Index(out, "ERROR") > strings.Index(out, "WARNING") {
		t.Errorf("diagnostics reordered: %q", out)
	}
}

func TestPretty_Truncation(t *testing.T) {
	var b strings.Builder
	Pretty(&b, sampleBag(), PrettyOpts{Max: 1})
	out := b.String()

	if strings.Contains(out, "WARNING") {
		t.Errorf("truncated diagnostic still rendered: %q", out)
	}
	if !strings.Contains(out, "1 more") {
		t.Errorf("truncation note missing: %q", out)
	}
}

func TestSummary(t *testing.T) {
	var b strings.Builder
	Summary(&b, "snippet.go", true, false)
	if !strings.Contains(b.String(), "ok snippet.go") {
		t.Errorf("Summary(valid) = %q", b.String())
	}

	b.Reset()
	Summary(&b, "snippet.go", false, false)
	if !strings.Contains(b.String(), "FAIL snippet.go") {
		t.Errorf("Summary(invalid) = %q", b.String())
	}
}

func TestToJSON(t *testing.T) {
	got := ToJSON(sampleBag(), JSONOpts{})
	if len(got) != 2 {
		t.Fatalf("ToJSON() len = %d, want 2", len(got))
	}
	if got[0].Severity != "ERROR" || got[0].Pos != "__snippet__.go:4:5" {
		t.Errorf("ToJSON()[0] = %+v", got[0])
	}
	if got[1].Severity != "WARNING" || got[1].Pos != "" {
		t.Errorf("ToJSON()[1] = %+v", got[1])
	}

	capped := ToJSON(sampleBag(), JSONOpts{Max: 1})
	if len(capped) != 1 {
		t.Errorf("ToJSON(Max=1) len = %d", len(capped))
	}
}

func TestDumpSource(t *testing.T) {
	var b strings.Builder
	DumpSource(&b, "__snippet__.go", "package snippets\n\nvar x int\n")
	out := b.String()

	if !strings.Contains(out, "__snippet__.go") {
		t.Errorf("title missing: %q", out)
	}
	if !strings.Contains(out, "package snippets") {
		t.Errorf("source missing: %q", out)
	}
	if !strings.Contains(out, "│") {
		t.Errorf("line-number gutter missing: %q", out)
	}
	if !strings.Contains(out, "─") {
		t.Errorf("box border missing: %q", out)
	}
	for _, n := range []string{"1", "2", "3"} {
		if !strings.Contains(out, n) {
			t.Errorf("line number %s missing: %q", n, out)
		}
	}
}

func TestIndent(t *testing.T) {
	if got := Indent("a\nb", "  "); got != "  a\n  b" {
		t.Errorf("Indent() = %q", got)
	}
	if got := Indent("", "  "); got != "" {
		t.Errorf("Indent(empty) = %q", got)
	}
}
