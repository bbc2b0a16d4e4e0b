package extract

import (
	"strings"
	"testing"
)

func TestTypes_CollectsTopLevelDeclarations(t *testing.T) {
	src := `package ref

// ID identifies a record.
type ID = int64

type Name = string

type Pair struct {
	A ID
	B Name
}
`
	table := Types([]byte(src))

	wantNames := []string{"ID", "Name", "Pair"}
	gotNames := table.Names()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("Names() = %v, want %v", gotNames, wantNames)
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, gotNames[i], wantNames[i])
		}
	}

	tests := []struct {
		name string
		want string
	}{
		{name: "ID", want: "type ID = int64"},
		{name: "Name", want: "type Name = string"},
		{name: "Pair", want: "type Pair struct {\n\tA ID\n\tB Name\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Source(tt.name)
			if !ok {
				t.Fatalf("Source(%q) missing", tt.name)
			}
			if got != tt.want {
				t.Errorf("Source(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestTypes_ExactSpanSlicing(t *testing.T) {
	src := "package ref\n\ntype Weird=  map[string] []int\n"
	table := Types([]byte(src))

	got, ok := table.Source("Weird")
	if !ok {
		t.Fatalf("Weird not extracted")
	}
	// The original spacing must survive verbatim; no reprinting allowed.
	if got != "type Weird=  map[string] []int" {
		t.Errorf("Source(Weird) = %q", got)
	}

	sp, ok := table.Span("Weird")
	if !ok {
		t.Fatalf("Span(Weird) missing")
	}
	if string(sp.Slice([]byte(src))) != got {
		t.Errorf("Span does not re-slice to the same text: %q", sp.Slice([]byte(src)))
	}
}

func TestTypes_GroupedBlock(t *testing.T) {
	src := `package ref

type (
	A = int
	B = string
)
`
	table := Types([]byte(src))
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got, _ := table.Source("A"); got != "type A = int" {
		t.Errorf("Source(A) = %q", got)
	}
	if got, _ := table.Source("B"); got != "type B = string" {
		t.Errorf("Source(B) = %q", got)
	}
}

func TestTypes_LastWriteWins(t *testing.T) {
	src := `package ref

type Dup = int

type Dup = string
`
	table := Types([]byte(src))
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	if got, _ := table.Source("Dup"); got != "type Dup = string" {
		t.Errorf("Source(Dup) = %q, want the later declaration", got)
	}
}

func TestTypes_IgnoresNestedAndNonTypeDecls(t *testing.T) {
	src := `package ref

const answer = 42

var label string

func helper() {
	type hidden = int
	_ = hidden(0)
}

type Visible = bool
`
	table := Types([]byte(src))
	names := table.Names()
	if len(names) != 1 || names[0] != "Visible" {
		t.Errorf("Names() = %v, want [Visible]", names)
	}
	if table.Has("hidden") {
		t.Errorf("nested declaration leaked into the table")
	}
	if table.Has("answer") || table.Has("label") {
		t.Errorf("non-type declaration leaked into the table")
	}
}

func TestTypes_BareDeclarationsWithoutPackageClause(t *testing.T) {
	src := "type Alias = string\n\ntype Other = int\n"
	table := Types([]byte(src))
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got, _ := table.Source("Alias"); got != "type Alias = string" {
		t.Errorf("Source(Alias) = %q", got)
	}
	if got, _ := table.Source("Other"); got != "type Other = int" {
		t.Errorf("Source(Other) = %q", got)
	}
}

func TestTypes_EmptyAndMalformedInput(t *testing.T) {
	if got := Types(nil); got.Len() != 0 {
		t.Errorf("Types(nil).Len() = %d, want 0", got.Len())
	}
	if got := Types([]byte("")); got.Len() != 0 {
		t.Errorf("Types(\"\").Len() = %d, want 0", got.Len())
	}

	// A broken tail must not hide declarations that still parse.
	src := "package ref\n\ntype Good = int\n\ntype Broken = \n"
	table := Types([]byte(src))
	if !table.Has("Good") {
		t.Errorf("tolerant parse lost Good: names=%v", table.Names())
	}
}

func TestTypes_GenericDeclaration(t *testing.T) {
	src := "package ref\n\ntype List[T any] struct {\n\thead *T\n}\n"
	table := Types([]byte(src))
	got, ok := table.Source("List")
	if !ok {
		t.Fatalf("List not extracted")
	}
	if !strings.Contains(got, "[T any]") {
		t.Errorf("Source(List) = %q, type parameters lost", got)
	}
}
