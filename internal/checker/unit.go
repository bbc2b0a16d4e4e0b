package checker

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"typeprobe/internal/source"
)

const (
	// SentinelName is the synthetic file's name. It intercepts host
	// resolution and must stay distinct from any real path on disk.
	SentinelName = "__snippet__.go"

	// UnitPackage is the package every compilation unit compiles into.
	UnitPackage = "snippets"

	unitHeader = "package " + UnitPackage + "\n"
)

type importLine struct {
	alias string
	path  string
}

// AssembleUnit builds the synthetic file from the three parts:
// global declarations, the selected type text (or the full reference
// text), and the test snippet, concatenated with newline separators.
//
// Two Go-file necessities are layered on top of the concatenation: the
// unit package clause, and import declarations hoisted out of the parts
// (deduplicated by alias and path) so they precede all other
// declarations. Package clauses inside the parts are stripped.
func AssembleUnit(globalDecls, selected, snippet string) string {
	var bodies [3]string
	var imports []importLine
	seen := make(map[string]bool)

	for i, part := range [3]string{globalDecls, selected, snippet} {
		body, lines := splitPart(part)
		bodies[i] = body
		for _, line := range lines {
			key := line.alias + "\x00" + line.path
			if seen[key] {
				continue
			}
			seen[key] = true
			imports = append(imports, line)
		}
	}

	var b strings.Builder
	b.WriteString(unitHeader)
	b.WriteString("\n")
	if len(imports) > 0 {
		b.WriteString("import (\n")
		for _, line := range imports {
			b.WriteString("\t")
			if line.alias != "" {
				b.WriteString(line.alias)
				b.WriteString(" ")
			}
			b.WriteString(strconv.Quote(line.path))
			b.WriteString("\n")
		}
		b.WriteString(")\n\n")
	}
	b.WriteString(bodies[0])
	b.WriteString("\n")
	b.WriteString(bodies[1])
	b.WriteString("\n")
	b.WriteString(bodies[2])
	b.WriteString("\n")
	return b.String()
}

// splitPart strips a package clause from part and lifts out its import
// declarations. Parsing is best-effort: when the part does not parse at
// all it is returned untouched so its errors surface as diagnostics.
func splitPart(part string) (string, []importLine) {
	if strings.TrimSpace(part) == "" {
		return "", nil
	}

	src := []byte(part)
	buf := src
	prefix := uint32(0)
	if !hasPackageClause(src) {
		buf = append([]byte(unitHeader), src...)
		prefix = uint32(len(unitHeader))
	}

	fset := token.NewFileSet()
	file, _ := parser.ParseFile(fset, "part.go", buf, parser.AllErrors|parser.SkipObjectResolution)
	if file == nil {
		return part, nil
	}
	tf := fset.File(file.Pos())
	if tf == nil {
		return part, nil
	}

	var cuts []source.Span
	if prefix == 0 && file.Name != nil {
		// The part carried its own package clause; cut from the file
		// start through the package identifier.
		cuts = append(cuts, source.Span{Start: 0, End: offsetIn(tf, file.Name.End(), 0)})
	}

	var imports []importLine
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}
		cuts = append(cuts, source.Span{
			Start: offsetIn(tf, gd.Pos(), prefix),
			End:   offsetIn(tf, gd.End(), prefix),
		})
		for _, spec := range gd.Specs {
			is, ok := spec.(*ast.ImportSpec)
			if !ok || is.Path == nil {
				continue
			}
			path, err := strconv.Unquote(is.Path.Value)
			if err != nil {
				continue
			}
			line := importLine{path: path}
			if is.Name != nil {
				line.alias = is.Name.Name
			}
			imports = append(imports, line)
		}
	}

	return splice(part, cuts), imports
}

// splice removes the given spans from part. Spans arrive in ascending
// order because they mirror declaration order.
func splice(part string, cuts []source.Span) string {
	if len(cuts) == 0 {
		return part
	}
	var b strings.Builder
	pos := uint32(0)
	for _, cut := range cuts {
		if cut.Start > pos {
			b.WriteString(part[pos:min(int(cut.Start), len(part))])
		}
		if cut.End > pos {
			pos = cut.End
		}
	}
	if int(pos) < len(part) {
		b.WriteString(part[pos:])
	}
	return strings.TrimLeft(b.String(), "\n")
}

func offsetIn(tf *token.File, pos token.Pos, prefix uint32) uint32 {
	off, err := safecast.Conv[uint32](tf.Offset(pos))
	if err != nil {
		panic(fmt.Errorf("part offset overflow: %w", err))
	}
	if off < prefix {
		return 0
	}
	return off - prefix
}

// hasPackageClause reports whether the first token of src is `package`.
func hasPackageClause(src []byte) bool {
	var s scanner.Scanner
	fset := token.NewFileSet()
	tf := fset.AddFile("part.go", fset.Base(), len(src))
	s.Init(tf, src, nil, 0)
	_, tok, _ := s.Scan()
	return tok == token.PACKAGE
}
