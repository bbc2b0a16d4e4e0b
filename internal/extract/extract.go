// Package extract pulls top-level named type declarations out of a source
// buffer, preserving each declaration's exact original text.
package extract

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	"fortio.org/safecast"

	"typeprobe/internal/source"
)

// header is prepended when the input has no package clause, so bare
// declaration files still parse. Slicing subtracts its length back out.
const header = "package _\n"

const refName = "reference.go"

// Types parses src tolerantly and collects every top-level named type
// declaration into a Table. The parse is best-effort: malformed input
// yields whatever declarations were still recognizable, never an error.
// Declarations nested inside functions are not visited.
func Types(src []byte) *Table {
	table := NewTable()
	if len(src) == 0 {
		return table
	}

	buf := src
	prefix := uint32(0)
	if !hasPackageClause(src) {
		buf = append([]byte(header), src...)
		prefix = uint32(len(header))
	}

	fset := token.NewFileSet()
	file, _ := parser.ParseFile(fset, refName, buf, parser.AllErrors|parser.SkipObjectResolution)
	if file == nil {
		return table
	}
	tf := fset.File(file.Pos())
	if tf == nil {
		return table
	}

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name == nil || ts.Name.Name == "" {
				continue
			}
			var sp source.Span
			var text string
			if gd.Lparen.IsValid() {
				// Inside a type (...) block each spec is recorded on its
				// own, prefixed so the entry stays a complete declaration.
				sp = spanOf(tf, ts.Pos(), ts.End(), prefix)
				text = "type " + string(sp.Slice(src))
			} else {
				sp = spanOf(tf, gd.Pos(), gd.End(), prefix)
				text = string(sp.Slice(src))
			}
			table.put(ts.Name.Name, text, sp)
		}
	}
	return table
}

func spanOf(tf *token.File, start, end token.Pos, prefix uint32) source.Span {
	s := clampOffset(tf, start, prefix)
	e := clampOffset(tf, end, prefix)
	return source.Span{Start: s, End: e}
}

func clampOffset(tf *token.File, pos token.Pos, prefix uint32) uint32 {
	off, err := safecast.Conv[uint32](tf.Offset(pos))
	if err != nil {
		panic(fmt.Errorf("declaration offset overflow: %w", err))
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
	tf := fset.AddFile(refName, fset.Base(), len(src))
	s.Init(tf, src, nil, 0)
	_, tok, _ := s.Scan()
	return tok == token.PACKAGE
}
