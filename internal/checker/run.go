package checker

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"go/version"
	"strings"

	"typeprobe/internal/diag"
	"typeprobe/internal/source"
)

// maxDiagnostics bounds how many diagnostics one check collects.
const maxDiagnostics = 100

// CheckUnit type-checks unitText as the contents of the sentinel file.
// Root inputs are the sentinel plus every path in extraPaths, resolved
// through an overlay host: the sentinel comes from memory, everything
// else from disk. Nothing is ever written; only diagnostics come back,
// parse diagnostics first, then type-check diagnostics in the order the
// checker produced them. An empty bag means the unit is valid.
//
/// Errors are reserved for usage problems: an invalid language-version
// tag or an unreadable extra declaration file.
func (c *Checker) CheckUnit(unitText, langVersion string, extraPaths []string) (*diag.Bag, error) {
	if langVersion != "" && !version.IsValid(langVersion) {
		return nil, fmt.Errorf("unknown language version %q", langVersion)
	}

	host := source.NewOverlay(c.host, SentinelName, []byte(unitText))
	fset := token.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)

	content, err := host.ReadFile(SentinelName)
	if err != nil {
		return nil, err
	}
	unitFile, perr := parser.ParseFile(fset, SentinelName, content, parser.AllErrors|parser.SkipObjectResolution)
	collectParseErrors(bag, perr)
	if unitFile == nil {
		return bag, nil
	}

	pkgName := UnitPackage
	if unitFile.Name != nil {
		pkgName = unitFile.Name.Name
	}

	files := []*ast.File{unitFile}
	for _, path := range extraPaths {
		declContent, err := host.ReadFile(path)
		if err != nil {
			return nil, err
		}
		declFile, derr := parser.ParseFile(fset, path, declContent, parser.AllErrors|parser.SkipObjectResolution)
		collectParseErrors(bag, derr)
		if declFile == nil {
			continue
		}
		if declFile.Name != nil {
			// Declaration files join the synthetic package whatever
			// package clause they carry on disk.
			declFile.Name.Name = pkgName
		}
		files = append(files, declFile)
	}

	conf := types.Config{
		// The source importer resolves imports from GOROOT/src and does
		// not depend on precompiled export data being present.
		Importer:  importer.ForCompiler(fset, "source", nil),
		GoVersion: langVersion,
		Error: func(err error) {
			collectTypeError(bag, err)
		},
	}
	if _, cerr := conf.Check(pkgName, fset, files, nil); cerr != nil && bag.Len() == 0 {
		// The checker bailed before reporting anything through the
		// handler; treat it like a resolution failure.
		return nil, fmt.Errorf("type check aborted: %w", cerr)
	}
	return bag, nil
}

func collectParseErrors(bag *diag.Bag, err error) {
	if err == nil {
		return
	}
	var list scanner.ErrorList
	if ok := asErrorList(err, &list); ok {
		for _, e := range list {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Pos:      e.Pos.String(),
				Message:  diag.Leaf(e.Msg),
			})
		}
		return
	}
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Message:  diag.Leaf(err.Error()),
	})
}

func asErrorList(err error, out *scanner.ErrorList) bool {
	list, ok := err.(scanner.ErrorList)
	if ok {
		*out = list
	}
	return ok
}

// collectTypeError files one checker-reported error into the bag. The
// checker delivers follow-on details as separate errors whose message
// starts with a tab; those attach as causes of the previous diagnostic.
func collectTypeError(bag *diag.Bag, err error) {
	te, ok := err.(types.Error)
	if !ok {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Message:  diag.Leaf(err.Error()),
		})
		return
	}

	msg := te.Msg
	if strings.HasPrefix(msg, "\t") {
		if bag.AttachCause(diag.Leaf(strings.TrimLeft(msg, "\t"))) {
			return
		}
		// No parent to attach to; degrade to a standalone diagnostic.
		msg = strings.TrimLeft(msg, "\t")
	}

	sev := diag.SevError
	if te.Soft {
		sev = diag.SevWarning
	}
	pos := ""
	if te.Fset != nil && te.Pos.IsValid() {
		pos = te.Fset.Position(te.Pos).String()
	}
	bag.Add(diag.Diagnostic{
		Severity: sev,
		Pos:      pos,
		Message:  diag.Leaf(msg),
	})
}
