// Package checker implements the virtual type checker: it assembles a
// synthetic compilation unit from global declarations, an optional named
// type pulled from a reference file, and a test snippet, runs the Go type
// checker over it entirely in memory, and reduces the resulting
// diagnostics to a pass/fail verdict.
package checker

import (
	"fmt"
	"os"
	"slices"

	"typeprobe/internal/config"
	"typeprobe/internal/diagfmt"
	"typeprobe/internal/extract"
	"typeprobe/internal/source"
)

// Options configures a new Checker. Every field is optional.
type Options struct {
	// ReferencePath names the file whose top-level type declarations
	// become selectable by name.
	ReferencePath string
	// GlobalDecls are declarations visible to every compilation unit.
	GlobalDecls string
	// GlobalPaths are declaration files included in every compilation,
	// on top of the process-wide defaults.
	GlobalPaths []string
	// LangVersion is the language-version tag (e.g. "go1.24"). Empty
	// falls back to the configured default, then the toolchain default.
	LangVersion string
	// Host overrides file resolution. Nil means the real filesystem.
	Host source.Host
}

// Checker holds the mutable state shared by all test calls of one
// instance. It is not safe for concurrent use; callers serialize access.
type Checker struct {
	host        source.Host
	refPath     string
	refText     string
	table       *extract.Table
	globalDecls string
	globalPaths []string
	langVersion string
}

// Verdict is the outcome of one test call.
type Verdict struct {
	Valid    bool
	Messages []string
}

// New constructs a Checker. When a reference path is given it is fetched
// and its type table derived immediately; an unreadable file fails
// construction.
func New(opts Options) (*Checker, error) {
	host := opts.Host
	if host == nil {
		host = source.DiskHost{}
	}
	c := &Checker{
		host:        host,
		table:       extract.NewTable(),
		globalDecls: opts.GlobalDecls,
		langVersion: opts.LangVersion,
	}
	if c.langVersion == "" {
		c.langVersion = config.Global().LangVersion
	}
	c.SetGlobalPaths(opts.GlobalPaths)
	if opts.ReferencePath != "" {
		if err := c.SetReferencePath(opts.ReferencePath); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ReferencePath returns the current reference file path, empty when none.
func (c *Checker) ReferencePath() string {
	return c.refPath
}

// SetReferencePath re-points the checker at path: the file is re-fetched
// and the type table fully rebuilt. On a read error the previous state is
// kept and the error names the path.
func (c *Checker) SetReferencePath(path string) error {
	content, err := c.host.ReadFile(path)
	if err != nil {
		return err
	}
	c.refPath = path
	c.refText = string(content)
	c.table = extract.Types(content)
	return nil
}

// Restore re-points at the given path, or re-fetches the current one when
// no path is supplied. Without any path at all the reference is cleared.
func (c *Checker) Restore(path ...string) error {
	target := c.refPath
	if len(path) > 0 && path[0] != "" {
		target = path[0]
	}
	if target == "" {
		c.refText = ""
		c.table = extract.NewTable()
		return nil
	}
	return c.SetReferencePath(target)
}

// GlobalDecls returns the declarations injected into every unit.
func (c *Checker) GlobalDecls() string {
	return c.globalDecls
}

// SetGlobalDecls replaces the global declarations.
func (c *Checker) SetGlobalDecls(decls string) {
	c.globalDecls = decls
}

// AddGlobalDecls concatenates more declarations onto the existing ones.
// Text is appended, never merged or deduplicated.
func (c *Checker) AddGlobalDecls(decls string) {
	if decls == "" {
		return
	}
	if c.globalDecls == "" {
		c.globalDecls = decls
		return
	}
	c.globalDecls = c.globalDecls + "\n" + decls
}

// GlobalPaths returns the instance declaration paths (defaults included).
func (c *Checker) GlobalPaths() []string {
	return slices.Clone(c.globalPaths)
}

// SetGlobalPaths stores paths unioned with the process-wide defaults,
// duplicates collapsed, first-seen order kept.
func (c *Checker) SetGlobalPaths(paths []string) {
	union := slices.Clone(config.Global().DeclarationPaths)
	union = append(union, paths...)
	c.globalPaths = config.DedupPaths(union)
}

// LangVersion returns the current language-version tag.
func (c *Checker) LangVersion() string {
	return c.langVersion
}

// SetLangVersion changes the tag for all subsequent checks. No validation
// happens here; an unusable tag fails at check time.
func (c *Checker) SetLangVersion(v string) {
	c.langVersion = v
}

// TypeNames returns the extracted type names in declaration order.
func (c *Checker) TypeNames() []string {
	return c.table.Names()
}

// TypeSource returns the exact declaration text for name.
func (c *Checker) TypeSource(name string) (string, bool) {
	return c.table.Source(name)
}

// MissingTypeError reports a requested type name absent from the table.
// It is a usage error, never part of a Verdict.
type MissingTypeError struct {
	Name string
	Path string
}

func (e *MissingTypeError) Error() string {
	path := e.Path
	if path == "" {
		path = "<no reference file>"
	}
	return fmt.Sprintf("type %q not found in %s", e.Name, path)
}

// Run assembles the compilation unit for snippet (optionally restricted
// to one named type from the reference) and type-checks it. The returned
// error covers usage problems only; type-check failures land in the
// Verdict's message list.
func (c *Checker) Run(snippet string, typeName ...string) (Verdict, error) {
	selected := c.refText
	if len(typeName) > 0 && typeName[0] != "" {
		name := typeName[0]
		text, ok := c.table.Source(name)
		if !ok {
			return Verdict{}, &MissingTypeError{Name: name, Path: c.refPath}
		}
		selected = text
	}

	unit := AssembleUnit(c.globalDecls, selected, snippet)
	if config.Global().Verbose {
		diagfmt.DumpSource(os.Stderr, SentinelName, unit)
	}

	bag, err := c.CheckUnit(unit, c.langVersion, c.effectivePaths(nil))
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{
		Valid:    bag.Len() == 0,
		Messages: bag.Messages(),
	}, nil
}

// Test reports whether snippet type-checks. Only usage errors are
// returned; an invalid snippet simply yields false.
func (c *Checker) Test(snippet string, typeName ...string) (bool, error) {
	v, err := c.Run(snippet, typeName...)
	if err != nil {
		return false, err
	}
	return v.Valid, nil
}

// effectivePaths unions the process-wide defaults, the instance paths,
// and per-call extras, deterministically.
func (c *Checker) effectivePaths(extra []string) []string {
	union := slices.Clone(config.Global().DeclarationPaths)
	union = append(union, c.globalPaths...)
	union = append(union, extra...)
	return config.DedupPaths(union)
}
