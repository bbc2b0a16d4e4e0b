// Package config holds process-wide defaults applied to every checker
// instance: global declaration paths, the verbosity flag, and the default
// language-version tag.
//
// The configuration is an explicit singleton. It is read at checker
// construction time and again at each check, never frozen; tests must call
// Reset between cases to avoid cross-test leakage.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the upward search looks for.
const ManifestName = "typeprobe.toml"

// Config carries the process-wide defaults.
type Config struct {
	// DeclarationPaths are declaration files included in every
	// compilation for every checker instance.
	DeclarationPaths []string
	// Verbose enables the assembled-source dump on each check.
	Verbose bool
	// LangVersion is the default language-version tag (e.g. "go1.24").
	// Empty means the toolchain default.
	LangVersion string
}

var global = &Config{}

// Global returns the process-wide configuration. Callers share the same
// instance; there is no internal locking.
func Global() *Config {
	return global
}

// Reset restores the zero configuration. Intended for tests.
func Reset() {
	global = &Config{}
}

// SetVerbose toggles the assembled-source dump.
func SetVerbose(v bool) {
	global.Verbose = v
}

// SetLangVersion sets the default language-version tag.
func SetLangVersion(v string) {
	global.LangVersion = v
}

// SetDeclarationPaths replaces the default declaration paths, collapsing
// duplicates while keeping first-seen order.
func SetDeclarationPaths(paths []string) {
	global.DeclarationPaths = DedupPaths(paths)
}

// AddDeclarationPath appends a default declaration path unless already
// present.
func AddDeclarationPath(path string) {
	for _, p := range global.DeclarationPaths {
		if p == path {
			return
		}
	}
	global.DeclarationPaths = append(global.DeclarationPaths, path)
}

// DedupPaths collapses duplicates, keeping first-seen order.
func DedupPaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

type manifest struct {
	Check struct {
		LangVersion string `toml:"lang_version"`
		Verbose     bool   `toml:"verbose"`
	} `toml:"check"`
	Declarations struct {
		Paths []string `toml:"paths"`
	} `toml:"declarations"`
}

// LoadFile reads a manifest and applies it to the global configuration.
// Relative declaration paths are resolved against the manifest directory.
func LoadFile(path string) error {
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	base := filepath.Dir(path)
	paths := make([]string, 0, len(m.Declarations.Paths))
	for _, p := range m.Declarations.Paths {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		paths = append(paths, p)
	}
	global.DeclarationPaths = DedupPaths(paths)
	global.Verbose = m.Check.Verbose
	global.LangVersion = m.Check.LangVersion
	return nil
}

// Find walks up from startDir to locate a typeprobe.toml manifest.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Init locates and applies the nearest manifest, if any. Returns whether a
// manifest was found.
func Init(startDir string) (bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return false, err
	}
	if err := LoadFile(path); err != nil {
		return true, err
	}
	return true, nil
}
