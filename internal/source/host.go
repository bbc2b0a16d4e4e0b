package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// Host resolves file contents for a compilation. The disk-backed
// implementation is the common case; Overlay decorates it to serve one
// in-memory file under a sentinel name.
type Host interface {
	// ReadFile returns the normalized contents of path.
	ReadFile(path string) ([]byte, error)
	// Exists reports whether path resolves to a readable file.
	Exists(path string) bool
}

// DiskHost reads files from the operating system, normalizing BOM and
// CRLF so parser byte offsets match the returned buffer.
type DiskHost struct{}

func (DiskHost) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Normalize(content), nil
}

func (DiskHost) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Overlay is a thin decorator over a base Host: exactly one name is served
// from memory, every other path is forwarded untouched.
type Overlay struct {
	Base    Host
	Name    string
	Content []byte
}

// NewOverlay wraps base so that name resolves to content.
func NewOverlay(base Host, name string, content []byte) *Overlay {
	if base == nil {
		base = DiskHost{}
	}
	return &Overlay{Base: base, Name: name, Content: content}
}

func (o *Overlay) ReadFile(path string) ([]byte, error) {
	if o.matches(path) {
		return o.Content, nil
	}
	return o.Base.ReadFile(path)
}

func (o *Overlay) Exists(path string) bool {
	if o.matches(path) {
		return true
	}
	return o.Base.Exists(path)
}

// Size returns the overlay content length as uint32, the width spans use.
func (o *Overlay) Size() uint32 {
	n, err := safecast.Conv[uint32](len(o.Content))
	if err != nil {
		panic(fmt.Errorf("overlay content overflow: %w", err))
	}
	return n
}

func (o *Overlay) matches(path string) bool {
	return path == o.Name || NormalizePath(path) == o.Name
}

// NormalizePath keeps paths in a single cross-platform form.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
