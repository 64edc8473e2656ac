// Package path provides an asynchronous-friendly façade over filesystem
// paths: an unowned Path view and an owned PathBuf buffer exposing the usual
// lexical operations, plus filesystem queries (Canonicalize, Exists,
// Metadata, SymlinkMetadata) that are dispatched onto a bounded worker pool
// so the calling goroutine never performs a blocking syscall itself.
//
// All lexical operations delegate to the standard path/filepath package and
// never touch the filesystem.
package path

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Path is an immutable, borrowed view over path text. Conversion to and from
// string is a zero-cost type reinterpretation; Path never owns or reallocates
// the bytes it views.
//
// All methods are read-only. Mutating operations live on PathBuf.
type Path string

// New wraps a string as a Path. This is a cost-free conversion.
func New(s string) Path {
	return Path(s)
}

// String returns the path verbatim, including any non-UTF-8 bytes.
func (p Path) String() string {
	return string(p)
}

// Display returns a form of the path safe for printing: invalid UTF-8
// sequences are replaced with the Unicode replacement character. Lossy, so
// only suitable for human-facing output.
func (p Path) Display() string {
	return strings.ToValidUTF8(string(p), string(utf8.RuneError))
}

// IsAbs reports whether the path is absolute.
func (p Path) IsAbs() bool {
	return filepath.IsAbs(string(p))
}

// IsRelative reports whether the path is relative.
func (p Path) IsRelative() bool {
	return !p.IsAbs()
}

// Parent returns the logical parent of the path, dropping the final
// component as defined by the lexical engine. The second return is false
// when no parent exists: for the empty path, the root, and once the parent
// operation reaches a fixed point ("/" or ".").
func (p Path) Parent() (Path, bool) {
	if p == "" {
		return "", false
	}
	dir := Path(filepath.Dir(string(p)))
	if dir == p {
		return "", false
	}
	return dir, true
}

// FileName returns the final component of the path, if it is a normal
// segment. Paths ending in "..", "." or a root marker have no file name.
func (p Path) FileName() (string, bool) {
	var last Component
	found := false
	iter := p.Components()
	for {
		comp, ok := iter.Next()
		if !ok {
			break
		}
		last = comp
		found = true
	}
	if !found || last.Kind != KindNormal {
		return "", false
	}
	return last.Name, true
}

// Extension returns the extension of the file name, without the dot.
//
// The extension is absent when there is no file name, when the file name
// contains no ".", or when the file name begins with "." and contains no
// other "." (dotfiles such as ".bashrc" have no extension).
func (p Path) Extension() (string, bool) {
	name, ok := p.FileName()
	if !ok {
		return "", false
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}

// FileStem returns the file name with its extension removed. A dotfile's
// stem is the whole file name.
func (p Path) FileStem() (string, bool) {
	name, ok := p.FileName()
	if !ok {
		return "", false
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, true
	}
	return name[:i], true
}

// EndsWith reports whether child is a suffix of p, considering whole path
// components only: "/etc/passwd" ends with "passwd" but not with "wd".
func (p Path) EndsWith(child Path) bool {
	a := p.Components().Collect()
	b := child.Components().Collect()
	if len(b) > len(a) {
		return false
	}
	offset := len(a) - len(b)
	for i, comp := range b {
		if a[offset+i] != comp {
			return false
		}
	}
	return true
}

// StartsWith reports whether base is a prefix of p, considering whole path
// components only.
func (p Path) StartsWith(base Path) bool {
	a := p.Components().Collect()
	b := base.Components().Collect()
	if len(b) > len(a) {
		return false
	}
	for i, comp := range b {
		if a[i] != comp {
			return false
		}
	}
	return true
}

// StripPrefix returns the remainder of p after removing the leading base
// components. The second return is false when base is not a component-wise
// prefix of p.
func (p Path) StripPrefix(base Path) (Path, bool) {
	iter := p.Components()
	biter := base.Components()
	for {
		want, ok := biter.Next()
		if !ok {
			break
		}
		got, ok := iter.Next()
		if !ok || got != want {
			return "", false
		}
	}
	rest := iter.rest
	for len(rest) > 0 && isSep(rest[0]) {
		rest = rest[1:]
	}
	return Path(rest), true
}

// Equal reports component-wise lexical equality: "a/b" equals "a//b/" and
// "a/b/." but not "./a/b". The comparison never consults the filesystem.
func (p Path) Equal(other Path) bool {
	a := p.Components()
	b := other.Components()
	for {
		ca, oka := a.Next()
		cb, okb := b.Next()
		if oka != okb {
			return false
		}
		if !oka {
			return true
		}
		if ca != cb {
			return false
		}
	}
}

// Compare orders two paths component-wise, returning -1, 0 or +1.
func (p Path) Compare(other Path) int {
	a := p.Components()
	b := other.Components()
	for {
		ca, oka := a.Next()
		cb, okb := b.Next()
		switch {
		case !oka && !okb:
			return 0
		case !oka:
			return -1
		case !okb:
			return 1
		}
		if c := strings.Compare(ca.Name, cb.Name); c != 0 {
			return c
		}
	}
}

// ToBuf copies the path into a freshly owned PathBuf.
func (p Path) ToBuf() PathBuf {
	return PathBuf{buf: []byte(p)}
}

// Join adjoins other onto a copy of p, following Push semantics: an
// absolute other replaces p entirely.
func (p Path) Join(other Path) PathBuf {
	buf := p.ToBuf()
	buf.Push(other)
	return buf
}

// WithFileName returns a copy of p with the final component replaced.
func (p Path) WithFileName(name string) PathBuf {
	buf := p.ToBuf()
	buf.SetFileName(name)
	return buf
}

// WithExtension returns a copy of p with the extension replaced. When p has
// no file name the copy is returned unchanged.
func (p Path) WithExtension(ext string) PathBuf {
	buf := p.ToBuf()
	buf.SetExtension(ext)
	return buf
}

// Filesystem queries. Each dispatches onto the default Dispatcher's worker
// pool and suspends only the calling goroutine until the syscall completes
// or ctx is cancelled. See Dispatcher for pooling, backends and the
// cancellation contract.

// Canonicalize returns the canonical, absolute form of the path with all
// intermediate components normalized and symbolic links resolved. It fails
// when the path does not exist or is not traversable.
func (p Path) Canonicalize(ctx context.Context) (PathBuf, error) {
	return Default().Canonicalize(ctx, p)
}

// Metadata queries the filesystem for information about the path,
// traversing symbolic links to the target.
func (p Path) Metadata(ctx context.Context) (Metadata, error) {
	return Default().Metadata(ctx, p)
}

// SymlinkMetadata queries metadata without following a final symbolic link
// component; if the path is a link the metadata describes the link itself.
func (p Path) SymlinkMetadata(ctx context.Context) (Metadata, error) {
	return Default().SymlinkMetadata(ctx, p)
}

// Exists reports whether the path points at an existing entity. Every
// failure cause — nonexistence, broken symlinks, permission errors on the
// containing directory — coerces to false; Exists never surfaces an error.
func (p Path) Exists(ctx context.Context) bool {
	return Default().Exists(ctx, p)
}
