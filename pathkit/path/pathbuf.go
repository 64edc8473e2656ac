package path

import (
	"path/filepath"
)

// PathBuf is an owned, growable path buffer. Mutations extend or reallocate
// the owned bytes; read access goes through Path(), which presents the
// buffer as an immutable Path view.
type PathBuf struct {
	buf []byte
}

// NewPathBuf returns an empty owned path buffer.
func NewPathBuf() PathBuf {
	return PathBuf{}
}

// PathBufFrom copies s into a freshly owned buffer.
func PathBufFrom(s string) PathBuf {
	return PathBuf{buf: []byte(s)}
}

// Path presents the buffer contents as a Path view.
func (b *PathBuf) Path() Path {
	return Path(b.buf)
}

// String returns the buffer contents verbatim.
func (b *PathBuf) String() string {
	return string(b.buf)
}

// Display returns the buffer contents in a printable, lossy form.
func (b *PathBuf) Display() string {
	return b.Path().Display()
}

// Len returns the length of the buffer in bytes.
func (b *PathBuf) Len() int {
	return len(b.buf)
}

// Clone returns an independent copy of the buffer.
func (b *PathBuf) Clone() PathBuf {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return PathBuf{buf: out}
}

// Clear empties the buffer, retaining its capacity.
func (b *PathBuf) Clear() {
	b.buf = b.buf[:0]
}

// Push extends the buffer with p. If p is absolute it replaces the buffer
// contents entirely; otherwise a separator is inserted when the buffer does
// not already end in one.
func (b *PathBuf) Push(p Path) {
	if p.IsAbs() {
		b.buf = append(b.buf[:0], p...)
		return
	}
	if len(b.buf) > 0 && !isSep(b.buf[len(b.buf)-1]) {
		b.buf = append(b.buf, filepath.Separator)
	}
	b.buf = append(b.buf, p...)
}

// Pop truncates the buffer to its parent, removing the final component.
// Returns false and leaves the buffer untouched when there is nothing to
// remove (empty buffer, bare root, bare volume prefix).
func (b *PathBuf) Pop() bool {
	s := b.buf
	rootLen := len(filepath.VolumeName(string(s)))

	// Ignore trailing separators when locating the final component.
	n := len(s)
	for n > rootLen && isSep(s[n-1]) {
		n--
	}
	if n <= rootLen {
		return false
	}

	// Walk back to the start of the final component.
	i := n
	for i > rootLen && !isSep(s[i-1]) {
		i--
	}

	// Drop the separators preceding it, but never the root separator.
	end := i
	for end > rootLen && isSep(s[end-1]) {
		if end == rootLen+1 {
			break
		}
		end--
	}
	b.buf = s[:end]
	return true
}

// SetFileName replaces the final component with name, first removing the
// existing file name when there is one.
func (b *PathBuf) SetFileName(name string) {
	if _, ok := b.Path().FileName(); ok {
		b.Pop()
	}
	b.Push(Path(name))
}

// SetExtension replaces the extension of the file name with ext (without a
// leading dot); an empty ext removes the extension. Returns false when the
// buffer has no file name to modify.
func (b *PathBuf) SetExtension(ext string) bool {
	stem, ok := b.Path().FileStem()
	if !ok {
		return false
	}
	name := stem
	if ext != "" {
		name = stem + "." + ext
	}
	b.Pop()
	b.Push(Path(name))
	return true
}
