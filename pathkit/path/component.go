package path

import (
	"path/filepath"
)

// ComponentKind identifies the syntactic role of a single path component.
type ComponentKind int

const (
	// KindPrefix is a volume name such as "C:" on Windows. Never produced on Unix.
	KindPrefix ComponentKind = iota
	// KindRootDir is the root directory marker at the start of an absolute path.
	KindRootDir
	// KindCurDir is a "." marker. Only ever produced at the start of a path.
	KindCurDir
	// KindParentDir is a ".." marker.
	KindParentDir
	// KindNormal is a named path segment.
	KindNormal
)

// String returns a human-readable name for the component kind.
func (k ComponentKind) String() string {
	switch k {
	case KindPrefix:
		return "prefix"
	case KindRootDir:
		return "rootdir"
	case KindCurDir:
		return "curdir"
	case KindParentDir:
		return "parentdir"
	case KindNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Component is one syntactic segment of a path as produced by Components.
type Component struct {
	Kind ComponentKind
	Name string
}

// String returns the textual form of the component.
func (c Component) String() string {
	return c.Name
}

// Components iterates lazily over the components of a path.
//
// Parsing applies a small amount of purely lexical normalization:
//
//   - Repeated separators are collapsed, so "a/b" and "a//b" both yield
//     "a" and "b".
//   - Occurrences of "." are dropped, except at the beginning of the path,
//     so "a/./b", "a/b/" and "a/b" all yield "a" and "b", while "./a/b"
//     starts with an additional CurDir component.
//   - A trailing separator is ignored.
//
// No other normalization takes place. In particular "a/c" and "a/b/../c"
// are distinct, to account for the possibility that "b" is a symbolic link.
type Components struct {
	rest    string
	started bool
	pending *Component
}

// Components produces a fresh iterator over the components of p.
// Each call returns an independent iterator positioned at the start.
func (p Path) Components() *Components {
	rest := string(p)
	if vol := filepath.VolumeName(rest); vol != "" {
		// The volume prefix is handled eagerly so the lazy scan below only
		// ever deals with separators and segments.
		c := &Components{rest: rest[len(vol):]}
		c.pending = &Component{Kind: KindPrefix, Name: vol}
		return c
	}
	return &Components{rest: rest}
}

// Next returns the next component, or false when the path is exhausted.
func (c *Components) Next() (Component, bool) {
	if c.pending != nil {
		comp := *c.pending
		c.pending = nil
		return comp, true
	}

	if !c.started {
		c.started = true

		if len(c.rest) > 0 && isSep(c.rest[0]) {
			for len(c.rest) > 0 && isSep(c.rest[0]) {
				c.rest = c.rest[1:]
			}
			return Component{Kind: KindRootDir, Name: string(filepath.Separator)}, true
		}

		// A leading current-directory marker is preserved.
		i := 0
		for i < len(c.rest) && !isSep(c.rest[i]) {
			i++
		}
		if c.rest[:i] == "." {
			c.rest = c.rest[i:]
			return Component{Kind: KindCurDir, Name: "."}, true
		}
	}

	for {
		for len(c.rest) > 0 && isSep(c.rest[0]) {
			c.rest = c.rest[1:]
		}
		if len(c.rest) == 0 {
			return Component{}, false
		}

		i := 0
		for i < len(c.rest) && !isSep(c.rest[i]) {
			i++
		}
		seg := c.rest[:i]
		c.rest = c.rest[i:]

		switch seg {
		case ".":
			// Interior current-directory markers are dropped.
			continue
		case "..":
			return Component{Kind: KindParentDir, Name: ".."}, true
		default:
			return Component{Kind: KindNormal, Name: seg}, true
		}
	}
}

// Collect drains the iterator and returns the remaining components as a slice.
func (c *Components) Collect() []Component {
	var out []Component
	for {
		comp, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, comp)
	}
}

// Ancestors iterates over a path and its successive logical parents.
type Ancestors struct {
	next Path
	done bool
}

// Ancestors produces an iterator over p and its ancestors.
//
// The iterator yields p itself first, then the result of applying Parent
// repeatedly until no parent remains. It always yields at least one value.
func (p Path) Ancestors() *Ancestors {
	return &Ancestors{next: p}
}

// Next returns the next ancestor, or false when none remain.
func (a *Ancestors) Next() (Path, bool) {
	if a.done {
		return "", false
	}
	cur := a.next
	parent, ok := cur.Parent()
	if !ok {
		a.done = true
	} else {
		a.next = parent
	}
	return cur, true
}

// Collect drains the iterator and returns the remaining ancestors as a slice.
func (a *Ancestors) Collect() []Path {
	var out []Path
	for {
		p, ok := a.Next()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

// isSep reports whether b is a path separator byte. On Unix the two checks
// coincide; on Windows both '/' and '\' are accepted.
func isSep(b byte) bool {
	return b == '/' || b == filepath.Separator
}
