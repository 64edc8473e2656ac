// Package pathset provides a concurrent set of paths backed by a compressed
// trie (patricia tree), giving O(k) membership and prefix lookups where k is
// the length of the queried path.
package pathset

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/pathkit/pathkit/path"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/armon/go-radix"
)

// Stats tracks performance counters for a Set
type Stats struct {
	TotalPaths    int64
	Lookups       int64
	PrefixLookups int64
	Insertions    int64
	Deletions     int64
	mu            sync.RWMutex
}

// Set is a patricia tree-based set of paths. Membership is keyed by the
// normalized textual form of each path, so "a//b/" and "a/b" occupy a single
// slot.
type Set struct {
	tree          *radix.Tree
	mu            sync.RWMutex
	stats         *Stats
	assertHandler *assert.AssertHandler
}

// New creates an empty path set
func New(assertHandler *assert.AssertHandler) *Set {
	return &Set{
		tree:          radix.New(),
		stats:         &Stats{},
		assertHandler: assertHandler,
	}
}

// Insert adds a path to the set. Returns true when the path was not already
// present.
func (s *Set) Insert(p path.Path) bool {
	key := s.normalize(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, updated := s.tree.Insert(key, p)

	s.stats.mu.Lock()
	if !updated {
		s.stats.TotalPaths++
	}
	s.stats.Insertions++
	s.stats.mu.Unlock()

	slog.Debug("Path set insertion completed",
		"path", key,
		"was_update", updated,
		"total_paths", s.stats.TotalPaths)

	return !updated
}

// Contains reports whether the set holds the path, with O(k) complexity
func (s *Set) Contains(p path.Path) bool {
	key := s.normalize(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, found := s.tree.Get(key)

	s.stats.mu.Lock()
	s.stats.Lookups++
	s.stats.mu.Unlock()

	return found
}

// Remove deletes a path from the set. Returns true when the path was present.
func (s *Set) Remove(p path.Path) bool {
	key := s.normalize(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, deleted := s.tree.Delete(key)

	s.stats.mu.Lock()
	if deleted {
		s.stats.TotalPaths--
	}
	s.stats.Deletions++
	s.stats.mu.Unlock()

	slog.Debug("Path set removal completed",
		"path", key,
		"was_deleted", deleted,
		"total_paths", s.stats.TotalPaths)

	return deleted
}

// PrefixLookup returns every member whose normalized form starts with the
// given prefix.
func (s *Set) PrefixLookup(prefix path.Path) []path.Path {
	normalizedPrefix := s.normalize(prefix)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []path.Path
	s.tree.WalkPrefix(normalizedPrefix, func(key string, value interface{}) bool {
		if p, ok := value.(path.Path); ok {
			results = append(results, p)
		}
		return false // Continue walking
	})

	s.stats.mu.Lock()
	s.stats.PrefixLookups++
	s.stats.mu.Unlock()

	slog.Debug("Prefix lookup completed",
		"prefix", normalizedPrefix,
		"results_count", len(results))

	return results
}

// NearestAncestor returns the closest ancestor of p (including p itself)
// that is a member of the set. The second return is false when no ancestor
// is a member.
func (s *Set) NearestAncestor(p path.Path) (path.Path, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ancestors := p.Ancestors()
	for {
		ancestor, ok := ancestors.Next()
		if !ok {
			return "", false
		}
		if value, found := s.tree.Get(s.normalize(ancestor)); found {
			if member, ok := value.(path.Path); ok {
				return member, true
			}
		}
	}
}

// Len returns the number of paths in the set
func (s *Set) Len() int64 {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()
	return s.stats.TotalPaths
}

// GetStats returns a copy of the current set statistics
func (s *Set) GetStats() Stats {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	return Stats{
		TotalPaths:    s.stats.TotalPaths,
		Lookups:       s.stats.Lookups,
		PrefixLookups: s.stats.PrefixLookups,
		Insertions:    s.stats.Insertions,
		Deletions:     s.stats.Deletions,
	}
}

// Walk executes fn for each member in lexical key order; returning true from
// fn stops the walk.
func (s *Set) Walk(fn func(p path.Path) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.tree.Walk(func(key string, value interface{}) bool {
		if p, ok := value.(path.Path); ok {
			return fn(p)
		}
		return false // Continue if type assertion fails
	})
}

// Clear removes all entries from the set
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree = radix.New()

	s.stats.mu.Lock()
	s.stats.TotalPaths = 0
	s.stats.mu.Unlock()

	slog.Info("Path set cleared")
}

// Validate performs integrity checking between the tree and the statistics
func (s *Set) Validate() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var errs []error

	treeCount := 0
	s.tree.Walk(func(key string, value interface{}) bool {
		treeCount++
		if _, ok := value.(path.Path); !ok {
			errs = append(errs, fmt.Errorf("invalid_member_type: invalid value type in tree: %s", key))
		}
		return false // Continue walking
	})

	if s.stats.TotalPaths != int64(treeCount) {
		errs = append(errs, fmt.Errorf("stats_mismatch: statistics don't match actual counts"))
	}

	if len(errs) > 0 {
		slog.Warn("Path set validation found issues", "error_count", len(errs))
	} else {
		slog.Debug("Path set validation passed", "total_paths", treeCount)
	}

	return errs
}

// normalize ensures consistent path formatting for the set keys
func (s *Set) normalize(p path.Path) string {
	// First replace backslashes with forward slashes (for Windows paths)
	normalized := strings.ReplaceAll(p.String(), "\\", "/")

	// Then clean the path to resolve repeated separators and dot elements
	normalized = filepath.ToSlash(filepath.Clean(normalized))

	// Remove trailing slash unless it's the root
	if len(normalized) > 1 && strings.HasSuffix(normalized, "/") {
		normalized = strings.TrimSuffix(normalized, "/")
	}

	return normalized
}
