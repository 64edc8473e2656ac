package pathset

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/pathkit/pathkit/path"

	assertlib "github.com/ZanzyTHEbar/assert-lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSet(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"InsertAndContains", testSetInsertAndContains},
		{"NormalizedKeys", testSetNormalizedKeys},
		{"Remove", testSetRemove},
		{"PrefixLookup", testSetPrefixLookup},
		{"NearestAncestor", testSetNearestAncestor},
		{"ConcurrentAccess", testSetConcurrentAccess},
		{"Validation", testSetValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func newTestSet() *Set {
	return New(assertlib.NewAssertHandler())
}

func testSetInsertAndContains(t *testing.T) {
	s := newTestSet()

	paths := []path.Path{
		"/home/user/documents",
		"/home/user/downloads",
		"/var/log/system",
	}

	for _, p := range paths {
		assert.True(t, s.Insert(p), "first insert of %s should report new", p)
	}
	assert.False(t, s.Insert("/home/user/documents"), "re-insert should report existing")

	for _, p := range paths {
		assert.True(t, s.Contains(p), "set should contain %s", p)
	}
	assert.False(t, s.Contains("/home/user/videos"))
	assert.Equal(t, int64(len(paths)), s.Len())
}

func testSetNormalizedKeys(t *testing.T) {
	s := newTestSet()

	s.Insert("/home/user/documents")

	// Equivalent spellings resolve to the same member.
	assert.True(t, s.Contains("/home/user/documents/"))
	assert.True(t, s.Contains("/home/user//documents"))
	assert.True(t, s.Contains("/home/user/./documents"))
	assert.Equal(t, int64(1), s.Len())
}

func testSetRemove(t *testing.T) {
	s := newTestSet()

	s.Insert("/a/b")
	require.True(t, s.Contains("/a/b"))

	assert.True(t, s.Remove("/a/b"))
	assert.False(t, s.Contains("/a/b"))
	assert.False(t, s.Remove("/a/b"), "removing an absent path should report false")
	assert.Equal(t, int64(0), s.Len())
}

func testSetPrefixLookup(t *testing.T) {
	s := newTestSet()

	members := []path.Path{
		"/home/user/documents",
		"/home/user/documents/work",
		"/home/user/downloads",
		"/var/log/app",
	}
	for _, p := range members {
		s.Insert(p)
	}

	results := s.PrefixLookup("/home/user/documents")
	assert.Len(t, results, 2)

	results = s.PrefixLookup("/home")
	assert.Len(t, results, 3)

	results = s.PrefixLookup("/nonexistent")
	assert.Empty(t, results)
}

func testSetNearestAncestor(t *testing.T) {
	s := newTestSet()

	s.Insert("/srv")
	s.Insert("/srv/www/site")

	// The path itself wins when present.
	got, ok := s.NearestAncestor("/srv/www/site")
	require.True(t, ok)
	assert.Equal(t, path.Path("/srv/www/site"), got)

	// Otherwise the closest indexed ancestor.
	got, ok = s.NearestAncestor("/srv/www/site/assets/logo.png")
	require.True(t, ok)
	assert.Equal(t, path.Path("/srv/www/site"), got)

	got, ok = s.NearestAncestor("/srv/backups/today")
	require.True(t, ok)
	assert.Equal(t, path.Path("/srv"), got)

	_, ok = s.NearestAncestor("/etc/passwd")
	assert.False(t, ok)
}

func testSetConcurrentAccess(t *testing.T) {
	s := newTestSet()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p := path.Path(fmt.Sprintf("/worker/%d", n))
			s.Insert(p)
			s.Contains(p)
			s.PrefixLookup("/worker")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(16), s.Len())
	assert.Empty(t, s.Validate())
}

func testSetValidation(t *testing.T) {
	s := newTestSet()

	for i := 0; i < 5; i++ {
		s.Insert(path.Path(fmt.Sprintf("/p/%d", i)))
	}
	assert.Empty(t, s.Validate())

	s.Clear()
	assert.Equal(t, int64(0), s.Len())
	assert.Empty(t, s.Validate())
}
