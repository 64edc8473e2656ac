package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathLexical(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"Extension", testPathExtension},
		{"FileName", testPathFileName},
		{"FileStem", testPathFileStem},
		{"EndsWith", testPathEndsWith},
		{"StartsWith", testPathStartsWith},
		{"StripPrefix", testPathStripPrefix},
		{"Parent", testPathParent},
		{"EqualAndCompare", testPathEqualAndCompare},
		{"Display", testPathDisplay},
		{"Join", testPathJoin},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testPathExtension(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
		ok       bool
	}{
		{"foo.rs", "rs", true},
		{".bashrc", "", false},
		{"foo", "", false},
		{"a.b.c", "c", true},
		{"/tmp/archive.tar.gz", "gz", true},
		{"dir/..", "", false},
		{"/", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		ext, ok := New(tc.path).Extension()
		assert.Equal(t, tc.ok, ok, "extension presence for %q", tc.path)
		assert.Equal(t, tc.expected, ext, "extension of %q", tc.path)
	}
}

func testPathFileName(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
		ok       bool
	}{
		{"/usr/bin/env", "env", true},
		{"tmp/foo.txt", "foo.txt", true},
		{"foo.txt/.", "foo.txt", true},
		{"/", "", false},
		{"foo/..", "", false},
		{"..", "", false},
		{".", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		name, ok := New(tc.path).FileName()
		assert.Equal(t, tc.ok, ok, "file name presence for %q", tc.path)
		assert.Equal(t, tc.expected, name, "file name of %q", tc.path)
	}
}

func testPathFileStem(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
		ok       bool
	}{
		{"foo.rs", "foo", true},
		{".bashrc", ".bashrc", true},
		{"foo", "foo", true},
		{"a.b.c", "a.b", true},
		{"/", "", false},
	}

	for _, tc := range testCases {
		stem, ok := New(tc.path).FileStem()
		assert.Equal(t, tc.ok, ok, "stem presence for %q", tc.path)
		assert.Equal(t, tc.expected, stem, "stem of %q", tc.path)
	}
}

func testPathEndsWith(t *testing.T) {
	p := New("/etc/passwd")

	assert.True(t, p.EndsWith("passwd"))
	assert.True(t, p.EndsWith("etc/passwd"))
	assert.True(t, p.EndsWith("/etc/passwd"))

	// Only whole trailing components match.
	assert.False(t, p.EndsWith("wd"))
	assert.False(t, p.EndsWith("ssswd"))
	assert.False(t, p.EndsWith("tc/passwd"))
	assert.False(t, New("passwd").EndsWith("/etc/passwd"))
}

func testPathStartsWith(t *testing.T) {
	p := New("/etc/passwd")

	assert.True(t, p.StartsWith("/"))
	assert.True(t, p.StartsWith("/etc"))
	assert.True(t, p.StartsWith("/etc/passwd"))

	assert.False(t, p.StartsWith("/e"))
	assert.False(t, p.StartsWith("etc"))
}

func testPathStripPrefix(t *testing.T) {
	rest, ok := New("/usr/local/bin").StripPrefix("/usr")
	require.True(t, ok)
	assert.Equal(t, New("local/bin"), rest)

	rest, ok = New("/usr/local/bin").StripPrefix("/usr/local/bin")
	require.True(t, ok)
	assert.Equal(t, New(""), rest)

	_, ok = New("/usr/local/bin").StripPrefix("/var")
	assert.False(t, ok)

	_, ok = New("/usr/local/bin").StripPrefix("usr")
	assert.False(t, ok)
}

func testPathParent(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
		ok       bool
	}{
		{"/foo/bar", "/foo", true},
		{"/foo", "/", true},
		{"/", "", false},
		{"foo", ".", true},
		{".", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		parent, ok := New(tc.path).Parent()
		assert.Equal(t, tc.ok, ok, "parent presence for %q", tc.path)
		assert.Equal(t, New(tc.expected), parent, "parent of %q", tc.path)
	}
}

func testPathEqualAndCompare(t *testing.T) {
	assert.True(t, New("a/b").Equal("a//b/"))
	assert.True(t, New("a/b").Equal("a/./b"))
	assert.False(t, New("a/b").Equal("./a/b"))
	assert.False(t, New("a/c").Equal("a/b/../c"))

	assert.Equal(t, 0, New("a/b").Compare("a//b"))
	assert.Equal(t, -1, New("a").Compare("a/b"))
	assert.Equal(t, 1, New("b").Compare("a/z"))
}

func testPathDisplay(t *testing.T) {
	assert.Equal(t, "/tmp/foo.rs", New("/tmp/foo.rs").Display())

	// Each run of invalid UTF-8 bytes is replaced rather than surfaced.
	mangled := New("/tmp/\xff\xfe")
	assert.Equal(t, "/tmp/�", mangled.Display())
	// The raw view is untouched.
	assert.Equal(t, "/tmp/\xff\xfe", mangled.String())
}

func testPathJoin(t *testing.T) {
	joined := New("/usr").Join("local")
	assert.Equal(t, "/usr/local", joined.String())

	// Joining an absolute path replaces the receiver entirely.
	replaced := New("/usr").Join("/etc")
	assert.Equal(t, "/etc", replaced.String())

	trailing := New("/usr/").Join("local")
	assert.Equal(t, "/usr/local", trailing.String())
}
