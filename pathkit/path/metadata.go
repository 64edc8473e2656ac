package path

import (
	"os"
	"time"
)

// NodeType classifies the filesystem entity a Metadata record describes.
type NodeType int

const (
	Directory NodeType = iota
	File
	Symlink
)

// Convert NodeType to String
func (n NodeType) String() string {
	switch n {
	case Directory:
		return "directory"
	case File:
		return "file"
	case Symlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Metadata describes a filesystem entity as reported by a query. Records are
// produced by the dispatcher only; callers never construct them directly.
type Metadata struct {
	Size        int64       `json:"size"`
	ModifiedAt  time.Time   `json:"modified_at"`
	NodeType    NodeType    `json:"node_type"`
	Permissions os.FileMode `json:"permissions"`
}

// newMetadata builds a Metadata record from the stat result.
func newMetadata(fileinfo os.FileInfo) Metadata {
	nodeType := File
	switch {
	case fileinfo.Mode()&os.ModeSymlink != 0:
		nodeType = Symlink
	case fileinfo.IsDir():
		nodeType = Directory
	}

	return Metadata{
		Size:        fileinfo.Size(),
		ModifiedAt:  fileinfo.ModTime(),
		NodeType:    nodeType,
		Permissions: fileinfo.Mode(),
	}
}

// IsDir reports whether the record describes a directory.
func (m Metadata) IsDir() bool {
	return m.NodeType == Directory
}

// IsFile reports whether the record describes a regular file.
func (m Metadata) IsFile() bool {
	return m.NodeType == File
}

// IsSymlink reports whether the record describes a symbolic link. Only ever
// true for records obtained via SymlinkMetadata, since Metadata follows
// links to their target.
func (m Metadata) IsSymlink() bool {
	return m.NodeType == Symlink
}
