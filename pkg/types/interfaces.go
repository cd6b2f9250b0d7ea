package types

import (
	"io"
	"io/fs"
)

// FS defines the filesystem operations the pipeline relies on.
// This allows for easy mocking in tests and alternative implementations.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// OpenAppend opens an existing file for appending.
	OpenAppend(name string) (io.WriteCloser, error)

	// DirFS returns a read-only view of the tree rooted at dir, used for
	// glob expansion.
	DirFS(dir string) fs.FS
}
