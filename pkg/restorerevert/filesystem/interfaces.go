package filesystem

import (
	"io/fs"
)

// ReadFS is the read side the walker and resolver need.
type ReadFS interface {
	// ReadDir returns the entry names of a directory in lexical order.
	ReadDir(name string) ([]string, error)
	// Lstat describes the entry itself; symlinks are not followed.
	Lstat(name string) (fs.FileInfo, error)
	// Stat follows symlinks.
	Stat(name string) (fs.FileInfo, error)
	// RealPath resolves every symlink in name.
	RealPath(name string) (string, error)
}

// WriteFS defines the mutations the swap executor performs.
type WriteFS interface {
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// FileSystem combines read and write operations.
type FileSystem interface {
	ReadFS
	WriteFS
}
