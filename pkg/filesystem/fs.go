package filesystem

import (
	"io"
	"io/fs"
)

// FS is the set of filesystem operations the pipeline needs
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// WriteFileAtomic writes r to name through a temporary file in the same
	// directory and renames it into place, so readers never see a partial file.
	WriteFileAtomic(name string, r io.Reader, perm fs.FileMode) error
}
