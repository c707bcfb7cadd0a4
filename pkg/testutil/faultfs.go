package testutil

import (
	"io"
	"io/fs"

	"github.com/arthur-debert/dfm/pkg/filesystem"
)

// Operations that FaultFS can fail
const (
	OpStat    = "stat"
	OpMkdir   = "mkdir"
	OpWrite   = "write"
	OpRemove  = "remove"
	OpSymlink = "symlink"
)

// FaultFS wraps a filesystem.FS and fails selected operations on selected
// paths with fs.ErrPermission. Tests run as root, where chmod cannot
// produce permission failures, so faults are injected instead.
type FaultFS struct {
	filesystem.FS
	faults map[string]map[string]bool
}

// NewFaultFS wraps base, or the host filesystem when base is nil
func NewFaultFS(base filesystem.FS) *FaultFS {
	if base == nil {
		base = filesystem.NewOS()
	}
	return &FaultFS{FS: base, faults: make(map[string]map[string]bool)}
}

// Fail makes op fail for path. An empty path fails op everywhere.
func (f *FaultFS) Fail(op, path string) *FaultFS {
	if f.faults[op] == nil {
		f.faults[op] = make(map[string]bool)
	}
	f.faults[op][path] = true
	return f
}

func (f *FaultFS) fault(op, path string) error {
	paths := f.faults[op]
	if paths[path] || paths[""] {
		return &fs.PathError{Op: op, Path: path, Err: fs.ErrPermission}
	}
	return nil
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.fault(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault(OpMkdir, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultFS) WriteFileAtomic(name string, r io.Reader, perm fs.FileMode) error {
	if err := f.fault(OpWrite, name); err != nil {
		return err
	}
	return f.FS.WriteFileAtomic(name, r, perm)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.fault(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if err := f.fault(OpSymlink, newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}
