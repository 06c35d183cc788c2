package testutil

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// ErrInjected is returned by FailingFs for every injected failure.
var ErrInjected = errors.New("injected failure")

// FailingFs wraps an afero.Fs and fails one kind of operation on paths
// containing FailPattern.
type FailingFs struct {
	afero.Fs
	// FailOp is one of "open", "stat", "lstat", "rename" or "remove".
	FailOp      string
	FailPattern string
}

func (f *FailingFs) fails(op, name string) bool {
	return f.FailOp == op && strings.Contains(name, f.FailPattern)
}

// Open fails for "open"; directory listing goes through Open.
func (f *FailingFs) Open(name string) (afero.File, error) {
	if f.fails("open", name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrInjected}
	}
	return f.Fs.Open(name)
}

// Stat fails for "stat".
func (f *FailingFs) Stat(name string) (fs.FileInfo, error) {
	if f.fails("stat", name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: ErrInjected}
	}
	return f.Fs.Stat(name)
}

// LstatIfPossible fails for "lstat" and otherwise defers to the wrapped fs.
func (f *FailingFs) LstatIfPossible(name string) (fs.FileInfo, bool, error) {
	if f.fails("lstat", name) {
		return nil, false, &fs.PathError{Op: "lstat", Path: name, Err: ErrInjected}
	}
	if lstater, ok := f.Fs.(afero.Lstater); ok {
		return lstater.LstatIfPossible(name)
	}
	info, err := f.Fs.Stat(name)
	return info, false, err
}

// Rename fails for "rename" when either path matches.
func (f *FailingFs) Rename(oldname, newname string) error {
	if f.fails("rename", oldname) || f.fails("rename", newname) {
		return &fs.PathError{Op: "rename", Path: oldname, Err: ErrInjected}
	}
	return f.Fs.Rename(oldname, newname)
}

// Remove fails for "remove".
func (f *FailingFs) Remove(name string) error {
	if f.fails("remove", name) {
		return &fs.PathError{Op: "remove", Path: name, Err: ErrInjected}
	}
	return f.Fs.Remove(name)
}
