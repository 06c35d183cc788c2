package filesystem

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// AferoFileSystem implements FileSystem on top of an afero.Fs
type AferoFileSystem struct {
	fs      afero.Fs
	resolve func(name string) (string, error)
}

// New wraps an afero filesystem. Symlinks are not resolved by RealPath, which
// is correct for in-memory filesystems that cannot hold them.
func New(afs afero.Fs) *AferoFileSystem {
	return &AferoFileSystem{
		fs:      afs,
		resolve: cleanPath,
	}
}

// NewOSFileSystem creates a filesystem backed by the host OS
func NewOSFileSystem() *AferoFileSystem {
	return &AferoFileSystem{
		fs:      afero.NewOsFs(),
		resolve: resolveSymlinks,
	}
}

// NewMemFileSystem creates an empty in-memory filesystem
func NewMemFileSystem() *AferoFileSystem {
	return New(afero.NewMemMapFs())
}

// ReadOnly returns a view of fsys that rejects every mutation.
func ReadOnly(fsys *AferoFileSystem) *AferoFileSystem {
	return &AferoFileSystem{
		fs:      afero.NewReadOnlyFs(fsys.fs),
		resolve: fsys.resolve,
	}
}

// Afero exposes the underlying afero.Fs
func (a *AferoFileSystem) Afero() afero.Fs {
	return a.fs
}

// ReadDir implements ReadFS
func (a *AferoFileSystem) ReadDir(name string) ([]string, error) {
	dir, err := a.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = dir.Close()
	}()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Lstat implements ReadFS. Filesystems without symlink support fall back to Stat.
func (a *AferoFileSystem) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

// Stat implements ReadFS
func (a *AferoFileSystem) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

// RealPath implements ReadFS
func (a *AferoFileSystem) RealPath(name string) (string, error) {
	return a.resolve(name)
}

// Rename implements WriteFS
func (a *AferoFileSystem) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

// Remove implements WriteFS
func (a *AferoFileSystem) Remove(name string) error {
	return a.fs.Remove(name)
}

func cleanPath(name string) (string, error) {
	return filepath.Clean(name), nil
}

func resolveSymlinks(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
