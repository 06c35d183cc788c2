package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"

	"github.com/arthur-debert/restorerevert/pkg/restorerevert/filesystem"
)

// Tree builds and inspects a directory tree for revert tests.
type Tree struct {
	t    *testing.T
	fs   afero.Fs
	root string
	fsys *filesystem.AferoFileSystem
}

// NewMemTree creates an in-memory tree rooted at root.
func NewMemTree(t *testing.T, root string) *Tree {
	t.Helper()
	mem := afero.NewMemMapFs()
	if err := mem.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create root %s: %v", root, err)
	}
	return &Tree{
		t:    t,
		fs:   mem,
		root: root,
		fsys: filesystem.New(mem),
	}
}

// NewRealTree creates a tree in a temporary directory on the host filesystem.
// Tests are skipped on Windows, where symlink creation needs privileges.
func NewRealTree(t *testing.T) *Tree {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("real filesystem tests require a Unix filesystem")
	}
	return &Tree{
		t:    t,
		fs:   afero.NewOsFs(),
		root: t.TempDir(),
		fsys: filesystem.NewOSFileSystem(),
	}
}

// Root returns the tree root.
func (tr *Tree) Root() string {
	return tr.root
}

// Path joins rel onto the root.
func (tr *Tree) Path(rel string) string {
	return filepath.Join(tr.root, filepath.FromSlash(rel))
}

// FileSystem returns the engine view of the tree.
func (tr *Tree) FileSystem() *filesystem.AferoFileSystem {
	return tr.fsys
}

// Afero returns the raw afero filesystem.
func (tr *Tree) Afero() afero.Fs {
	return tr.fs
}

// WriteFile creates rel with content, creating parents as needed.
func (tr *Tree) WriteFile(rel, content string) {
	tr.t.Helper()
	path := tr.Path(rel)
	if err := tr.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		tr.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := afero.WriteFile(tr.fs, path, []byte(content), 0644); err != nil {
		tr.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// Mkdir creates rel and its parents.
func (tr *Tree) Mkdir(rel string) {
	tr.t.Helper()
	if err := tr.fs.MkdirAll(tr.Path(rel), 0755); err != nil {
		tr.t.Fatalf("Failed to create directory %s: %v", rel, err)
	}
}

// Symlink creates rel pointing at target. Only real trees support links.
func (tr *Tree) Symlink(target, rel string) {
	tr.t.Helper()
	linker, ok := tr.fs.(afero.Linker)
	if !ok {
		tr.t.Fatal("Filesystem doesn't support symlinks")
	}
	if err := linker.SymlinkIfPossible(target, tr.Path(rel)); err != nil {
		tr.t.Fatalf("Failed to create symlink %s -> %s: %v", rel, target, err)
	}
}

// ReadFile returns the content of rel and fails the test on error.
func (tr *Tree) ReadFile(rel string) string {
	tr.t.Helper()
	data, err := afero.ReadFile(tr.fs, tr.Path(rel))
	if err != nil {
		tr.t.Fatalf("Failed to read file %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether rel exists without following symlinks.
func (tr *Tree) Exists(rel string) bool {
	_, err := tr.fsys.Lstat(tr.Path(rel))
	return err == nil
}

// AssertFileContent checks that rel has the expected content.
func (tr *Tree) AssertFileContent(rel, expected string) {
	tr.t.Helper()
	if actual := tr.ReadFile(rel); actual != expected {
		tr.t.Errorf("File %s content mismatch:\nExpected: %q\nActual: %q", rel, expected, actual)
	}
}

// AssertNotExists checks that rel does not exist.
func (tr *Tree) AssertNotExists(rel string) {
	tr.t.Helper()
	if tr.Exists(rel) {
		tr.t.Errorf("Expected %s to not exist, but it does", rel)
	}
}

// Snapshot maps every path under the root to a description of what is
// there: file content, "<dir>", or "-> target" for symlinks.
func (tr *Tree) Snapshot() map[string]string {
	tr.t.Helper()
	snap := make(map[string]string)
	err := afero.Walk(tr.fs, tr.root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(tr.root, path)
		if err != nil {
			return err
		}
		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			snap[rel] = "-> " + target
		case info.IsDir():
			snap[rel] = "<dir>"
		default:
			data, err := afero.ReadFile(tr.fs, path)
			if err != nil {
				return err
			}
			snap[rel] = string(data)
		}
		return nil
	})
	if err != nil {
		tr.t.Fatalf("Failed to snapshot %s: %v", tr.root, err)
	}
	return snap
}
