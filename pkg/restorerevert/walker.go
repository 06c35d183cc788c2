package restorerevert

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/restorerevert/pkg/restorerevert/filesystem"
)

// WalkResult holds what a walk collected.
type WalkResult struct {
	Pairs    []RevertPair
	Seen     int
	Warnings int
}

// Walker traverses a tree depth-first and collects RevertPairs.
// A Walker is single use and not safe for concurrent use.
type Walker struct {
	fs       filesystem.ReadFS
	policy   Policy
	resolver *Resolver
	console  *console

	result  WalkResult
	visited map[string]bool
}

// NewWalker creates a walker over fsys using the given symlink policy.
func NewWalker(fsys filesystem.ReadFS, policy Policy, opts ...Option) *Walker {
	o := newOptions(opts)
	return &Walker{
		fs:       fsys,
		policy:   policy,
		resolver: NewResolver(fsys),
		console:  o.console(),
		visited:  make(map[string]bool),
	}
}

// Walk collects every admissible pair below root. Any directory or entry
// that cannot be inspected aborts the walk.
func (w *Walker) Walk(root string) (*WalkResult, error) {
	if w.policy.FollowSymlink {
		if err := w.markVisited(root); err != nil {
			return nil, err
		}
	}
	if err := w.walkDir(root); err != nil {
		return nil, err
	}
	result := w.result
	return &result, nil
}

func (w *Walker) walkDir(dir string) error {
	Logger().Debug().Str("dir", dir).Msg("descending")

	names, err := w.fs.ReadDir(dir)
	if err != nil {
		return &WalkError{Op: "readdir", Path: dir, Cause: err}
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := w.fs.Lstat(path)
		if err != nil {
			return &WalkError{Op: "lstat", Path: path, Cause: err}
		}

		Logger().Trace().
			Str("path", path).
			Str("mode", info.Mode().String()).
			Msg("entry")

		if err := w.visit(path, info); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) visit(path string, info fs.FileInfo) error {
	mode := info.Mode()
	switch {
	case mode.IsDir():
		if w.policy.FollowSymlink {
			first, err := w.firstVisit(path)
			if err != nil {
				return err
			}
			if !first {
				w.ignore(path, "directory already visited")
				return nil
			}
		}
		return w.walkDir(path)

	case mode.IsRegular():
		return w.check(path)

	case mode&fs.ModeSymlink != 0:
		return w.visitSymlink(path)

	default:
		w.ignore(path, "not a regular file")
		return nil
	}
}

func (w *Walker) visitSymlink(path string) error {
	if !w.policy.RenameSymlink && !w.policy.FollowSymlink {
		w.ignore(path, "symlink")
		return nil
	}

	if w.policy.FollowSymlink && w.pointsToDir(path) {
		first, err := w.firstVisit(path)
		if err != nil {
			return err
		}
		if first {
			if err := w.walkDir(path); err != nil {
				return err
			}
		} else {
			Logger().Debug().Str("path", path).Msg("symlink target already visited")
		}
	}

	// The link's own name is classified, never its target's.
	return w.check(path)
}

// pointsToDir reports whether the symlink at path resolves to a directory.
// A dangling link is treated like a file symlink.
func (w *Walker) pointsToDir(path string) bool {
	info, err := w.fs.Stat(path)
	if err != nil {
		Logger().Debug().Str("path", path).Err(err).Msg("symlink target unreadable")
		return false
	}
	return info.IsDir()
}

func (w *Walker) check(path string) error {
	w.result.Seen++

	pair, err := w.resolver.Resolve(path)
	if err != nil {
		var candErr *CandidateError
		if errors.As(err, &candErr) {
			w.result.Warnings++
			w.console.warn(candErr.Error())
			Logger().Debug().Str("backup", path).Err(err).Msg("candidate skipped")
			return nil
		}
		return err
	}
	if pair != nil {
		w.result.Pairs = append(w.result.Pairs, *pair)
	}
	return nil
}

func (w *Walker) ignore(path, reason string) {
	if w.policy.Verbose {
		w.console.printf("Ignoring %q\n", path)
	}
	Logger().Debug().Str("path", path).Str("reason", reason).Msg("ignored")
}

// firstVisit records the real directory behind path and reports whether it
// was new. It guards against symlink cycles and double visits.
func (w *Walker) firstVisit(path string) (bool, error) {
	real, err := w.fs.RealPath(path)
	if err != nil {
		return false, &WalkError{Op: "realpath", Path: path, Cause: err}
	}
	if w.visited[real] {
		return false, nil
	}
	w.visited[real] = true
	return true, nil
}

func (w *Walker) markVisited(root string) error {
	_, err := w.firstVisit(root)
	return err
}
