package restorerevert

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/restorerevert/pkg/restorerevert/filesystem"
)

// Reverter runs a complete revert over one tree.
type Reverter struct {
	fs   *filesystem.AferoFileSystem
	opts []Option
}

// New creates a reverter working on fsys.
func New(fsys *filesystem.AferoFileSystem, opts ...Option) *Reverter {
	return &Reverter{fs: fsys, opts: opts}
}

// Run performs the revert described by cfg. With cfg.Simulate the
// filesystem is wrapped read-only so nothing can be mutated.
func (r *Reverter) Run(cfg Config) (*Summary, error) {
	console := newOptions(r.opts).console()

	fsys := r.fs
	if cfg.Simulate {
		fsys = filesystem.ReadOnly(r.fs)
	}

	info, err := fsys.Stat(cfg.Root)
	if err != nil {
		return nil, &InvalidRootError{Root: cfg.Root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &InvalidRootError{Root: cfg.Root, Cause: errNotDir}
	}

	console.printf("Using path %q\n", cfg.Root)
	if cfg.Simulate {
		console.printf("Simulating\n")
	}

	Logger().Info().
		Str("root", cfg.Root).
		Bool("simulate", cfg.Simulate).
		Bool("rename_symlink", cfg.RenameSymlink).
		Bool("follow_symlink", cfg.FollowSymlink).
		Msg("starting revert")

	walked, err := NewWalker(fsys, cfg.Policy, r.opts...).Walk(cfg.Root)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Seen:     walked.Seen,
		Found:    len(walked.Pairs),
		Warnings: walked.Warnings,
		Pairs:    walked.Pairs,
	}

	collisions := FindCollisions(walked.Pairs)
	queue := NewQueue()
	for _, pair := range walked.Pairs {
		if backups, clash := collisions[pair.Original]; clash {
			console.printf("Found file %q origin %q\n", pair.Backup, pair.Original)
			// Warn once, after the last backup of the original was listed.
			if backups[len(backups)-1] == pair.Backup {
				console.warn(collisionMessage(pair.Original, backups))
				Logger().Debug().
					Str("original", pair.Original).
					Strs("backups", backups).
					Msg("collision, pairs skipped")
				summary.Warnings++
			}
			summary.Skipped++
			continue
		}
		if err := queue.AddPair(pair); err != nil {
			return summary, err
		}
	}

	reverted, runErr := NewExecutor(fsys, r.opts...).Run(queue, cfg.Simulate)
	summary.Reverted = reverted
	if runErr != nil {
		return summary, runErr
	}

	console.printf("Finished, restore-reverted %d of %d files\n", summary.Found, summary.Seen)

	Logger().Info().
		Int("seen", summary.Seen).
		Int("found", summary.Found).
		Int("reverted", summary.Reverted).
		Int("skipped", summary.Skipped).
		Msg("revert finished")

	if len(collisions) > 0 {
		return summary, &CollisionError{Originals: collisions}
	}
	return summary, nil
}

// Run is a convenience wrapper around New(fsys, opts...).Run(cfg).
func Run(fsys *filesystem.AferoFileSystem, cfg Config, opts ...Option) (*Summary, error) {
	return New(fsys, opts...).Run(cfg)
}

var errNotDir = errors.New("not a directory")

// FindCollisions groups pairs by original and keeps the originals with
// more than one backup. Backups are listed in discovery order.
func FindCollisions(pairs []RevertPair) map[string][]string {
	byOriginal := make(map[string][]string)
	for _, pair := range pairs {
		byOriginal[pair.Original] = append(byOriginal[pair.Original], pair.Backup)
	}
	for original, backups := range byOriginal {
		if len(backups) < 2 {
			delete(byOriginal, original)
		}
	}
	return byOriginal
}

func collisionMessage(original string, backups []string) string {
	quoted := make([]string, len(backups))
	for i, backup := range backups {
		quoted[i] = fmt.Sprintf("%q", backup)
	}
	return fmt.Sprintf("multiple backups for %q: %s", original, strings.Join(quoted, ", "))
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
