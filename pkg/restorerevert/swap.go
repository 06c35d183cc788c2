package restorerevert

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/restorerevert/pkg/restorerevert/filesystem"
)

// Executor swaps preserved backups back into place.
type Executor struct {
	fs       filesystem.FileSystem
	console  *console
	promoted map[string]string
}

// NewExecutor creates an executor that mutates fsys.
func NewExecutor(fsys filesystem.FileSystem, opts ...Option) *Executor {
	o := newOptions(opts)
	return &Executor{
		fs:       fsys,
		console:  o.console(),
		promoted: make(map[string]string),
	}
}

// Apply reverts a single pair, or only prints the steps when simulate is set.
func (e *Executor) Apply(pair RevertPair, simulate bool) error {
	queue := NewQueue()
	if err := queue.AddPair(pair); err != nil {
		return err
	}
	_, err := e.Run(queue, simulate)
	return err
}

// Run executes a queue and returns the number of pairs fully swapped.
// The first failing step stops the run; earlier pairs stay swapped.
func (e *Executor) Run(queue *Queue, simulate bool) (int, error) {
	if err := queue.Resolve(); err != nil {
		return 0, fmt.Errorf("failed to order swap steps: %w", err)
	}

	reverted := 0
	for _, step := range queue.Steps() {
		if step.Step == StepStash {
			e.console.printf("Found file %q origin %q\n", step.Pair.Backup, step.Pair.Original)
			if !simulate {
				e.console.printf("Renaming to %q\n", step.To)
			}
		}

		if simulate {
			e.console.printf("Would %s\n", step.Describe())
			continue
		}

		if err := e.execute(step); err != nil {
			Logger().Error().
				Str("step", string(step.Step)).
				Str("backup", step.Pair.Backup).
				Err(err).
				Msg("swap failed")
			return reverted, err
		}

		Logger().Info().
			Str("step", string(step.Step)).
			Str("from", step.From).
			Str("to", step.To).
			Msg("swap step done")

		if step.Step == StepDiscard {
			reverted++
		}
	}
	return reverted, nil
}

func (e *Executor) execute(step *SwapStep) error {
	var err error
	switch step.Step {
	case StepStash:
		err = e.stash(step.Pair)
	case StepPromote:
		err = e.fs.Rename(step.From, step.To)
		if err == nil {
			e.promoted[step.Pair.Original] = step.Pair.Backup
		}
	case StepDiscard:
		err = e.fs.Remove(step.From)
	default:
		err = fmt.Errorf("unknown step %q", step.Step)
	}
	if err != nil {
		return &SwapError{Step: step.Step, Pair: step.Pair, Cause: err}
	}
	return nil
}

// stash moves the restored file aside after checking the pair still holds.
func (e *Executor) stash(pair RevertPair) error {
	if prev, done := e.promoted[pair.Original]; done {
		return &CollisionError{Originals: map[string][]string{
			pair.Original: {prev, pair.Backup},
		}}
	}

	info, err := e.fs.Lstat(pair.Original)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &fs.PathError{Op: "stash", Path: pair.Original, Err: fs.ErrInvalid}
	}
	if _, err := e.fs.Lstat(pair.Backup); err != nil {
		return err
	}

	// rename(2) replaces an existing target, so check explicitly to keep
	// user files named "<x>_reverted".
	stash := pair.Stash()
	if _, err := e.fs.Lstat(stash); err == nil {
		return &fs.PathError{Op: "rename", Path: stash, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return e.fs.Rename(pair.Original, stash)
}
