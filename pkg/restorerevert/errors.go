package restorerevert

import (
	"fmt"
	"strings"
)

// InvalidRootError is returned when the walk root is not a directory.
type InvalidRootError struct {
	Root  string
	Cause error
}

func (e *InvalidRootError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Invalid path %q: %v", e.Root, e.Cause)
	}
	return fmt.Sprintf("Invalid path %q", e.Root)
}

func (e *InvalidRootError) Unwrap() error {
	return e.Cause
}

// WalkError aborts the walk when a directory or entry cannot be inspected.
type WalkError struct {
	Op    string
	Path  string
	Cause error
}

func (e *WalkError) Error() string {
	switch e.Op {
	case "readdir":
		return fmt.Sprintf("unable to read dir %q: %v", e.Path, e.Cause)
	case "lstat":
		return fmt.Sprintf("Unable to read metadata for %q: %v", e.Path, e.Cause)
	default:
		return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Cause)
	}
}

func (e *WalkError) Unwrap() error {
	return e.Cause
}

// InvalidNameError reports a leaf name that is not valid UTF-8.
type InvalidNameError struct {
	Path string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("Invalid utf8 found in %q", e.Path)
}

// CandidateReason says why a backup candidate was not paired.
type CandidateReason int

const (
	// ReasonNoOriginal means the original is missing or not a regular file.
	ReasonNoOriginal CandidateReason = iota
	// ReasonNoMetadata means the original could not be inspected.
	ReasonNoMetadata
)

// CandidateError is a warning: the name matched but the pair is not admitted.
type CandidateError struct {
	Backup string
	Reason CandidateReason
	Cause  error
}

func (e *CandidateError) Error() string {
	if e.Reason == ReasonNoMetadata {
		return fmt.Sprintf("no metadata for %q", e.Backup)
	}
	return fmt.Sprintf("found match but no reverted file %q", e.Backup)
}

func (e *CandidateError) Unwrap() error {
	return e.Cause
}

// Step names one stage of a swap.
type Step string

const (
	StepStash   Step = "stash"
	StepPromote Step = "promote"
	StepDiscard Step = "discard"
)

// SwapError is returned when a swap step fails. Nothing is rolled back.
type SwapError struct {
	Step  Step
	Pair  RevertPair
	Cause error
}

func (e *SwapError) Error() string {
	switch e.Step {
	case StepStash:
		return fmt.Sprintf("Unable to rename %q: %v", e.Pair.Original, e.Cause)
	case StepPromote:
		return fmt.Sprintf("Unable to rename %q: %v", e.Pair.Backup, e.Cause)
	case StepDiscard:
		return fmt.Sprintf("Unable to delete %q: %v", e.Pair.Stash(), e.Cause)
	default:
		return fmt.Sprintf("swap step %s failed for %q: %v", e.Step, e.Pair.Backup, e.Cause)
	}
}

func (e *SwapError) Unwrap() error {
	return e.Cause
}

// CollisionError reports originals with more than one dated backup.
type CollisionError struct {
	Originals map[string][]string
}

func (e *CollisionError) Error() string {
	parts := make([]string, 0, len(e.Originals))
	for _, original := range sortedKeys(e.Originals) {
		parts = append(parts, fmt.Sprintf("%q (%d backups)", original, len(e.Originals[original])))
	}
	return "multiple backups for " + strings.Join(parts, ", ")
}
