package restorerevert

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/restorerevert/pkg/restorerevert/filesystem"
)

// Resolver turns backup candidates into RevertPairs.
type Resolver struct {
	fs filesystem.ReadFS
}

// NewResolver creates a resolver reading metadata from fsys.
func NewResolver(fsys filesystem.ReadFS) *Resolver {
	return &Resolver{fs: fsys}
}

// Resolve classifies the leaf of backup and validates its original.
//
// It returns (nil, nil) when the name is not a backup name, a
// *CandidateError when the name matched but no pair can be formed, and an
// *InvalidNameError when the leaf is not valid UTF-8.
func (r *Resolver) Resolve(backup string) (*RevertPair, error) {
	name := filepath.Base(backup)
	if !validName(name) {
		return nil, &InvalidNameError{Path: backup}
	}

	m, ok := ClassifyName(name)
	if !ok {
		return nil, nil
	}

	original := filepath.Join(filepath.Dir(backup), m.Base)
	info, err := r.fs.Lstat(original)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &CandidateError{Backup: backup, Reason: ReasonNoOriginal, Cause: err}
		}
		return nil, &CandidateError{Backup: backup, Reason: ReasonNoMetadata, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &CandidateError{Backup: backup, Reason: ReasonNoOriginal}
	}

	Logger().Debug().
		Str("backup", backup).
		Str("original", original).
		Str("date", m.Date).
		Msg("pair admitted")

	return &RevertPair{
		Backup:   backup,
		Original: original,
		Date:     m.Date,
	}, nil
}
