package restorerevert

import "path/filepath"

// RevertedSuffix marks the restored file while it is stashed during a swap.
const RevertedSuffix = "_reverted"

// RevertPair links a preserved backup to the restored file it replaces.
type RevertPair struct {
	Backup   string
	Original string
	// Date is the eight digit suffix of the backup name.
	Date string
}

// Stash returns the path the restored file is moved to before it is deleted.
func (p RevertPair) Stash() string {
	return filepath.Join(filepath.Dir(p.Original), filepath.Base(p.Original)+RevertedSuffix)
}

// Policy controls how the walker treats symlinks.
type Policy struct {
	// RenameSymlink classifies symlinks (file or directory) as candidates.
	RenameSymlink bool
	// FollowSymlink descends into directory symlinks. Experimental.
	FollowSymlink bool
	// Verbose reports ignored entries.
	Verbose bool
}

// Config is everything a revert run needs.
type Config struct {
	Root     string
	Simulate bool
	Policy
}

// Summary describes a finished run.
type Summary struct {
	Seen     int
	Found    int
	Reverted int
	Skipped  int
	Warnings int
	Pairs    []RevertPair
}
