package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/restorerevert/pkg/restorerevert"
	"github.com/arthur-debert/restorerevert/pkg/restorerevert/filesystem"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

type rootFlags struct {
	dir           string
	simulate      bool
	renameSymlink bool
	followSymlink bool
	verbose       bool
	logLevel      string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "restorerevert",
		Short: "Undo a Back In Time restore with backup",
		Long: `restorerevert walks a directory tree looking for files named
<name>.backup.YYYYMMDD and swaps each one back over the restored <name>.
The restored file is moved to <name>_reverted and deleted once the backup
is in place.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRevert(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "root directory of the revert walk")
	cmd.Flags().BoolVarP(&flags.simulate, "simulate", "s", false, "perform no filesystem mutation, only log intended actions")
	cmd.Flags().BoolVar(&flags.renameSymlink, "rename-symlink", false, "classify symlinks (file or directory) as candidates")
	cmd.Flags().BoolVar(&flags.followSymlink, "follow-symlink", false, "descend into directory symlinks (experimental)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log ignored entries")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "diagnostic log level (trace, debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("dir")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runRevert(cmd *cobra.Command, flags *rootFlags) error {
	level, err := restorerevert.ParseLogLevel(flags.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flags.logLevel, err)
	}
	restorerevert.SetLogger(restorerevert.NewLogger(cmd.ErrOrStderr(), level))

	root, err := filepath.Abs(flags.dir)
	if err != nil {
		return &restorerevert.InvalidRootError{Root: flags.dir, Cause: err}
	}

	cfg := restorerevert.Config{
		Root:     root,
		Simulate: flags.simulate,
		Policy: restorerevert.Policy{
			RenameSymlink: flags.renameSymlink,
			FollowSymlink: flags.followSymlink,
			Verbose:       flags.verbose,
		},
	}

	_, err = restorerevert.Run(filesystem.NewOSFileSystem(), cfg,
		restorerevert.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of restorerevert`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "restorerevert version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// Execute runs the root command and exits non-zero on any error.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
