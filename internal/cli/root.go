package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the tenon CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (render, stl,
// graph, anchors), configures logging based on the --verbose flag, and
// executes the command tree.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "tenon",
		Short:        "Tenon composes anchored solid models from Lisp scripts",
		Long:         `Tenon evaluates Lisp shape scripts into anchored solid compositions and emits model documents, STL meshes and composition graphs.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tenon %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newSTLCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newAnchorsCmd())

	return root.ExecuteContext(context.Background())
}
