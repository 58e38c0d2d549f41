// Package cli implements the coilpos command-line interface.
//
// The CLI is a thin wrapper over the library packages: it loads a TOML
// machine description, generates an initial coil layout and prints it, or
// maps a generated coil set into normalised optimiser coordinates. All
// commands support --verbose (-v) for debug-level logging; loggers are
// passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
)

// SetVersion sets the version information displayed by --version,
// typically injected via ldflags at build time.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the coilpos CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "coilpos",
		Short:        "coilpos generates and maps fusion magnet coil positions",
		Long:         `coilpos builds initial poloidal-field and central-solenoid coil layouts from reactor shape parameters and maps them into the normalised coordinates a positional optimiser consumes.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	if commit != "" {
		root.SetVersionTemplate("coilpos " + version + " (" + commit + ")\n")
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLayoutCmd())
	root.AddCommand(newLmapCmd())

	return root.ExecuteContext(ctx)
}
