package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relkit/relkit/pkg/logger"
)

var (
	flagVerbose bool
	flagQuiet   bool
	flagNoColor bool
	flagConfig  string
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relkit <version|major|minor|patch>",
		Short: "Bump the version, update the changelog, and commit the release",
		Long: `relkit automates the mechanical part of cutting a release:

1. Rewrite the version declaration line in the project's version file
2. Prepend a new section to the changelog, discarding the old boilerplate head
3. Commit both files

The version is given explicitly ("2.3.1") or as a bump keyword ("major",
"minor", "patch") applied to the version currently declared in the file.

Examples:
  relkit 2.3.1            # release exactly 2.3.1
  relkit patch            # increment the patch component
  relkit minor --tag      # increment minor, tag the commit v<version>
  relkit 2.3.1 --dry-run  # show what would happen`,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Usage()
				return fmt.Errorf("missing required <version> argument")
			}
			return runRelease(cmd, args[0])
		},
	}

	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	cmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: discovered .relkit.toml)")

	addReleaseFlags(cmd)

	return cmd
}

// Execute runs the root command. Errors are logged here so main stays a
// one-liner.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		getLogger().WithError(err).Error("relkit failed")
		return err
	}
	return nil
}

func getLogger() *logrus.Logger {
	return logger.New(logger.Options{
		Verbose: flagVerbose,
		Quiet:   flagQuiet,
		NoColor: flagNoColor,
	})
}
