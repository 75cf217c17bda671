package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relkit/relkit/pkg/conventional"
	"github.com/relkit/relkit/pkg/githooks"
)

func init() {
	rootCmd.AddCommand(newHooksCmd())
	rootCmd.AddCommand(newCheckCommitCmd())
}

func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the commit-msg hook enforcing conventional commits",
		Long: `The commit-msg hook rejects commit messages that do not follow the
conventional commit form. A conventional history is what lets
"relkit <version> --from-commits" generate the changelog section body.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install the commit-msg hook in the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			if err := githooks.Install(dir); err != nil {
				return err
			}
			getLogger().Info("commit-msg hook installed")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "uninstall",
		Short: "Remove the relkit-managed commit-msg hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			if err := githooks.Uninstall(dir); err != nil {
				return err
			}
			getLogger().Info("commit-msg hook removed")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether the hook is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			if githooks.Installed(dir) {
				fmt.Fprintln(cmd.OutOrStdout(), "commit-msg hook: installed")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "commit-msg hook: not installed")
			}
			return nil
		},
	})

	return cmd
}

// newCheckCommitCmd is what the installed hook runs. Hidden because users
// never invoke it directly.
func newCheckCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "check-commit <message-file>",
		Short:  "Validate a commit message file against the conventional commit form",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading commit message: %w", err)
			}
			if _, err := conventional.Parse(string(data)); err != nil {
				return fmt.Errorf("%w\n\nexpected \"type(scope): description\", e.g. \"fix(ldap): handle empty search base\"", err)
			}
			return nil
		},
	}
}
