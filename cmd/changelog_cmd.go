package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relkit/relkit/pkg/changelog"
	"github.com/relkit/relkit/pkg/release"
)

var changelogFromCommits bool

func init() {
	rootCmd.AddCommand(newChangelogCmd())
}

func newChangelogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changelog <version>",
		Short: "Rewrite the changelog head for a version without releasing",
		Long: `Prepends a section for the given version to the changelog, discarding
the old boilerplate head, exactly as a release would. The version file is
not touched and nothing is committed.

With --from-commits the section body is generated from conventional
commits made since the last tag.`,
		Args: cobra.ExactArgs(1),
		RunE: runChangelog,
	}
	cmd.Flags().BoolVar(&changelogFromCommits, "from-commits", false, "Generate the section body from conventional commits")
	return cmd
}

func runChangelog(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	log := getLogger()

	rc, err := loadReleaseContext(log)
	if err != nil {
		return err
	}

	version, _, err := release.Resolve(args[0], rc.Current)
	if err != nil {
		return err
	}

	flagFromCommits = changelogFromCommits
	body := rc.changelogBody(ctx)

	path := filepath.Join(rc.Dir, rc.Config.Changelog)
	if err := changelog.Rewrite(path, version, changelog.Style(rc.Config.Style), body, time.Now()); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"file":    rc.Config.Changelog,
		"version": version,
	}).Info("Changelog updated")
	return nil
}
