package release

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/relkit/relkit/pkg/bumper"
	"github.com/relkit/relkit/pkg/changelog"
	"github.com/relkit/relkit/pkg/gitx"
)

// Options control plan execution.
type Options struct {
	DryRun   bool
	NoCommit bool
	// Body is the changelog section body; empty means a header-only section.
	Body  string
	Style changelog.Style
	Now   time.Time
}

// Run executes the plan from dir, stopping at the first error. The version
// file may already be rewritten when a later step fails; there is no
// rollback beyond the changelog's temp-file cleanup.
func Run(ctx context.Context, dir string, plan *Plan, git *gitx.Runner, log *logrus.Logger, opts Options) error {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	versionPath := filepath.Join(dir, plan.VersionFile)
	changelogPath := filepath.Join(dir, plan.ChangelogFile)

	if opts.DryRun {
		log.WithFields(logrus.Fields{
			"file":    plan.VersionFile,
			"version": plan.NextVersion,
		}).Info("[dry-run] would rewrite version declaration")
		log.WithField("file", plan.ChangelogFile).Info("[dry-run] would prepend changelog section")
	} else {
		m, err := bumper.Bump(versionPath, plan.NextVersion)
		if err != nil {
			return fmt.Errorf("bumping version: %w", err)
		}
		log.WithFields(logrus.Fields{
			"file":    plan.VersionFile,
			"line":    m.Line,
			"pattern": m.Pattern,
			"version": plan.NextVersion,
		}).Info("Version declaration rewritten")

		if err := changelog.Rewrite(changelogPath, plan.NextVersion, opts.Style, opts.Body, now); err != nil {
			return fmt.Errorf("rewriting changelog: %w", err)
		}
		log.WithField("file", plan.ChangelogFile).Info("Changelog updated")
	}

	if !opts.NoCommit {
		if err := git.Commit(ctx, plan.CommitMessage, plan.VersionFile, plan.ChangelogFile); err != nil {
			return fmt.Errorf("committing release: %w", err)
		}
		log.WithField("message", plan.CommitMessage).Info("Release committed")
	}

	if plan.Tag != "" {
		if err := git.Tag(ctx, plan.Tag, fmt.Sprintf("Release %s", plan.NextVersion)); err != nil {
			return fmt.Errorf("tagging release: %w", err)
		}
		log.WithField("tag", plan.Tag).Info("Release tagged")
	}

	if plan.Push {
		refs := []string{"HEAD"}
		if plan.Tag != "" {
			refs = append(refs, plan.Tag)
		}
		if err := git.Push(ctx, refs...); err != nil {
			return fmt.Errorf("pushing release: %w", err)
		}
		log.Info("Release pushed to origin")
	}

	return nil
}
