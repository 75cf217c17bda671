package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relkit/relkit/pkg/bumper"
	"github.com/relkit/relkit/pkg/changelog"
	"github.com/relkit/relkit/pkg/config"
	"github.com/relkit/relkit/pkg/conventional"
	"github.com/relkit/relkit/pkg/gitx"
	"github.com/relkit/relkit/pkg/project"
	"github.com/relkit/relkit/pkg/release"
)

var (
	flagDryRun      bool
	flagYes         bool
	flagNoCommit    bool
	flagTag         bool
	flagPush        bool
	flagMessage     string
	flagFromCommits bool
	flagJSON        bool
)

func addReleaseFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print planned actions without touching anything")
	cmd.Flags().BoolVar(&flagYes, "yes", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&flagNoCommit, "no-commit", false, "Rewrite the files but do not commit")
	cmd.Flags().BoolVar(&flagTag, "tag", false, "Create an annotated tag after committing")
	cmd.Flags().BoolVar(&flagPush, "push", false, "Push the branch (and tag) to origin")
	cmd.Flags().StringVarP(&flagMessage, "message", "m", "", "Commit message template overriding the config")
	cmd.Flags().BoolVar(&flagFromCommits, "from-commits", false, "Generate the changelog body from conventional commits since the last tag")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "With --dry-run, print the plan as JSON")
}

// releaseContext bundles everything the release commands share.
type releaseContext struct {
	Dir    string
	Config *config.Config
	Info   *project.Info
	Git    *gitx.Runner
	Log    *logrus.Logger
	// Current is the version currently declared in the version file, or ""
	// when the file has no declaration yet.
	Current string
}

func loadReleaseContext(log *logrus.Logger) (*releaseContext, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath, err = config.Discover(dir)
		if err != nil {
			return nil, fmt.Errorf("discovering config: %w", err)
		}
	}

	cfg := config.Default()
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		log.WithField("config", cfgPath).Debug("Loaded configuration")
	}

	info, err := project.Detect(dir)
	if err != nil {
		return nil, fmt.Errorf("detecting project: %w", err)
	}
	cfg.ApplyProject(dir, info)
	log.WithFields(logrus.Fields{
		"kind": info.Kind,
		"name": info.Name,
	}).Debug("Detected project")

	rc := &releaseContext{
		Dir:    dir,
		Config: cfg,
		Info:   info,
		Git:    gitx.NewRunner(dir, log),
		Log:    log,
	}

	if cfg.VersionFile != "" {
		if m, err := bumper.FindDeclaration(rc.versionPath()); err == nil {
			rc.Current = m.Version
		}
	}

	return rc, nil
}

func (rc *releaseContext) versionPath() string {
	return filepath.Join(rc.Dir, rc.Config.VersionFile)
}

// buildPlan resolves the version argument into a full release plan.
func (rc *releaseContext) buildPlan(arg string) (*release.Plan, error) {
	next, bump, err := release.Resolve(arg, rc.Current)
	if err != nil {
		return nil, err
	}

	msg := rc.Config.RenderCommitMessage(next)
	if flagMessage != "" {
		msg = strings.ReplaceAll(flagMessage, "{version}", next)
	}

	plan := &release.Plan{
		Project:        rc.Info.Name,
		CurrentVersion: rc.Current,
		NextVersion:    next,
		Bump:           bump,
		VersionFile:    rc.Config.VersionFile,
		ChangelogFile:  rc.Config.Changelog,
		CommitMessage:  msg,
		Push:           flagPush,
		CreatedAt:      time.Now(),
	}
	if flagTag {
		plan.Tag = rc.Config.RenderTag(next)
	}
	return plan, nil
}

// changelogBody returns the generated section body, or "" when body
// generation is disabled or nothing parses as a conventional commit.
func (rc *releaseContext) changelogBody(ctx context.Context) string {
	if !flagFromCommits {
		return ""
	}
	lastTag, err := rc.Git.LatestTag(ctx)
	if err != nil {
		rc.Log.WithError(err).Warn("Could not determine last tag; skipping changelog body")
		return ""
	}
	messages, err := rc.Git.MessagesSince(ctx, lastTag)
	if err != nil {
		rc.Log.WithError(err).Warn("Could not read git history; skipping changelog body")
		return ""
	}
	return conventional.Generate(conventional.ParseAll(messages))
}

func runRelease(cmd *cobra.Command, arg string) error {
	ctx := context.Background()
	log := getLogger()

	rc, err := loadReleaseContext(log)
	if err != nil {
		return err
	}

	plan, err := rc.buildPlan(arg)
	if err != nil {
		return err
	}

	rc.Git.DryRun = flagDryRun

	if err := release.Preflight(ctx, rc.Dir, plan, rc.Git, rc.Config.RequireClean); err != nil {
		return err
	}

	if flagDryRun && flagJSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling plan: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printPlan(plan)

	if !confirm() {
		log.Info("Release cancelled")
		return nil
	}

	opts := release.Options{
		DryRun:   flagDryRun,
		NoCommit: flagNoCommit,
		Body:     rc.changelogBody(ctx),
		Style:    changelog.Style(rc.Config.Style),
	}
	if err := release.Run(ctx, rc.Dir, plan, rc.Git, log, opts); err != nil {
		return err
	}

	if !flagDryRun {
		log.WithField("version", plan.NextVersion).Info("Release complete")
	}
	return nil
}

func printPlan(plan *release.Plan) {
	current := plan.CurrentVersion
	if current == "" {
		current = "-"
	}

	files := plan.VersionFile + ", " + plan.ChangelogFile

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("PROJECT", "CURRENT", "NEXT", "INCREMENT", "FILES").
		Row(plan.Project, current, proposedStyle.Render(plan.NextVersion),
			release.Increment(plan.CurrentVersion, plan.NextVersion), files)

	fmt.Println(t)

	if plan.Tag != "" {
		fmt.Printf("Tag: %s\n", plan.Tag)
	}
	fmt.Printf("Commit: %s\n", plan.CommitMessage)
}

// confirm asks for confirmation on a TTY. Non-interactive runs (pipes, CI)
// proceed only with --yes or --dry-run.
func confirm() bool {
	if flagYes || flagDryRun {
		return true
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, warnStyle.Render("stdin is not a terminal; use --yes to release non-interactively"))
		return false
	}

	fmt.Print("\nProceed with release? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
