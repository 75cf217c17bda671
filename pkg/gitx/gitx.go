// Package gitx runs git as a subprocess for the handful of operations the
// release flow needs: status, commit, tag, push, and history queries.
package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Runner executes git commands in a fixed working directory.
type Runner struct {
	Dir    string
	DryRun bool
	Logger *logrus.Logger
}

// NewRunner returns a Runner rooted at dir.
func NewRunner(dir string, logger *logrus.Logger) *Runner {
	return &Runner{Dir: dir, Logger: logger}
}

// output runs a read-only git command and returns trimmed stdout.
func (r *Runner) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

// run executes a mutating git command, honoring dry-run mode.
func (r *Runner) run(ctx context.Context, args ...string) error {
	if r.DryRun {
		r.Logger.WithField("command", "git "+strings.Join(args, " ")).Info("[dry-run] would execute")
		return nil
	}
	r.Logger.WithField("command", "git "+strings.Join(args, " ")).Debug("executing")

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, strings.TrimSpace(combined.String()))
	}
	return nil
}

// IsWorkTree reports whether Dir is inside a git work tree.
func (r *Runner) IsWorkTree(ctx context.Context) bool {
	out, err := r.output(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Status returns the parsed working-tree status.
func (r *Runner) Status(ctx context.Context) (*Status, error) {
	out, err := r.output(ctx, "status", "--porcelain", "--branch")
	if err != nil {
		return nil, err
	}
	return ParseStatus(out), nil
}

// Commit records a commit naming exactly the given paths, so unrelated
// staged changes never ride along.
func (r *Runner) Commit(ctx context.Context, message string, paths ...string) error {
	args := append([]string{"commit", "-m", message, "--"}, paths...)
	return r.run(ctx, args...)
}

// Tag creates an annotated tag.
func (r *Runner) Tag(ctx context.Context, name, message string) error {
	return r.run(ctx, "tag", "-a", name, "-m", message)
}

// TagExists reports whether the named tag already exists.
func (r *Runner) TagExists(ctx context.Context, name string) (bool, error) {
	out, err := r.output(ctx, "tag", "-l", name)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// LatestTag returns the most recent reachable tag, or "" when the
// repository has none.
func (r *Runner) LatestTag(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "describe", "--tags", "--abbrev=0")
	if err != nil {
		// No tags yet is a normal state for a first release.
		if strings.Contains(err.Error(), "No names found") ||
			strings.Contains(err.Error(), "cannot describe") {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// MessagesSince returns full commit messages after ref, newest first.
// An empty ref means the whole history.
func (r *Runner) MessagesSince(ctx context.Context, ref string) ([]string, error) {
	rng := "HEAD"
	if ref != "" {
		rng = ref + "..HEAD"
	}
	out, err := r.output(ctx, "log", rng, "--pretty=format:%B%x00")
	if err != nil {
		return nil, err
	}

	var messages []string
	for _, msg := range strings.Split(out, "\x00") {
		if msg = strings.TrimSpace(msg); msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// Push pushes the given refs to origin.
func (r *Runner) Push(ctx context.Context, refs ...string) error {
	args := append([]string{"push", "origin"}, refs...)
	return r.run(ctx, args...)
}
