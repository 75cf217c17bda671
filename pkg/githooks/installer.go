// Package githooks installs the relkit commit-msg hook, which rejects
// commit messages that do not follow the conventional commit form. Keeping
// history conventional is what makes --from-commits changelog generation
// useful.
package githooks

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const hookMarker = "relkit conventional commit hook"

const commitMsgHook = `#!/bin/sh
# ` + hookMarker + ` (managed by relkit)

exec relkit check-commit "$1"
`

// hooksDir resolves the repository's hooks directory, honoring
// core.hooksPath and linked work trees.
func hooksDir(repoPath string) (string, error) {
	cmd := exec.Command("git", "-C", repoPath, "rev-parse", "--git-path", "hooks")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("finding hooks directory: %w", err)
	}

	dir := strings.TrimSpace(string(out))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoPath, dir)
	}
	return dir, nil
}

// Install writes the commit-msg hook into the repository at repoPath. An
// existing hook is only overwritten when relkit put it there.
func Install(repoPath string) error {
	dir, err := hooksDir(repoPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating hooks directory: %w", err)
	}

	hookPath := filepath.Join(dir, "commit-msg")
	if existing, err := os.ReadFile(hookPath); err == nil {
		if !strings.Contains(string(existing), hookMarker) {
			return fmt.Errorf("commit-msg hook already exists and is not managed by relkit")
		}
	}

	if err := os.WriteFile(hookPath, []byte(commitMsgHook), 0755); err != nil {
		return fmt.Errorf("writing commit-msg hook: %w", err)
	}
	return nil
}

// Uninstall removes the commit-msg hook if relkit installed it. A missing
// hook is not an error.
func Uninstall(repoPath string) error {
	dir, err := hooksDir(repoPath)
	if err != nil {
		return err
	}

	hookPath := filepath.Join(dir, "commit-msg")
	content, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading commit-msg hook: %w", err)
	}
	if !strings.Contains(string(content), hookMarker) {
		return fmt.Errorf("commit-msg hook exists but is not managed by relkit")
	}

	if err := os.Remove(hookPath); err != nil {
		return fmt.Errorf("removing commit-msg hook: %w", err)
	}
	return nil
}

// Installed reports whether the relkit-managed hook is present.
func Installed(repoPath string) bool {
	dir, err := hooksDir(repoPath)
	if err != nil {
		return false
	}
	content, err := os.ReadFile(filepath.Join(dir, "commit-msg"))
	return err == nil && strings.Contains(string(content), hookMarker)
}
