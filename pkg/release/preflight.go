package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/relkit/relkit/pkg/gitx"
)

// Preflight validates that the plan can be executed from dir. Failures here
// happen before any file is modified.
func Preflight(ctx context.Context, dir string, plan *Plan, git *gitx.Runner, requireClean bool) error {
	if plan.VersionFile == "" {
		return fmt.Errorf("no version file configured or detected; set version_file in .relkit.toml")
	}
	if _, err := os.Stat(filepath.Join(dir, plan.VersionFile)); err != nil {
		return fmt.Errorf("version file %s: %w", plan.VersionFile, err)
	}

	if !git.IsWorkTree(ctx) {
		return fmt.Errorf("%s is not inside a git work tree", dir)
	}

	if plan.Tag != "" {
		exists, err := git.TagExists(ctx, plan.Tag)
		if err != nil {
			return fmt.Errorf("checking tag %s: %w", plan.Tag, err)
		}
		if exists {
			return fmt.Errorf("tag %s already exists", plan.Tag)
		}
	}

	if requireClean {
		status, err := git.Status(ctx)
		if err != nil {
			return fmt.Errorf("checking working tree: %w", err)
		}
		if status.IsDirty() {
			return fmt.Errorf("working tree has local changes; commit or stash them first")
		}
	}

	return nil
}
