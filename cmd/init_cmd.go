package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relkit/relkit/pkg/config"
	"github.com/relkit/relkit/pkg/project"
)

func init() {
	rootCmd.AddCommand(newInitCmd())
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a .relkit.toml seeded from the detected project",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	log := getLogger()

	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	info, err := project.Detect(dir)
	if err != nil {
		return err
	}

	cfg := config.Default()
	cfg.ApplyProject(dir, info)

	path := filepath.Join(dir, ".relkit.toml")
	if err := config.WriteScaffold(path, cfg); err != nil {
		return err
	}

	log.WithField("path", ".relkit.toml").Info("Configuration written")
	if cfg.VersionFile == "" {
		log.Warn("No version file detected; set version_file in .relkit.toml")
	}
	return nil
}
