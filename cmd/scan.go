package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/relkit/relkit/pkg/bumper"
)

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [file...]",
		Short: "List version declarations found in the project",
		Long: `Scans the given files (or the configured version file when none are
given) for version declaration lines and prints every match. Read-only:
nothing is modified.`,
		RunE: runScan,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	log := getLogger()

	rc, err := loadReleaseContext(log)
	if err != nil {
		return err
	}

	files := args
	if len(files) == 0 {
		if rc.Config.VersionFile == "" {
			return fmt.Errorf("no version file configured or detected; pass files to scan")
		}
		files = []string{rc.Config.VersionFile}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("FILE", "LINE", "PATTERN", "VERSION")

	found := 0
	for _, file := range files {
		matches, err := bumper.Find(filepath.Join(rc.Dir, file))
		if err != nil {
			return err
		}
		for i, m := range matches {
			version := m.Version
			if i == 0 {
				// The first match is what a release would rewrite.
				version = proposedStyle.Render(version)
			}
			t.Row(file, strconv.Itoa(m.Line), m.Pattern, version)
			found++
		}
	}

	if found == 0 {
		log.Warn("No version declarations found")
		return nil
	}

	fmt.Println(t)
	return nil
}
