package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relkit/relkit/pkg/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".relkit.toml")
	writeFile(t, path, `
version_file = "suseapi/__init__.py"
commit_message = "release: {version}"
require_clean = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "suseapi/__init__.py", cfg.VersionFile)
	assert.Equal(t, "release: {version}", cfg.CommitMessage)
	assert.True(t, cfg.RequireClean)
	// Unset keys keep their defaults.
	assert.Equal(t, "CHANGELOG.md", cfg.Changelog)
	assert.Equal(t, "v{version}", cfg.TagFormat)
}

func TestLoadTOMLRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".relkit.toml")
	writeFile(t, path, `version_flie = "VERSION"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version_flie")
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".relkit.yml")
	writeFile(t, path, "version_file: VERSION\nstyle: underline\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "VERSION", cfg.VersionFile)
	assert.Equal(t, "underline", cfg.Style)
}

func TestLoadRejectsUnknownStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".relkit.toml")
	writeFile(t, path, `style = "markdwon"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markdwon")
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("relkit.ini")
	assert.Error(t, err)
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeFile(t, filepath.Join(root, ".relkit.toml"), "")

	found, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".relkit.toml"), found)
}

func TestDiscoverPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".relkit.yml"), "")
	writeFile(t, filepath.Join(dir, ".relkit.toml"), "")

	found, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".relkit.toml"), found)
}

func TestApplyProject(t *testing.T) {
	dir := t.TempDir()
	info := &project.Info{
		Kind:          project.KindPython,
		VersionFile:   "pkg/__init__.py",
		ChangelogFile: "ChangeLog",
	}

	t.Run("fills unset version file", func(t *testing.T) {
		cfg := Default()
		cfg.ApplyProject(dir, info)
		assert.Equal(t, "pkg/__init__.py", cfg.VersionFile)
	})

	t.Run("keeps explicit version file", func(t *testing.T) {
		cfg := Default()
		cfg.VersionFile = "VERSION"
		cfg.ApplyProject(dir, info)
		assert.Equal(t, "VERSION", cfg.VersionFile)
	})

	t.Run("uses detected changelog when default missing", func(t *testing.T) {
		cfg := Default()
		cfg.ApplyProject(dir, info)
		assert.Equal(t, "ChangeLog", cfg.Changelog)
	})

	t.Run("keeps default changelog when the file exists", func(t *testing.T) {
		cfg := Default()
		writeFile(t, filepath.Join(dir, "CHANGELOG.md"), "# Changelog\n")
		cfg.ApplyProject(dir, info)
		assert.Equal(t, "CHANGELOG.md", cfg.Changelog)
	})
}

func TestRenderTemplates(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Release 2.3.1", cfg.RenderCommitMessage("2.3.1"))
	assert.Equal(t, "v2.3.1", cfg.RenderTag("2.3.1"))
}

func TestWriteScaffoldRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".relkit.toml")

	require.NoError(t, WriteScaffold(path, Default()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "changelog")

	assert.Error(t, WriteScaffold(path, Default()))
}
