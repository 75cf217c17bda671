// Package config loads relkit configuration from .relkit.toml or
// .relkit.yml, layering it over defaults derived from project detection.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/relkit/relkit/pkg/project"
)

// FileNames are the recognized config file names, in lookup order.
var FileNames = []string{".relkit.toml", ".relkit.yml", ".relkit.yaml"}

// Config is the full relkit configuration.
type Config struct {
	// VersionFile is the file holding the version declaration line.
	VersionFile string `toml:"version_file" yaml:"version_file" json:"version_file,omitempty" jsonschema:"description=File containing the version declaration line"`
	// Changelog is the changelog file rewritten on release.
	Changelog string `toml:"changelog" yaml:"changelog" json:"changelog,omitempty" jsonschema:"description=Changelog file rewritten on release,default=CHANGELOG.md"`
	// CommitMessage is the commit message template. {version} expands to
	// the released version.
	CommitMessage string `toml:"commit_message" yaml:"commit_message" json:"commit_message,omitempty" jsonschema:"description=Commit message template; {version} expands to the released version,default=Release {version}"`
	// TagFormat is the tag name template used with --tag.
	TagFormat string `toml:"tag_format" yaml:"tag_format" json:"tag_format,omitempty" jsonschema:"description=Tag name template used with --tag,default=v{version}"`
	// Style selects the changelog header style: auto, markdown, or underline.
	Style string `toml:"style" yaml:"style" json:"style,omitempty" jsonschema:"description=Changelog section header style,enum=auto,enum=markdown,enum=underline,default=auto"`
	// RequireClean aborts the release when the working tree has unrelated
	// local changes.
	RequireClean bool `toml:"require_clean" yaml:"require_clean" json:"require_clean,omitempty" jsonschema:"description=Refuse to release from a dirty working tree"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Changelog:     "CHANGELOG.md",
		CommitMessage: "Release {version}",
		TagFormat:     "v{version}",
		Style:         "auto",
	}
}

// Load reads the config file at path over the defaults. TOML files are
// decoded strictly: unknown keys are an error, so typos never silently
// fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	switch ext := filepath.Ext(path); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
		}
	case ".yml", ".yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	switch cfg.Style {
	case "", "auto", "markdown", "underline":
	default:
		return nil, fmt.Errorf("unknown style %q in %s (must be auto, markdown, or underline)", cfg.Style, path)
	}

	return cfg, nil
}

// Discover walks from dir upward looking for a config file. It returns the
// path of the first one found, or "" when none exists.
func Discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ApplyProject fills unset fields from project info detected in dir.
func (c *Config) ApplyProject(dir string, info *project.Info) {
	if c.VersionFile == "" {
		c.VersionFile = info.VersionFile
	}
	if info.ChangelogFile != "" && !fileExists(filepath.Join(dir, c.Changelog)) {
		c.Changelog = info.ChangelogFile
	}
}

// RenderCommitMessage expands the commit message template for version.
func (c *Config) RenderCommitMessage(version string) string {
	return strings.ReplaceAll(c.CommitMessage, "{version}", version)
}

// RenderTag expands the tag format for version.
func (c *Config) RenderTag(version string) string {
	return strings.ReplaceAll(c.TagFormat, "{version}", version)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
