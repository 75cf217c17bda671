package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const scaffoldHeader = `# relkit release configuration.
# Run "relkit schema" for the full schema.
`

// WriteScaffold writes cfg as a commented .relkit.toml at path. It refuses
// to overwrite an existing file.
func WriteScaffold(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	out := append([]byte(scaffoldHeader), data...)
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
