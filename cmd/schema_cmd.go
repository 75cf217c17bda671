package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/relkit/relkit/pkg/config"
)

func init() {
	rootCmd.AddCommand(newSchemaCmd())
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for .relkit.toml",
		Long: `Prints the JSON schema describing the relkit configuration file.
Point your editor's TOML/YAML language server at it for completion and
validation.`,
		Args: cobra.NoArgs,
		RunE: runSchema,
	}
}

func runSchema(cmd *cobra.Command, args []string) error {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(&config.Config{})
	schema.Title = "relkit configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
