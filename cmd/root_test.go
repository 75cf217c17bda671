package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRequiresVersionArgument(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required <version> argument")
	assert.Contains(t, out.String(), "Usage:")
}

func TestRootRejectsExtraArguments(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"2.3.1", "2.3.2"})

	assert.Error(t, cmd.Execute())
}

func TestRootHelpListsSubcommands(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	help := out.String()
	for _, name := range []string{"plan", "scan", "changelog", "init", "schema", "version"} {
		if !strings.Contains(help, name) {
			t.Errorf("help output missing subcommand %q", name)
		}
	}
}
