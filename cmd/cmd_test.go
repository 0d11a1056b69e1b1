package cmd

import (
	"bytes"
	"testing"

	"github.com/huangsam/launchpad/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCommands(t *testing.T) {
	for _, spec := range core.DefaultTools() {
		c, _, err := rootCmd.Find([]string{spec.Command})
		require.NoError(t, err, spec.Command)
		assert.Equal(t, spec.Command, c.Name())
		assert.Equal(t, spec.SupportsPercent, c.Flags().Lookup("percent") != nil, spec.Command)
	}
}

func TestSubcommands(t *testing.T) {
	for _, path := range [][]string{
		{"mcp"},
		{"tools"},
		{"version"},
		{"history", "status"},
		{"history", "list"},
		{"history", "clear"},
		{"history", "export"},
		{"history", "migrate"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}

	mcp, _, err := rootCmd.Find([]string{"mcp"})
	require.NoError(t, err)
	for _, flag := range []string{"transport", "addr", "tool-errors"} {
		assert.NotNil(t, mcp.Flags().Lookup(flag), flag)
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "launchpad CLI")
	assert.Contains(t, buf.String(), "Version: dev")
}
