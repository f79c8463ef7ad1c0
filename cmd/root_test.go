package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "scrape", "analyze"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "faculty-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestScrapeCommand_Flags(t *testing.T) {
	group := scrapeCmd.Flags().Lookup("group")
	require.NotNil(t, group)
	assert.Equal(t, "", group.DefValue)

	format := scrapeCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "table", format.DefValue)

	assert.Error(t, scrapeCmd.Args(scrapeCmd, nil))
	assert.NoError(t, scrapeCmd.Args(scrapeCmd, []string{"https://x.edu/people/"}))
}

func TestAnalyzeCommand_Flags(t *testing.T) {
	require.NotNil(t, analyzeCmd.Flags().Lookup("name"))
	require.NotNil(t, analyzeCmd.Flags().Lookup("format"))
	assert.Error(t, analyzeCmd.Args(analyzeCmd, []string{"a", "b"}))
}
