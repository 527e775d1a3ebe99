package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/config"
	"github.com/tonimelisma/yadisk-client/internal/session"
	"github.com/tonimelisma/yadisk-client/internal/ui"
)

// newFlagCmd returns a command with the request flags plus whatever setup
// adds, parsed from flagArgs.
func newFlagCmd(t *testing.T, setup func(c *cobra.Command), flagArgs ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	if setup != nil {
		setup(c)
	}
	ui.AddRequestFlags(c)
	require.NoError(t, c.ParseFlags(flagArgs))
	return c
}

// newAuthTestApp returns an app with a configuration and session store in a
// temporary directory.
func newAuthTestApp(t *testing.T, sdk app.SDK) *app.App {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.ConfigPathEnv, filepath.Join(dir, "config.json"))
	t.Setenv(app.ClientIDEnv, "")

	cfg, err := config.LoadOrCreate()
	require.NoError(t, err)
	return &app.App{
		Config:   cfg,
		SDK:      sdk,
		Sessions: session.NewManager(dir),
	}
}
