// Package cmd (root.go) defines the root command for the yadisk-client CLI.
// It sets up global flags, persistent pre-run checks for authentication,
// and registers subcommands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	cmdResources "github.com/tonimelisma/yadisk-client/cmd/resources"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "yadisk-client",
	Short: "A CLI client for Yandex.Disk",
	Long: `yadisk-client is a command-line interface to Yandex.Disk.

Current capabilities include:
  - Authentication management (login, logout, status)
  - Disk quota and token checks, asynchronous operation status
  - File and folder operations (ls, stat, mkdir, upload, download, rm, cp, mv, rename)
  - Trash management and public links

Transient server errors are retried; see --retries, --retry-interval and --timeout.`,
	SilenceUsage: true,
	// Commands outside 'auth' need a finished login. A pending one is
	// reported here once instead of by every command.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Parent() != nil && cmd.Parent().Name() == "auth" {
			return nil
		}
		if cmd == cmd.Root() || cmd.Name() == "help" {
			return nil
		}
		a, err := app.NewApp(cmd)
		if err != nil {
			if errors.Is(err, app.ErrLoginPending) {
				fmt.Println(err.Error())
				return app.ErrLoginPending
			}
			return err
		}
		return a.Close()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command. Ctrl-C cancels in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, app.ErrLoginPending) {
			ui.PrintError(err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging for SDK and internal operations")
	ui.AddRequestFlags(rootCmd)

	cmdResources.InitResourcesCommands(rootCmd)
}
