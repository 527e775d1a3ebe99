// Package cmd (disk.go) defines 'disk info', 'disk check-token' and
// 'ops status'.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/ui"
)

var diskCmd = &cobra.Command{
	Use:   "disk",
	Short: "Show disk information",
}

var diskInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show quota and owner information",
	Args:  cobra.NoArgs,
	RunE:  app.WithApp(diskInfoLogic),
}

var diskCheckTokenCmd = &cobra.Command{
	Use:   "check-token [token]",
	Short: "Check whether a token is accepted",
	Long:  "Checks the given token, or the stored one when omitted, against the API.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  app.WithApp(diskCheckTokenLogic),
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Inspect asynchronous operations",
}

var opsStatusCmd = &cobra.Command{
	Use:   "status <operation-id|operation-link>",
	Short: "Show the status of an asynchronous operation",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(opsStatusLogic),
}

func diskInfoLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	disk, err := a.SDK.GetDiskInfo(app.Context(cmd), opts)
	if err != nil {
		return fmt.Errorf("getting disk information: %w", err)
	}
	ui.DisplayDisk(disk)
	return nil
}

func diskCheckTokenLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	token := ""
	if len(args) > 0 {
		token = args[0]
	}
	valid, err := a.SDK.CheckToken(app.Context(cmd), token, opts)
	if err != nil {
		return fmt.Errorf("checking token: %w", err)
	}
	if valid {
		ui.Success("Token is valid.")
	} else {
		fmt.Println("Token is not valid.")
	}
	return nil
}

func opsStatusLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	status, err := a.SDK.GetOperationStatus(app.Context(cmd), args[0], opts)
	if err != nil {
		return fmt.Errorf("getting operation status: %w", err)
	}
	ui.DisplayOperationStatus(args[0], status)
	return nil
}

func init() {
	rootCmd.AddCommand(diskCmd)
	diskCmd.AddCommand(diskInfoCmd)
	diskCmd.AddCommand(diskCheckTokenCmd)

	rootCmd.AddCommand(opsCmd)
	opsCmd.AddCommand(opsStatusCmd)
}
