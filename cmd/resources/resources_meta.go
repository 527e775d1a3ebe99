package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/ui"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

var resLsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a folder",
	Long:  "Lists the contents of a folder, following pages until the end. Defaults to the Disk root.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  app.WithApp(resLsLogic),
}

var resStatCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show metadata of a file or folder",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(resStatLogic),
}

var resFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List every file on Disk",
	Long:  "Lists all files on Disk as a flat list, regardless of folder.",
	Args:  cobra.NoArgs,
	RunE:  app.WithApp(resFilesLogic),
}

var resRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently uploaded files",
	Args:  cobra.NoArgs,
	RunE:  app.WithApp(resRecentLogic),
}

func resLsLogic(a *app.App, cmd *cobra.Command, args []string) error {
	path := "/"
	if len(args) > 0 {
		path = args[0]
	}
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}

	items, err := a.SDK.ListDir(app.Context(cmd), path, opts)
	if err != nil {
		if errors.Is(err, yadisk.ErrWrongResourceType) {
			return fmt.Errorf("%s is not a folder, use 'resources stat' instead", path)
		}
		return fmt.Errorf("listing %s: %w", path, err)
	}
	ui.DisplayResources(items, fmt.Sprintf("Items in %s:", path))
	return nil
}

func resStatLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.Limit = yadisk.Ptr(0)

	res, err := a.SDK.GetMeta(app.Context(cmd), args[0], opts)
	if err != nil {
		return fmt.Errorf("getting metadata of %s: %w", args[0], err)
	}
	ui.DisplayResource(res)
	return nil
}

func resFilesLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.MediaType, _ = cmd.Flags().GetStringSlice("media-type")

	items, err := a.SDK.ListFiles(app.Context(cmd), opts)
	if err != nil {
		return fmt.Errorf("listing files: %w", err)
	}
	ui.DisplayFiles(items)
	return nil
}

func resRecentLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	opts.Limit = yadisk.Ptr(limit)
	opts.MediaType, _ = cmd.Flags().GetStringSlice("media-type")

	items, err := a.SDK.GetLastUploaded(app.Context(cmd), opts)
	if err != nil {
		return fmt.Errorf("listing recent uploads: %w", err)
	}
	ui.DisplayFiles(items)
	return nil
}
