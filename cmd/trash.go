// Package cmd (trash.go) defines 'trash ls', 'trash rm' and 'trash restore'.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/ui"
)

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Manage the trash",
}

var trashLsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List the trash or a trashed folder",
	Args:  cobra.MaximumNArgs(1),
	RunE:  app.WithApp(trashLsLogic),
}

var trashRmCmd = &cobra.Command{
	Use:   "rm [path]",
	Short: "Delete a trashed resource for good",
	Long:  "Deletes a resource from the trash. Without a path the whole trash is emptied, which requires --all.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  app.WithApp(trashRmLogic),
}

var trashRestoreCmd = &cobra.Command{
	Use:   "restore <path>",
	Short: "Restore a trashed resource",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(trashRestoreLogic),
}

func trashLsLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	path := "trash:/"
	if len(args) > 0 {
		path = args[0]
	}
	items, err := a.SDK.ListTrash(app.Context(cmd), path, opts)
	if err != nil {
		return fmt.Errorf("listing trash: %w", err)
	}
	ui.DisplayResources(items, fmt.Sprintf("Items in %s:", path))
	return nil
}

func trashRmLogic(a *app.App, cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if all, _ := cmd.Flags().GetBool("all"); path == "" && !all {
		return fmt.Errorf("refusing to empty the whole trash without --all")
	}
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.ForceAsync, _ = cmd.Flags().GetBool("async")

	link, err := a.SDK.RemoveTrash(app.Context(cmd), path, opts)
	if err != nil {
		return fmt.Errorf("removing from trash: %w", err)
	}
	if link != nil {
		ui.DisplayLink("Removal", *link)
		return nil
	}
	ui.Success("Removed from trash.")
	return nil
}

func trashRestoreLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.SaveName, _ = cmd.Flags().GetString("name")
	opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")

	link, err := a.SDK.RestoreTrash(app.Context(cmd), args[0], opts)
	if err != nil {
		return fmt.Errorf("restoring %s: %w", args[0], err)
	}
	ui.DisplayLink("Restore", link)
	return nil
}

func init() {
	rootCmd.AddCommand(trashCmd)
	trashCmd.AddCommand(trashLsCmd)
	trashCmd.AddCommand(trashRmCmd)
	trashCmd.AddCommand(trashRestoreCmd)

	ui.AddPagingFlags(trashLsCmd)
	trashRmCmd.Flags().Bool("all", false, "Empty the whole trash when no path is given")
	trashRmCmd.Flags().Bool("async", false, "Force the server to run the removal asynchronously")
	trashRestoreCmd.Flags().String("name", "", "Restore under a different name")
	trashRestoreCmd.Flags().Bool("overwrite", false, "Replace an existing resource at the original location")
}
