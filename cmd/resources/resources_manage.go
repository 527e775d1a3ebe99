package cmd

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/ui"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

var resMkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a new folder",
	Long:  "Creates a new, empty folder at the given path. The parent folder must exist.",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(resMkdirLogic),
}

var resRmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file or folder",
	Long:  "Moves a file or folder to the trash, or deletes it for good with --permanently.",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(resRmLogic),
}

var resCpCmd = &cobra.Command{
	Use:   "cp <source> <destination>",
	Short: "Copy a file or folder",
	Long:  "Copies a file or folder. When the destination is an existing folder, the source is copied into it.",
	Args:  cobra.ExactArgs(2),
	RunE:  app.WithApp(resCpLogic),
}

var resMvCmd = &cobra.Command{
	Use:   "mv <source> <destination>",
	Short: "Move a file or folder",
	Long:  "Moves a file or folder. When the destination is an existing folder, the source is moved into it.",
	Args:  cobra.ExactArgs(2),
	RunE:  app.WithApp(resMvLogic),
}

var resRenameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename a file or folder in place",
	Args:  cobra.ExactArgs(2),
	RunE:  app.WithApp(resRenameLogic),
}

var resPatchCmd = &cobra.Command{
	Use:   "patch <path>",
	Short: "Set or remove custom properties",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(resPatchLogic),
}

func resMkdirLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	if _, err := a.SDK.Mkdir(app.Context(cmd), args[0], opts); err != nil {
		return fmt.Errorf("creating folder %s: %w", args[0], err)
	}
	ui.PrintSuccess("Folder '%s' created successfully.", args[0])
	return nil
}

func resRmLogic(a *app.App, cmd *cobra.Command, args []string) error {
	remotePath := args[0]
	if remotePath == "" {
		return fmt.Errorf("remote path cannot be empty")
	}
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.Permanently, _ = cmd.Flags().GetBool("permanently")
	opts.MD5, _ = cmd.Flags().GetString("md5")

	link, err := a.SDK.Remove(app.Context(cmd), remotePath, opts)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", remotePath, err)
	}
	if link != nil {
		return finishOperation(a, cmd, "Deletion", *link)
	}
	if opts.Permanently {
		ui.PrintSuccess("Item '%s' deleted permanently.", remotePath)
	} else {
		ui.PrintSuccess("Item '%s' moved to the trash.", remotePath)
	}
	return nil
}

func resCpLogic(a *app.App, cmd *cobra.Command, args []string) error {
	return relocate(a, cmd, args, "Copy", a.SDK.Copy)
}

func resMvLogic(a *app.App, cmd *cobra.Command, args []string) error {
	return relocate(a, cmd, args, "Move", a.SDK.Move)
}

type relocateFunc func(ctx context.Context, src, dst string, opts *yadisk.Options) (yadisk.Link, error)

// relocate runs a copy or move, resolving a destination folder to a path
// inside it.
func relocate(a *app.App, cmd *cobra.Command, args []string, action string, fn relocateFunc) error {
	src, dst := args[0], args[1]
	if src == "" || dst == "" {
		return fmt.Errorf("source and destination paths cannot be empty")
	}
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")

	ctx := app.Context(cmd)
	isDir, err := isRemoteDir(ctx, a, dst)
	if err != nil {
		return fmt.Errorf("checking destination %s: %w", dst, err)
	}
	if isDir {
		dst = joinRemotePath(dst, path.Base(src))
	}

	link, err := fn(ctx, src, dst, opts)
	if err != nil {
		return fmt.Errorf("%s of %s to %s failed: %w", action, src, dst, err)
	}
	return finishOperation(a, cmd, action, link)
}

func resRenameLogic(a *app.App, cmd *cobra.Command, args []string) error {
	remotePath, newName := args[0], args[1]
	if remotePath == "" || newName == "" {
		return fmt.Errorf("path and new name cannot be empty")
	}
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")

	link, err := a.SDK.Rename(app.Context(cmd), remotePath, newName, opts)
	if err != nil {
		return fmt.Errorf("renaming %s: %w", remotePath, err)
	}
	return finishOperation(a, cmd, "Rename", link)
}

func resPatchLogic(a *app.App, cmd *cobra.Command, args []string) error {
	set, _ := cmd.Flags().GetStringToString("set")
	unset, _ := cmd.Flags().GetStringSlice("unset")
	if len(set) == 0 && len(unset) == 0 {
		return fmt.Errorf("nothing to change, use --set key=value or --unset key")
	}

	props := make(map[string]any, len(set)+len(unset))
	for k, v := range set {
		props[k] = v
	}
	for _, k := range unset {
		props[k] = nil
	}

	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	res, err := a.SDK.Patch(app.Context(cmd), args[0], props, opts)
	if err != nil {
		return fmt.Errorf("updating properties of %s: %w", args[0], err)
	}
	ui.DisplayResource(res)
	return nil
}

// finishOperation reports a link, waiting for it first when --wait is set.
func finishOperation(a *app.App, cmd *cobra.Command, action string, link yadisk.Link) error {
	if wait, _ := cmd.Flags().GetBool("wait"); wait && link.IsOperation() {
		if err := waitForOperation(app.Context(cmd), a, link); err != nil {
			return err
		}
		ui.Success(action + " completed.")
		return nil
	}
	ui.DisplayLink(action, link)
	return nil
}
