package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/ui"
)

var resUploadCmd = &cobra.Command{
	Use:   "upload <local-file> [remote-path]",
	Short: "Upload a file",
	Long: `Uploads a local file. When the remote path is omitted or is an existing
folder, the file keeps its name inside it. Failed attempts are retried with a
fresh upload URL.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: app.WithApp(resUploadLogic),
}

var resDownloadCmd = &cobra.Command{
	Use:   "download <remote-path> [local-path]",
	Short: "Download a file",
	Long:  "Downloads a file. When the local path is omitted or is an existing directory, the remote name is used.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  app.WithApp(resDownloadLogic),
}

var resUploadURLCmd = &cobra.Command{
	Use:   "upload-url <source-url> <remote-path>",
	Short: "Have the server download a URL into Disk",
	Args:  cobra.ExactArgs(2),
	RunE:  app.WithApp(resUploadURLLogic),
}

func resUploadLogic(a *app.App, cmd *cobra.Command, args []string) error {
	localPath := args[0]
	remotePath := "/"
	if len(args) > 1 {
		remotePath = args[1]
	}

	info, err := os.Stat(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("local file '%s' does not exist", localPath)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("'%s' is a directory, only files can be uploaded", localPath)
	}

	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	ctx := app.Context(cmd)

	isDir, err := isRemoteDir(ctx, a, remotePath)
	if err != nil {
		return fmt.Errorf("checking destination %s: %w", remotePath, err)
	}
	if isDir {
		remotePath = joinRemotePath(remotePath, filepath.Base(localPath))
	}

	bar := ui.NewProgressBar(info.Size(), "Uploading "+filepath.Base(localPath))
	opts.Progress = bar
	a.ApplyTransferTimeout(opts)
	if err := a.SDK.Upload(ctx, localPath, remotePath, opts); err != nil {
		return fmt.Errorf("uploading %s: %w", localPath, err)
	}
	_ = bar.Finish()
	ui.PrintSuccess("File '%s' uploaded to '%s'.", localPath, remotePath)
	return nil
}

func resDownloadLogic(a *app.App, cmd *cobra.Command, args []string) error {
	remotePath := args[0]
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	ctx := app.Context(cmd)

	res, err := a.SDK.GetMeta(ctx, remotePath, opts)
	if err != nil {
		return fmt.Errorf("getting metadata of %s: %w", remotePath, err)
	}
	if res.IsDir() {
		return fmt.Errorf("'%s' is a folder, only files can be downloaded", remotePath)
	}

	name := res.Name
	if name == "" {
		name = path.Base(remotePath)
	}
	localPath := name
	if len(args) > 1 {
		localPath = args[1]
	}
	if info, statErr := os.Stat(localPath); statErr == nil && info.IsDir() {
		localPath = filepath.Join(localPath, name)
	}

	bar := ui.NewProgressBar(res.Size, "Downloading "+name)
	opts.Progress = bar
	a.ApplyTransferTimeout(opts)
	if err := a.SDK.Download(ctx, remotePath, localPath, opts); err != nil {
		return fmt.Errorf("downloading %s: %w", remotePath, err)
	}
	_ = bar.Finish()
	ui.PrintSuccess("Downloaded '%s' to '%s'.", remotePath, localPath)
	return nil
}

func resUploadURLLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	link, err := a.SDK.UploadURL(app.Context(cmd), args[0], args[1], opts)
	if err != nil {
		return fmt.Errorf("starting upload from %s: %w", args[0], err)
	}
	return finishOperation(a, cmd, "Upload from URL", link)
}
