// Package cmd (public.go) defines the 'public' commands for publishing
// resources and working with public keys and links.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/ui"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

var publicCmd = &cobra.Command{
	Use:   "public",
	Short: "Publish resources and access public ones",
}

var publicPublishCmd = &cobra.Command{
	Use:   "publish <path>",
	Short: "Make a resource public",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(publicPublishLogic),
}

var publicUnpublishCmd = &cobra.Command{
	Use:   "unpublish <path>",
	Short: "Revoke public access to a resource",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(publicUnpublishLogic),
}

var publicStatCmd = &cobra.Command{
	Use:   "stat <public-key|public-url>",
	Short: "Show metadata of a public resource",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(publicStatLogic),
}

var publicLsCmd = &cobra.Command{
	Use:   "ls <public-key|public-url>",
	Short: "List a public folder",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(publicLsLogic),
}

var publicDownloadCmd = &cobra.Command{
	Use:   "download <public-key|public-url> [local-path]",
	Short: "Download a public resource",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  app.WithApp(publicDownloadLogic),
}

var publicSaveCmd = &cobra.Command{
	Use:   "save <public-key|public-url>",
	Short: "Save a public resource to your Disk",
	Args:  cobra.ExactArgs(1),
	RunE:  app.WithApp(publicSaveLogic),
}

var publicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the resources you have published",
	Args:  cobra.NoArgs,
	RunE:  app.WithApp(publicListLogic),
}

func publicPublishLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	if _, err := a.SDK.Publish(app.Context(cmd), args[0], opts); err != nil {
		return fmt.Errorf("publishing %s: %w", args[0], err)
	}
	res, err := a.SDK.GetMeta(app.Context(cmd), args[0], opts)
	if err != nil {
		return fmt.Errorf("reading public link of %s: %w", args[0], err)
	}
	ui.Success(fmt.Sprintf("Published %s: %s", args[0], res.PublicURL))
	return nil
}

func publicUnpublishLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	if _, err := a.SDK.Unpublish(app.Context(cmd), args[0], opts); err != nil {
		return fmt.Errorf("unpublishing %s: %w", args[0], err)
	}
	ui.Success(fmt.Sprintf("%s is no longer public.", args[0]))
	return nil
}

func publicStatLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := publicOptions(cmd)
	if err != nil {
		return err
	}
	res, err := a.SDK.GetPublicMeta(app.Context(cmd), args[0], opts)
	if err != nil {
		return fmt.Errorf("getting public resource: %w", err)
	}
	ui.DisplayResource(res)
	return nil
}

func publicLsLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := publicOptions(cmd)
	if err != nil {
		return err
	}
	items, err := a.SDK.ListPublic(app.Context(cmd), args[0], opts)
	if err != nil {
		return fmt.Errorf("listing public folder: %w", err)
	}
	ui.DisplayResources(items, "Items in public folder:")
	return nil
}

func publicDownloadLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := publicOptions(cmd)
	if err != nil {
		return err
	}
	opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	ctx := app.Context(cmd)

	localPath := ""
	if len(args) > 1 {
		localPath = args[1]
	}
	res, err := a.SDK.GetPublicMeta(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("getting public resource: %w", err)
	}
	if localPath == "" {
		localPath = res.Name
	}
	if info, statErr := os.Stat(localPath); statErr == nil && info.IsDir() {
		localPath = filepath.Join(localPath, res.Name)
	}

	bar := ui.NewProgressBar(res.Size, "Downloading "+res.Name)
	opts.Progress = bar
	a.ApplyTransferTimeout(opts)
	if err := a.SDK.DownloadPublic(ctx, args[0], localPath, opts); err != nil {
		return fmt.Errorf("downloading public resource: %w", err)
	}
	_ = bar.Finish()
	ui.Success(fmt.Sprintf("Downloaded to %s", localPath))
	return nil
}

func publicSaveLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := publicOptions(cmd)
	if err != nil {
		return err
	}
	opts.SavePath, _ = cmd.Flags().GetString("save-path")
	opts.SaveName, _ = cmd.Flags().GetString("name")

	link, err := a.SDK.SaveToDisk(app.Context(cmd), args[0], opts)
	if err != nil {
		return fmt.Errorf("saving public resource: %w", err)
	}
	ui.DisplayLink("Save to Disk", link)
	return nil
}

func publicListLogic(a *app.App, cmd *cobra.Command, args []string) error {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return err
	}
	if t, _ := cmd.Flags().GetString("type"); t != "" {
		opts.MediaType = []string{t}
	}
	list, err := a.SDK.GetPublicResources(app.Context(cmd), opts)
	if err != nil {
		return fmt.Errorf("listing published resources: %w", err)
	}
	ui.DisplayPublicResources(list)
	return nil
}

// publicOptions adds the --path selector of resources inside a public
// folder.
func publicOptions(cmd *cobra.Command) (*yadisk.Options, error) {
	opts, err := ui.ParseOptions(cmd)
	if err != nil {
		return nil, err
	}
	opts.PublicPath, _ = cmd.Flags().GetString("path")
	return opts, nil
}

func init() {
	rootCmd.AddCommand(publicCmd)
	publicCmd.AddCommand(publicPublishCmd, publicUnpublishCmd, publicStatCmd,
		publicLsCmd, publicDownloadCmd, publicSaveCmd, publicListCmd)

	for _, c := range []*cobra.Command{publicStatCmd, publicLsCmd, publicDownloadCmd, publicSaveCmd} {
		c.Flags().String("path", "", "Resource inside the public folder")
	}
	ui.AddPagingFlags(publicLsCmd)
	ui.AddPagingFlags(publicListCmd)
	publicListCmd.Flags().String("type", "", "Only list resources of this type (file or dir)")
	publicDownloadCmd.Flags().Bool("overwrite", false, "Replace an existing local file")
	publicSaveCmd.Flags().String("save-path", "", "Folder on your Disk to save into (default Downloads)")
	publicSaveCmd.Flags().String("name", "", "Name of the saved copy")
}
