// Package cmd (resources_root.go) registers the 'resources' command group,
// which works on files and folders of the user's Disk.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/ui"
)

var ResourcesCmd = &cobra.Command{
	Use:     "resources",
	Aliases: []string{"res"},
	Short:   "Manage files and folders",
	Long:    "Provides commands to list, stat, upload, download and manage files and folders on Yandex.Disk.",
}

func InitResourcesCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(ResourcesCmd)

	ResourcesCmd.AddCommand(resLsCmd)
	ResourcesCmd.AddCommand(resStatCmd)
	ResourcesCmd.AddCommand(resFilesCmd)
	ResourcesCmd.AddCommand(resRecentCmd)
	ResourcesCmd.AddCommand(resMkdirCmd)
	ResourcesCmd.AddCommand(resRmCmd)
	ResourcesCmd.AddCommand(resCpCmd)
	ResourcesCmd.AddCommand(resMvCmd)
	ResourcesCmd.AddCommand(resRenameCmd)
	ResourcesCmd.AddCommand(resPatchCmd)
	ResourcesCmd.AddCommand(resUploadCmd)
	ResourcesCmd.AddCommand(resDownloadCmd)
	ResourcesCmd.AddCommand(resUploadURLCmd)

	for c, adders := range resourceFlags {
		for _, add := range adders {
			add(c)
		}
	}
}

// resourceFlags lists the flag sets of each subcommand.
var resourceFlags = map[*cobra.Command][]func(*cobra.Command){
	resLsCmd:        {ui.AddPagingFlags},
	resFilesCmd:     {ui.AddPagingFlags, addMediaTypeFlag},
	resRecentCmd:    {addRecentFlags, addMediaTypeFlag},
	resRmCmd:        {addRmFlags, addWaitFlag},
	resCpCmd:        {addWaitFlag, addOverwriteFlag},
	resMvCmd:        {addWaitFlag, addOverwriteFlag},
	resRenameCmd:    {addWaitFlag, addOverwriteFlag},
	resPatchCmd:     {addPatchFlags},
	resUploadCmd:    {addOverwriteFlag},
	resDownloadCmd:  {addOverwriteFlag},
	resUploadURLCmd: {addWaitFlag},
}

func addMediaTypeFlag(c *cobra.Command) {
	c.Flags().StringSlice("media-type", nil, "Only list files of these media types (e.g. image,video)")
}

func addRecentFlags(c *cobra.Command) {
	c.Flags().Int("limit", 20, "Number of files to show")
}

func addRmFlags(c *cobra.Command) {
	c.Flags().Bool("permanently", false, "Delete without moving to the trash")
	c.Flags().String("md5", "", "Only delete a file with this MD5 checksum")
}

func addWaitFlag(c *cobra.Command) {
	c.Flags().Bool("wait", false, "Wait for an asynchronous operation to finish")
}

func addOverwriteFlag(c *cobra.Command) {
	c.Flags().Bool("overwrite", false, "Replace an existing destination")
}

func addPatchFlags(c *cobra.Command) {
	c.Flags().StringToString("set", nil, "Custom properties to set (key=value)")
	c.Flags().StringSlice("unset", nil, "Custom properties to remove")
}
