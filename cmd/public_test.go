package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/yadisk-client/internal/app/apptest"
	"github.com/tonimelisma/yadisk-client/internal/ui"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

const publicKey = "https://disk.yandex.ru/d/abc123"

func publicPathFlag(c *cobra.Command) {
	c.Flags().String("path", "", "")
}

func TestPublicPublishLogic(t *testing.T) {
	published := false
	mock := &apptest.MockSDK{
		PublishFunc: func(path string, _ *yadisk.Options) (yadisk.Link, error) {
			assert.Equal(t, "/report.pdf", path)
			published = true
			return yadisk.Link{}, nil
		},
		GetMetaFunc: func(path string, _ *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{PublicURL: publicKey}, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, publicPublishLogic(apptest.NewTestApp(mock), newFlagCmd(t, nil), []string{"/report.pdf"}))
	})
	assert.True(t, published)
	assert.Contains(t, output, publicKey)
}

func TestPublicUnpublishLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		UnpublishFunc: func(path string, _ *yadisk.Options) (yadisk.Link, error) {
			return yadisk.Link{}, &yadisk.Error{Kind: yadisk.KindPathNotFound, StatusCode: 404}
		},
	}
	err := publicUnpublishLogic(apptest.NewTestApp(mock), newFlagCmd(t, nil), []string{"/missing"})
	assert.ErrorIs(t, err, yadisk.ErrNotFound)
}

func TestPublicStatAndLsLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		GetPublicMetaFunc: func(key string, opts *yadisk.Options) (yadisk.Resource, error) {
			assert.Equal(t, publicKey, key)
			assert.Equal(t, "/inner", opts.PublicPath)
			return yadisk.Resource{Name: "inner", Path: "/inner", Type: yadisk.ResourceTypeDir}, nil
		},
		ListPublicFunc: func(key string, opts *yadisk.Options) ([]yadisk.Resource, error) {
			assert.Equal(t, "/inner", opts.PublicPath)
			return []yadisk.Resource{{Name: "shared.txt", Type: yadisk.ResourceTypeFile}}, nil
		},
	}
	a := apptest.NewTestApp(mock)
	lsFlags := func(c *cobra.Command) {
		publicPathFlag(c)
		ui.AddPagingFlags(c)
	}

	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, publicStatLogic(a, newFlagCmd(t, publicPathFlag, "--path", "/inner"), []string{publicKey}))
		require.NoError(t, publicLsLogic(a, newFlagCmd(t, lsFlags, "--path", "/inner"), []string{publicKey}))
	})
	assert.Contains(t, output, "inner")
	assert.Contains(t, output, "shared.txt")
}

func TestPublicDownloadLogic(t *testing.T) {
	dir := t.TempDir()
	var target string
	mock := &apptest.MockSDK{
		GetPublicMetaFunc: func(string, *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{Name: "shared.txt", Size: 5}, nil
		},
		DownloadPublicFunc: func(key, localPath string, opts *yadisk.Options) error {
			assert.NotNil(t, opts.Progress)
			target = localPath
			return nil
		},
	}
	flags := func(c *cobra.Command) {
		publicPathFlag(c)
		c.Flags().Bool("overwrite", false, "")
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, publicDownloadLogic(apptest.NewTestApp(mock), newFlagCmd(t, flags), []string{publicKey, dir}))
	})
	assert.Equal(t, filepath.Join(dir, "shared.txt"), target)
	assert.Contains(t, output, "Downloaded to")
}

func TestPublicSaveLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		SaveToDiskFunc: func(key string, opts *yadisk.Options) (yadisk.Link, error) {
			assert.Equal(t, "/Saved", opts.SavePath)
			assert.Equal(t, "copy.txt", opts.SaveName)
			return yadisk.Link{Href: "https://cloud-api.yandex.net/v1/disk/operations/op-5"}, nil
		},
	}
	flags := func(c *cobra.Command) {
		publicPathFlag(c)
		c.Flags().String("save-path", "", "")
		c.Flags().String("name", "", "")
	}
	output := apptest.CaptureOutput(t, func() {
		err := publicSaveLogic(apptest.NewTestApp(mock), newFlagCmd(t, flags, "--save-path", "/Saved", "--name", "copy.txt"), []string{publicKey})
		require.NoError(t, err)
	})
	assert.Contains(t, output, "op-5")
}

func TestPublicListLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		GetPublicResourcesFunc: func(opts *yadisk.Options) (yadisk.PublicResourcesList, error) {
			assert.Equal(t, []string{"file"}, opts.MediaType)
			return yadisk.PublicResourcesList{Items: []yadisk.Resource{
				{Path: "disk:/report.pdf", Type: "file", PublicURL: publicKey},
			}}, nil
		},
	}
	flags := func(c *cobra.Command) {
		ui.AddPagingFlags(c)
		c.Flags().String("type", "", "")
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, publicListLogic(apptest.NewTestApp(mock), newFlagCmd(t, flags, "--type", "file"), nil))
	})
	assert.Contains(t, output, "disk:/report.pdf")
	assert.Contains(t, output, publicKey)
}
