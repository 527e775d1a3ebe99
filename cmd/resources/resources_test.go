package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/app/apptest"
	"github.com/tonimelisma/yadisk-client/internal/config"
	"github.com/tonimelisma/yadisk-client/internal/ui"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

const opLink = "https://cloud-api.yandex.net/v1/disk/operations/op-7"

// newCmd returns a fresh command with the flags of template, parsed from
// flagArgs.
func newCmd(t *testing.T, template *cobra.Command, flagArgs ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: template.Use}
	for _, add := range resourceFlags[template] {
		add(cmd)
	}
	ui.AddRequestFlags(cmd)
	require.NoError(t, cmd.ParseFlags(flagArgs))
	return cmd
}

func notFound() error {
	return &yadisk.Error{Kind: yadisk.KindPathNotFound, StatusCode: 404}
}

func TestJoinRemotePath(t *testing.T) {
	tests := []struct{ dir, name, want string }{
		{"/Documents", "a.txt", "/Documents/a.txt"},
		{"/Documents/", "/a.txt", "/Documents/a.txt"},
		{"/", "a.txt", "/a.txt"},
		{"", "a.txt", "/a.txt"},
		{"disk:/", "a.txt", "disk:/a.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, joinRemotePath(tt.dir, tt.name))
	}
}

func TestResLsLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		ListDirFunc: func(path string, opts *yadisk.Options) ([]yadisk.Resource, error) {
			assert.Equal(t, "/Photos", path)
			require.NotNil(t, opts.Limit)
			assert.Equal(t, 2, *opts.Limit)
			return []yadisk.Resource{{Name: "cat.jpg", Type: "file", Size: 10}}, nil
		},
	}
	a := apptest.NewTestApp(mock)
	cmd := newCmd(t, resLsCmd, "--limit", "2")

	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, resLsLogic(a, cmd, []string{"/Photos"}))
	})
	assert.Contains(t, output, "cat.jpg")
}

func TestResLsLogicOnFile(t *testing.T) {
	mock := &apptest.MockSDK{
		ListDirFunc: func(string, *yadisk.Options) ([]yadisk.Resource, error) {
			return nil, yadisk.ErrWrongResourceType
		},
	}
	err := resLsLogic(apptest.NewTestApp(mock), newCmd(t, resLsCmd), []string{"/a.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a folder")
}

func TestResStatLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		GetMetaFunc: func(path string, opts *yadisk.Options) (yadisk.Resource, error) {
			assert.Equal(t, "/a.txt", path)
			assert.Equal(t, 0, *opts.Limit)
			return yadisk.Resource{Name: "a.txt", Path: "disk:/a.txt", Type: "file"}, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, resStatLogic(apptest.NewTestApp(mock), newCmd(t, resStatCmd), []string{"/a.txt"}))
	})
	assert.Contains(t, output, "disk:/a.txt")
}

func TestResFilesAndRecentLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		ListFilesFunc: func(opts *yadisk.Options) ([]yadisk.Resource, error) {
			assert.Equal(t, []string{"image"}, opts.MediaType)
			return []yadisk.Resource{{Path: "disk:/x.png"}}, nil
		},
		GetLastUploadedFunc: func(opts *yadisk.Options) ([]yadisk.Resource, error) {
			assert.Equal(t, 20, *opts.Limit)
			return []yadisk.Resource{{Path: "disk:/new.txt"}}, nil
		},
	}
	a := apptest.NewTestApp(mock)

	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, resFilesLogic(a, newCmd(t, resFilesCmd, "--media-type", "image"), nil))
		require.NoError(t, resRecentLogic(a, newCmd(t, resRecentCmd), nil))
	})
	assert.Contains(t, output, "disk:/x.png")
	assert.Contains(t, output, "disk:/new.txt")
}

func TestResMkdirLogic(t *testing.T) {
	var got string
	mock := &apptest.MockSDK{
		MkdirFunc: func(path string, _ *yadisk.Options) (yadisk.Link, error) {
			got = path
			return yadisk.Link{}, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, resMkdirLogic(apptest.NewTestApp(mock), newCmd(t, resMkdirCmd), []string{"/new"}))
	})
	assert.Equal(t, "/new", got)
	assert.Contains(t, output, "created successfully")
}

func TestResRmLogic(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		link    *yadisk.Link
		wantOut string
	}{
		{name: "to trash", wantOut: "moved to the trash"},
		{name: "permanently", flags: []string{"--permanently"}, wantOut: "deleted permanently"},
		{name: "async", link: &yadisk.Link{Href: opLink}, wantOut: "asynchronous operation op-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &apptest.MockSDK{
				RemoveFunc: func(path string, opts *yadisk.Options) (*yadisk.Link, error) {
					assert.Equal(t, "/old.txt", path)
					return tt.link, nil
				},
			}
			output := apptest.CaptureOutput(t, func() {
				require.NoError(t, resRmLogic(apptest.NewTestApp(mock), newCmd(t, resRmCmd, tt.flags...), []string{"/old.txt"}))
			})
			assert.Contains(t, output, tt.wantOut)
		})
	}
}

func TestResCpLogicIntoFolder(t *testing.T) {
	mock := &apptest.MockSDK{
		GetMetaFunc: func(path string, opts *yadisk.Options) (yadisk.Resource, error) {
			assert.Equal(t, "/Backup", path)
			return yadisk.Resource{Type: yadisk.ResourceTypeDir}, nil
		},
		CopyFunc: func(src, dst string, opts *yadisk.Options) (yadisk.Link, error) {
			assert.Equal(t, "/docs/a.txt", src)
			assert.Equal(t, "/Backup/a.txt", dst)
			assert.True(t, opts.Overwrite)
			return yadisk.Link{Href: "https://cloud-api.yandex.net/v1/disk/resources?path=disk%3A%2FBackup%2Fa.txt"}, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		err := resCpLogic(apptest.NewTestApp(mock), newCmd(t, resCpCmd, "--overwrite"), []string{"/docs/a.txt", "/Backup"})
		require.NoError(t, err)
	})
	assert.Contains(t, output, "Copy completed.")
}

func TestResMvLogicToNewPath(t *testing.T) {
	mock := &apptest.MockSDK{
		GetMetaFunc: func(string, *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{}, notFound()
		},
		MoveFunc: func(src, dst string, _ *yadisk.Options) (yadisk.Link, error) {
			assert.Equal(t, "/b.txt", dst)
			return yadisk.Link{}, nil
		},
	}
	apptest.CaptureOutput(t, func() {
		require.NoError(t, resMvLogic(apptest.NewTestApp(mock), newCmd(t, resMvCmd), []string{"/a.txt", "/b.txt"}))
	})
}

func TestResMvLogicDestinationCheckFails(t *testing.T) {
	mock := &apptest.MockSDK{
		GetMetaFunc: func(string, *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{}, yadisk.ErrUnauthorized
		},
	}
	err := resMvLogic(apptest.NewTestApp(mock), newCmd(t, resMvCmd), []string{"/a.txt", "/b.txt"})
	assert.ErrorIs(t, err, yadisk.ErrUnauthorized)
}

func TestResCpLogicWaitsForOperation(t *testing.T) {
	old := operationPollInterval
	operationPollInterval = time.Millisecond
	defer func() { operationPollInterval = old }()

	polls := 0
	mock := &apptest.MockSDK{
		GetMetaFunc: func(string, *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{}, notFound()
		},
		CopyFunc: func(string, string, *yadisk.Options) (yadisk.Link, error) {
			return yadisk.Link{Href: opLink}, nil
		},
		GetOperationStatusFunc: func(id string, _ *yadisk.Options) (string, error) {
			assert.Equal(t, "op-7", id)
			polls++
			if polls < 3 {
				return yadisk.OperationInProgress, nil
			}
			return yadisk.OperationSuccess, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, resCpLogic(apptest.NewTestApp(mock), newCmd(t, resCpCmd, "--wait"), []string{"/a", "/b"}))
	})
	assert.Equal(t, 3, polls)
	assert.Contains(t, output, "Copy completed.")
}

func TestWaitForOperationFailure(t *testing.T) {
	mock := &apptest.MockSDK{
		GetOperationStatusFunc: func(string, *yadisk.Options) (string, error) {
			return yadisk.OperationFailed, nil
		},
	}
	var err error
	apptest.CaptureOutput(t, func() {
		err = waitForOperation(context.Background(), apptest.NewTestApp(mock), yadisk.Link{Href: opLink})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op-7 failed")
}

func TestWaitForOperationStatusError(t *testing.T) {
	calls := 0
	mock := &apptest.MockSDK{
		GetOperationStatusFunc: func(string, *yadisk.Options) (string, error) {
			calls++
			return "", yadisk.ErrOperationNotFound
		},
	}
	var err error
	apptest.CaptureOutput(t, func() {
		err = waitForOperation(context.Background(), apptest.NewTestApp(mock), yadisk.Link{Href: opLink})
	})
	assert.ErrorIs(t, err, yadisk.ErrOperationNotFound)
	assert.Equal(t, 1, calls)
}

func TestResRenameLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		RenameFunc: func(path, newName string, _ *yadisk.Options) (yadisk.Link, error) {
			assert.Equal(t, "/a.txt", path)
			assert.Equal(t, "b.txt", newName)
			return yadisk.Link{}, nil
		},
	}
	apptest.CaptureOutput(t, func() {
		require.NoError(t, resRenameLogic(apptest.NewTestApp(mock), newCmd(t, resRenameCmd), []string{"/a.txt", "b.txt"}))
	})
}

func TestResPatchLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		PatchFunc: func(path string, props map[string]any, _ *yadisk.Options) (yadisk.Resource, error) {
			assert.Equal(t, map[string]any{"color": "red", "old": nil}, props)
			return yadisk.Resource{Name: "a.txt", CustomProperties: map[string]any{"color": "red"}}, nil
		},
	}
	a := apptest.NewTestApp(mock)

	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, resPatchLogic(a, newCmd(t, resPatchCmd, "--set", "color=red", "--unset", "old"), []string{"/a.txt"}))
	})
	assert.Contains(t, output, "color: red")

	err := resPatchLogic(a, newCmd(t, resPatchCmd), []string{"/a.txt"})
	assert.Error(t, err)
}

func TestResUploadLogic(t *testing.T) {
	local := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(local, []byte("pdf-bytes"), 0o600))

	var uploadedTo string
	mock := &apptest.MockSDK{
		GetMetaFunc: func(path string, _ *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{Type: yadisk.ResourceTypeDir}, nil
		},
		UploadFunc: func(localPath, remotePath string, opts *yadisk.Options) error {
			assert.Equal(t, local, localPath)
			assert.NotNil(t, opts.Progress)
			uploadedTo = remotePath
			return nil
		},
	}
	apptest.CaptureOutput(t, func() {
		require.NoError(t, resUploadLogic(apptest.NewTestApp(mock), newCmd(t, resUploadCmd), []string{local, "/Documents"}))
	})
	assert.Equal(t, "/Documents/report.pdf", uploadedTo)
}

func TestTransfersUseUploadTimeout(t *testing.T) {
	local := filepath.Join(t.TempDir(), "big.iso")
	require.NoError(t, os.WriteFile(local, []byte("iso"), 0o600))

	tests := []struct {
		name  string
		flags []string
		want  time.Duration
	}{
		{name: "configured upload timeout", want: 90 * time.Second},
		{name: "timeout flag wins", flags: []string{"--timeout", "5m"}, want: 5 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var uploadTimeout, downloadTimeout *time.Duration
			mock := &apptest.MockSDK{
				GetMetaFunc: func(path string, _ *yadisk.Options) (yadisk.Resource, error) {
					if path == "/big.iso" {
						return yadisk.Resource{Name: "big.iso", Type: yadisk.ResourceTypeFile, Size: 3}, nil
					}
					return yadisk.Resource{Type: yadisk.ResourceTypeDir}, nil
				},
				UploadFunc: func(_, _ string, opts *yadisk.Options) error {
					uploadTimeout = opts.Timeout
					return nil
				},
				DownloadFunc: func(_, _ string, opts *yadisk.Options) error {
					downloadTimeout = opts.Timeout
					return nil
				},
			}
			cfg := &config.Configuration{HTTP: config.DefaultHTTPConfig()}
			cfg.HTTP.UploadTimeout = 90 * time.Second
			a := &app.App{Config: cfg, SDK: mock}

			apptest.CaptureOutput(t, func() {
				require.NoError(t, resUploadLogic(a, newCmd(t, resUploadCmd, tt.flags...), []string{local, "/"}))
				dlArgs := append([]string{"--overwrite"}, tt.flags...)
				require.NoError(t, resDownloadLogic(a, newCmd(t, resDownloadCmd, dlArgs...), []string{"/big.iso", t.TempDir()}))
			})
			require.NotNil(t, uploadTimeout)
			require.NotNil(t, downloadTimeout)
			assert.Equal(t, tt.want, *uploadTimeout)
			assert.Equal(t, tt.want, *downloadTimeout)
		})
	}
}

func TestResUploadLogicMissingFile(t *testing.T) {
	err := resUploadLogic(apptest.NewTestApp(&apptest.MockSDK{}), newCmd(t, resUploadCmd), []string{"/does/not/exist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestResUploadLogicPropagatesErrors(t *testing.T) {
	local := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(local, []byte("x"), 0o600))
	mock := &apptest.MockSDK{
		GetMetaFunc: func(string, *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{}, notFound()
		},
		UploadFunc: func(string, string, *yadisk.Options) error {
			return yadisk.ErrInsufficientStorage
		},
	}
	var err error
	apptest.CaptureOutput(t, func() {
		err = resUploadLogic(apptest.NewTestApp(mock), newCmd(t, resUploadCmd), []string{local, "/a.txt"})
	})
	assert.ErrorIs(t, err, yadisk.ErrInsufficientStorage)
}

func TestResDownloadLogic(t *testing.T) {
	dir := t.TempDir()
	var target string
	mock := &apptest.MockSDK{
		GetMetaFunc: func(path string, _ *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{Name: "photo.jpg", Type: yadisk.ResourceTypeFile, Size: 42}, nil
		},
		DownloadFunc: func(remotePath, localPath string, opts *yadisk.Options) error {
			assert.Equal(t, "/Photos/photo.jpg", remotePath)
			assert.True(t, opts.Overwrite)
			target = localPath
			return nil
		},
	}
	apptest.CaptureOutput(t, func() {
		err := resDownloadLogic(apptest.NewTestApp(mock), newCmd(t, resDownloadCmd, "--overwrite"), []string{"/Photos/photo.jpg", dir})
		require.NoError(t, err)
	})
	assert.Equal(t, filepath.Join(dir, "photo.jpg"), target)
}

func TestResDownloadLogicRejectsFolder(t *testing.T) {
	mock := &apptest.MockSDK{
		GetMetaFunc: func(string, *yadisk.Options) (yadisk.Resource, error) {
			return yadisk.Resource{Name: "Photos", Type: yadisk.ResourceTypeDir}, nil
		},
		DownloadFunc: func(string, string, *yadisk.Options) error {
			return errors.New("must not be called")
		},
	}
	err := resDownloadLogic(apptest.NewTestApp(mock), newCmd(t, resDownloadCmd), []string{"/Photos"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a folder")
}

func TestResUploadURLLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		UploadURLFunc: func(sourceURL, path string, _ *yadisk.Options) (yadisk.Link, error) {
			assert.Equal(t, "https://example.com/file.zip", sourceURL)
			assert.Equal(t, "/file.zip", path)
			return yadisk.Link{Href: opLink}, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		err := resUploadURLLogic(apptest.NewTestApp(mock), newCmd(t, resUploadURLCmd), []string{"https://example.com/file.zip", "/file.zip"})
		require.NoError(t, err)
	})
	assert.Contains(t, output, "op-7")
}
