package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/yadisk-client/internal/app/apptest"
	"github.com/tonimelisma/yadisk-client/internal/ui"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

func TestDiskInfoLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		GetDiskInfoFunc: func(opts *yadisk.Options) (yadisk.Disk, error) {
			return yadisk.Disk{
				TotalSpace: 10 * 1024 * 1024 * 1024,
				UsedSpace:  1024 * 1024 * 1024,
				User:       yadisk.User{DisplayName: "Test User", Login: "test.user"},
			}, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, diskInfoLogic(apptest.NewTestApp(mock), newFlagCmd(t, nil), nil))
	})
	assert.Contains(t, output, "Test User (test.user)")
	assert.Contains(t, output, "10.0 GiB")
	assert.Contains(t, output, "9.0 GiB")
}

func TestDiskInfoLogicPassesRequestFlags(t *testing.T) {
	mock := &apptest.MockSDK{
		GetDiskInfoFunc: func(opts *yadisk.Options) (yadisk.Disk, error) {
			require.NotNil(t, opts.Retries)
			assert.Equal(t, 7, *opts.Retries)
			assert.Nil(t, opts.Timeout)
			return yadisk.Disk{}, nil
		},
	}
	apptest.CaptureOutput(t, func() {
		require.NoError(t, diskInfoLogic(apptest.NewTestApp(mock), newFlagCmd(t, nil, "--retries", "7"), nil))
	})
}

func TestDiskCheckTokenLogic(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		valid   bool
		wantTok string
		wantOut string
	}{
		{name: "stored token valid", valid: true, wantOut: "Token is valid."},
		{name: "explicit token invalid", args: []string{"other"}, wantTok: "other", wantOut: "Token is not valid."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &apptest.MockSDK{
				CheckTokenFunc: func(token string, _ *yadisk.Options) (bool, error) {
					assert.Equal(t, tt.wantTok, token)
					return tt.valid, nil
				},
			}
			output := apptest.CaptureOutput(t, func() {
				require.NoError(t, diskCheckTokenLogic(apptest.NewTestApp(mock), newFlagCmd(t, nil), tt.args))
			})
			assert.Contains(t, output, tt.wantOut)
		})
	}
}

func TestOpsStatusLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		GetOperationStatusFunc: func(id string, _ *yadisk.Options) (string, error) {
			assert.Equal(t, "op-1", id)
			return yadisk.OperationInProgress, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, opsStatusLogic(apptest.NewTestApp(mock), newFlagCmd(t, nil), []string{"op-1"}))
	})
	assert.Contains(t, output, "Operation op-1: in-progress")
}

func TestTrashLsLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		ListTrashFunc: func(path string, _ *yadisk.Options) ([]yadisk.Resource, error) {
			assert.Equal(t, "trash:/", path)
			return []yadisk.Resource{{Name: "deleted.txt", Type: yadisk.ResourceTypeFile}}, nil
		},
	}
	output := apptest.CaptureOutput(t, func() {
		require.NoError(t, trashLsLogic(apptest.NewTestApp(mock), newFlagCmd(t, ui.AddPagingFlags), nil))
	})
	assert.Contains(t, output, "deleted.txt")
}

func trashRmFlags(c *cobra.Command) {
	c.Flags().Bool("all", false, "")
	c.Flags().Bool("async", false, "")
}

func TestTrashRmLogic(t *testing.T) {
	t.Run("should refuse to empty the trash without --all", func(t *testing.T) {
		mock := &apptest.MockSDK{
			RemoveTrashFunc: func(string, *yadisk.Options) (*yadisk.Link, error) {
				t.Fatal("must not be called")
				return nil, nil
			},
		}
		err := trashRmLogic(apptest.NewTestApp(mock), newFlagCmd(t, trashRmFlags), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--all")
	})

	t.Run("should empty the trash with --all", func(t *testing.T) {
		mock := &apptest.MockSDK{
			RemoveTrashFunc: func(path string, opts *yadisk.Options) (*yadisk.Link, error) {
				assert.Equal(t, "", path)
				assert.True(t, opts.ForceAsync)
				return &yadisk.Link{Href: "https://cloud-api.yandex.net/v1/disk/operations/op-9"}, nil
			},
		}
		output := apptest.CaptureOutput(t, func() {
			require.NoError(t, trashRmLogic(apptest.NewTestApp(mock), newFlagCmd(t, trashRmFlags, "--all", "--async"), nil))
		})
		assert.Contains(t, output, "op-9")
	})

	t.Run("should remove a single resource", func(t *testing.T) {
		mock := &apptest.MockSDK{
			RemoveTrashFunc: func(path string, _ *yadisk.Options) (*yadisk.Link, error) {
				assert.Equal(t, "trash:/a.txt", path)
				return nil, nil
			},
		}
		output := apptest.CaptureOutput(t, func() {
			require.NoError(t, trashRmLogic(apptest.NewTestApp(mock), newFlagCmd(t, trashRmFlags), []string{"trash:/a.txt"}))
		})
		assert.Contains(t, output, "Removed from trash.")
	})
}

func TestTrashRestoreLogic(t *testing.T) {
	mock := &apptest.MockSDK{
		RestoreTrashFunc: func(path string, opts *yadisk.Options) (yadisk.Link, error) {
			assert.Equal(t, "trash:/a.txt", path)
			assert.Equal(t, "b.txt", opts.SaveName)
			assert.True(t, opts.Overwrite)
			return yadisk.Link{Href: "https://cloud-api.yandex.net/v1/disk/resources?path=disk%3A%2Fb.txt"}, nil
		},
	}
	flags := func(c *cobra.Command) {
		c.Flags().String("name", "", "")
		c.Flags().Bool("overwrite", false, "")
	}
	output := apptest.CaptureOutput(t, func() {
		err := trashRestoreLogic(apptest.NewTestApp(mock), newFlagCmd(t, flags, "--name", "b.txt", "--overwrite"), []string{"trash:/a.txt"})
		require.NoError(t, err)
	})
	assert.Contains(t, output, "Restore completed.")
}
