//go:build e2e

package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

func TestDiskInfo(t *testing.T) {
	h := NewE2ETestHelper(t)
	disk, err := h.SDK.GetDiskInfo(context.Background(), nil)
	require.NoError(t, err)
	assert.Positive(t, disk.TotalSpace)
	assert.NotEmpty(t, disk.User.Login)
}

func TestFileOperations(t *testing.T) {
	h := NewE2ETestHelper(t)
	ctx := context.Background()

	t.Run("UploadAndDownload", func(t *testing.T) {
		local, content := h.CreateRandomFile(t, "upload.bin", 256*1024)
		remote := h.Path("upload.bin")

		require.NoError(t, h.SDK.Upload(ctx, local, remote, nil))

		res, err := h.SDK.GetMeta(ctx, remote, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), res.Size)
		assert.True(t, res.IsFile())

		target := filepath.Join(t.TempDir(), "download.bin")
		require.NoError(t, h.SDK.Download(ctx, remote, target, nil))
		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("UploadExistingWithoutOverwrite", func(t *testing.T) {
		local, _ := h.CreateRandomFile(t, "dup.bin", 16)
		remote := h.Path("dup.bin")
		require.NoError(t, h.SDK.Upload(ctx, local, remote, nil))

		err := h.SDK.Upload(ctx, local, remote, nil)
		assert.ErrorIs(t, err, yadisk.ErrPathExists)
	})

	t.Run("ListFolderAcrossPages", func(t *testing.T) {
		dir := h.Path("paged")
		_, err := h.SDK.Mkdir(ctx, dir, nil)
		require.NoError(t, err)
		for _, name := range []string{"a", "b", "c"} {
			_, err := h.SDK.Mkdir(ctx, dir+"/"+name, nil)
			require.NoError(t, err)
		}

		items, err := h.SDK.ListDir(ctx, dir, &yadisk.Options{Limit: yadisk.Ptr(1)})
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("CopyMoveRename", func(t *testing.T) {
		local, _ := h.CreateRandomFile(t, "orig.txt", 64)
		orig := h.Path("orig.txt")
		require.NoError(t, h.SDK.Upload(ctx, local, orig, nil))

		_, err := h.SDK.Copy(ctx, orig, h.Path("copy.txt"), nil)
		require.NoError(t, err)
		_, err = h.SDK.Move(ctx, h.Path("copy.txt"), h.Path("moved.txt"), nil)
		require.NoError(t, err)
		_, err = h.SDK.Rename(ctx, h.Path("moved.txt"), "renamed.txt", nil)
		require.NoError(t, err)

		ok, err := h.Client.Exists(ctx, h.Path("renamed.txt"), nil)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = h.Client.Exists(ctx, h.Path("copy.txt"), nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("WrongResourceType", func(t *testing.T) {
		local, _ := h.CreateRandomFile(t, "file.txt", 8)
		remote := h.Path("file.txt")
		require.NoError(t, h.SDK.Upload(ctx, local, remote, nil))

		_, err := h.SDK.ListDir(ctx, remote, nil)
		assert.ErrorIs(t, err, yadisk.ErrWrongResourceType)
	})

	t.Run("MissingPath", func(t *testing.T) {
		_, err := h.SDK.GetMeta(ctx, h.Path("nope"), nil)
		assert.ErrorIs(t, err, yadisk.ErrPathNotFound)
		assert.ErrorIs(t, err, yadisk.ErrNotFound)
	})
}
