//go:build e2e

// Package e2e runs the client against the live Yandex.Disk API. It needs a
// token in YADISK_E2E_TOKEN:
//
//	YADISK_E2E_TOKEN=... go test -tags=e2e -v ./e2e/...
package e2e

import (
	"context"
	"crypto/rand"
	"errors"
	"os"
	"path"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

const (
	tokenEnv    = "YADISK_E2E_TOKEN"
	testRootDir = "disk:/E2E-Tests"
)

// E2ETestHelper owns a per-test remote folder that is removed on cleanup.
type E2ETestHelper struct {
	Client  *yadisk.Client
	SDK     app.SDK
	TestID  string
	TestDir string
}

// NewE2ETestHelper creates the remote test folder, skipping the test when
// no token is configured.
func NewE2ETestHelper(t *testing.T) *E2ETestHelper {
	t.Helper()
	token := os.Getenv(tokenEnv)
	if token == "" {
		t.Skipf("%s is not set", tokenEnv)
	}

	client, err := yadisk.NewClient(yadisk.ClientConfig{Token: token})
	require.NoError(t, err)

	h := &E2ETestHelper{
		Client: client,
		SDK:    app.NewLiveSDK(client),
		TestID: uuid.NewString()[:8],
	}
	h.TestDir = path.Join(testRootDir, h.TestID)

	ctx := context.Background()
	if _, err := client.Mkdir(ctx, testRootDir, nil); err != nil && !isExists(err) {
		t.Fatalf("creating %s: %v", testRootDir, err)
	}
	_, err = client.Mkdir(ctx, h.TestDir, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := client.Remove(ctx, h.TestDir, &yadisk.Options{Permanently: true}); err != nil {
			t.Logf("Warning: cleanup of %s failed: %v", h.TestDir, err)
		}
		_ = client.Close()
	})
	t.Logf("E2E test folder: %s", h.TestDir)
	return h
}

// Path returns name inside the test folder.
func (h *E2ETestHelper) Path(name string) string {
	return path.Join(h.TestDir, name)
}

// CreateRandomFile writes size random bytes to a local temp file.
func (h *E2ETestHelper) CreateRandomFile(t *testing.T, name string, size int) (string, []byte) {
	t.Helper()
	content := make([]byte, size)
	_, err := rand.Read(content)
	require.NoError(t, err)

	local := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(local, content, 0o600))
	return local, content
}

func isExists(err error) bool {
	return errors.Is(err, yadisk.ErrDirectoryExists) || errors.Is(err, yadisk.ErrPathExists)
}
