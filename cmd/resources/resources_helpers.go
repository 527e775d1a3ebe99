// Package cmd (resources_helpers.go) contains helpers shared by the
// 'resources' subcommands: remote path joining and waiting for
// asynchronous operations.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

// operationPollInterval is how often --wait checks an operation.
var operationPollInterval = 2 * time.Second

var errStillRunning = errors.New("operation still running")

// joinRemotePath joins a remote folder and a name with exactly one slash.
// A leading "disk:" schema on dir is kept.
//
//	joinRemotePath("/Documents", "a.txt")  -> "/Documents/a.txt"
//	joinRemotePath("disk:/", "a.txt")      -> "disk:/a.txt"
//	joinRemotePath("", "a.txt")            -> "/a.txt"
func joinRemotePath(dir, name string) string {
	name = strings.TrimPrefix(name, "/")
	if dir == "" || dir == "/" {
		return "/" + name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}

// isRemoteDir reports whether path is an existing folder. A missing path
// is not an error.
func isRemoteDir(ctx context.Context, a *app.App, path string) (bool, error) {
	res, err := a.SDK.GetMeta(ctx, path, &yadisk.Options{Fields: []string{"type"}})
	if err != nil {
		if errors.Is(err, yadisk.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return res.IsDir(), nil
}

// waitForOperation polls an operation until it leaves the in-progress
// state. A failed operation is an error.
func waitForOperation(ctx context.Context, a *app.App, link yadisk.Link) error {
	if !link.IsOperation() {
		return nil
	}
	id := link.OperationID()
	log.Printf("Operation %s started. Waiting for it to finish...", id)

	var status string
	poll := func() error {
		s, err := a.SDK.GetOperationStatus(ctx, id, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		status = s
		if s == yadisk.OperationInProgress {
			return errStillRunning
		}
		return nil
	}
	b := backoff.WithContext(backoff.NewConstantBackOff(operationPollInterval), ctx)
	if err := backoff.Retry(poll, b); err != nil {
		return fmt.Errorf("waiting for operation %s: %w", id, err)
	}
	if status == yadisk.OperationFailed {
		return fmt.Errorf("operation %s failed", id)
	}
	return nil
}
