package apptest

import (
	"io"
	"log"
	"os"
	"testing"

	"github.com/tonimelisma/yadisk-client/internal/app"
)

// NewTestApp creates an app instance backed by sdk.
func NewTestApp(sdk app.SDK) *app.App {
	return &app.App{SDK: sdk}
}

// CaptureOutput runs f and returns what it wrote to stdout, stderr and the
// standard logger, in that order.
func CaptureOutput(t *testing.T, f func()) string {
	t.Helper()

	originalLogOutput := log.Writer()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating stdout pipe: %v", err)
	}
	os.Stdout = w

	oldStderr := os.Stderr
	r2, w2, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating stderr pipe: %v", err)
	}
	os.Stderr = w2
	log.SetOutput(w2)

	f()

	w.Close()
	w2.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr
	log.SetOutput(originalLogOutput)

	stdout, _ := io.ReadAll(r)
	stderr, _ := io.ReadAll(r2)
	return string(stdout) + string(stderr)
}
