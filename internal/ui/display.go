// Package ui (display.go) prints Yandex.Disk resources, disk information,
// links and operation states to the console, and provides the progress bar
// and success/error helpers shared by the commands.
package ui

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

// StdLogger implements the yadisk.Logger interface using the standard log
// package, so SDK debug output appears when --debug is set.
type StdLogger struct{}

// Debug prints debug messages using the standard logger, prefixed with "DEBUG:".
func (l StdLogger) Debug(msg string, args ...any) {
	logLine("DEBUG: ", msg, args)
}

// Debugf prints formatted debug messages using the standard logger.
func (l StdLogger) Debugf(format string, args ...any) {
	log.Printf("DEBUG: "+format, args...)
}

func (l StdLogger) Info(msg string, args ...any) {
	logLine("INFO: ", msg, args)
}

func (l StdLogger) Infof(format string, args ...any) {
	log.Printf("INFO: "+format, args...)
}

func (l StdLogger) Warn(msg string, args ...any) {
	logLine("WARN: ", msg, args)
}

func (l StdLogger) Warnf(format string, args ...any) {
	log.Printf("WARN: "+format, args...)
}

func (l StdLogger) Error(msg string, args ...any) {
	logLine("ERROR: ", msg, args)
}

func (l StdLogger) Errorf(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}

// logLine prints msg followed by its key/value pairs.
func logLine(prefix, msg string, args []any) {
	if len(args) == 0 {
		log.Println(prefix + msg)
		return
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	log.Println(b.String())
}

// Success prints a success message to standard output, in green on a
// terminal.
func Success(msg string) {
	fmt.Println(color.GreenString(msg))
}

// PrintSuccess prints a formatted success message using the standard logger.
func PrintSuccess(msg string, args ...any) {
	log.Print(color.GreenString("SUCCESS: "+msg, args...))
}

// PrintError prints an error using the standard logger, in red on a
// terminal.
func PrintError(err error) {
	log.Print(color.RedString("ERROR: %v", err))
}

// DisplayResources prints a table of resources with the given title.
func DisplayResources(items []yadisk.Resource, title string) {
	if len(items) == 0 {
		fmt.Println("No items found in this location.")
		return
	}

	fmt.Println(title)
	fmt.Printf("%-50s %12s %-6s %s\n", "Name", "Size", "Type", "Modified")
	fmt.Println(strings.Repeat("-", 90))
	for _, item := range items {
		size := ""
		if item.IsFile() {
			size = formatBytes(item.Size)
		}
		fmt.Printf("%-50.50s %12s %-6s %s\n", item.Name, size, item.Type, formatTime(item.Modified))
	}
}

// DisplayFiles prints a flat file listing with full paths.
func DisplayFiles(items []yadisk.Resource) {
	if len(items) == 0 {
		fmt.Println("No files found.")
		return
	}
	fmt.Printf("%d file(s):\n", len(items))
	fmt.Printf("%-70s %12s %s\n", "Path", "Size", "Media type")
	fmt.Println(strings.Repeat("-", 100))
	for _, item := range items {
		fmt.Printf("%-70.70s %12s %s\n", item.Path, formatBytes(item.Size), item.MediaType)
	}
}

// DisplayResource prints detailed metadata for a single resource.
func DisplayResource(res yadisk.Resource) {
	fmt.Println("Resource Metadata:")
	fmt.Printf("  Name:             %s\n", res.Name)
	fmt.Printf("  Path:             %s\n", res.Path)
	fmt.Printf("  Type:             %s\n", res.Type)
	if res.IsFile() {
		fmt.Printf("  Size:             %s (%d bytes)\n", formatBytes(res.Size), res.Size)
		if res.MimeType != "" {
			fmt.Printf("  MIME Type:        %s\n", res.MimeType)
		}
		if res.MD5 != "" {
			fmt.Printf("  MD5:              %s\n", res.MD5)
		}
	}
	fmt.Printf("  Created:          %s\n", res.Created.Local().Format(time.RFC1123))
	fmt.Printf("  Modified:         %s\n", res.Modified.Local().Format(time.RFC1123))
	if res.PublicURL != "" {
		fmt.Printf("  Public URL:       %s\n", res.PublicURL)
	}
	if res.OriginPath != "" {
		fmt.Printf("  Original Path:    %s\n", res.OriginPath)
	}
	if len(res.CustomProperties) > 0 {
		fmt.Println("  Custom Properties:")
		keys := make([]string, 0, len(res.CustomProperties))
		for k := range res.CustomProperties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("    %s: %v\n", k, res.CustomProperties[k])
		}
	}
	if res.Embedded != nil && res.IsDir() {
		fmt.Printf("  Children:         %d\n", res.Embedded.Total)
	}
}

// DisplayDisk prints quota and owner information.
func DisplayDisk(disk yadisk.Disk) {
	fmt.Println("Disk Information:")
	fmt.Printf("  Owner:        %s (%s)\n", disk.User.DisplayName, disk.User.Login)
	fmt.Printf("  Total Space:  %s\n", formatBytes(disk.TotalSpace))
	fmt.Printf("  Used Space:   %s\n", formatBytes(disk.UsedSpace))
	fmt.Printf("  Free Space:   %s\n", formatBytes(disk.TotalSpace-disk.UsedSpace))
	fmt.Printf("  Trash Size:   %s\n", formatBytes(disk.TrashSize))
	fmt.Printf("  Max File:     %s\n", formatBytes(disk.MaxFileSize))
	fmt.Printf("  Paid:         %t\n", disk.IsPaid)
}

// DisplayLink reports the result of a mutating call: either the resource
// it points at or the operation still running on the server.
func DisplayLink(action string, link yadisk.Link) {
	if link.IsOperation() {
		fmt.Printf("%s started as asynchronous operation %s\n", action, link.OperationID())
		fmt.Println("Check it with 'yadisk-client ops status " + link.OperationID() + "'.")
		return
	}
	Success(action + " completed.")
}

// DisplayOperationStatus prints the state of an asynchronous operation.
func DisplayOperationStatus(id, status string) {
	switch status {
	case yadisk.OperationSuccess:
		Success(fmt.Sprintf("Operation %s: %s", id, status))
	case yadisk.OperationFailed:
		fmt.Println(color.RedString("Operation %s: %s", id, status))
	default:
		fmt.Printf("Operation %s: %s\n", id, status)
	}
}

// DisplayPublicResources prints the resources the user has published.
func DisplayPublicResources(list yadisk.PublicResourcesList) {
	if len(list.Items) == 0 {
		fmt.Println("No published resources.")
		return
	}
	fmt.Printf("Published resources (%d item(s)):\n", len(list.Items))
	fmt.Printf("%-50s %-6s %s\n", "Path", "Type", "Public URL")
	fmt.Println(strings.Repeat("-", 110))
	for _, item := range list.Items {
		fmt.Printf("%-50.50s %-6s %s\n", item.Path, item.Type, item.PublicURL)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}

// formatBytes converts a size in bytes to a human-readable string using IEC
// units.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// NewProgressBar creates a progress bar for a transfer of maxBytes bytes.
// A negative maxBytes shows a spinner. The bar writes to stderr so stdout
// stays clean.
func NewProgressBar(maxBytes int64, description string) *progressbar.ProgressBar {
	if description == "" {
		description = "Processing..."
	}
	return progressbar.NewOptions64(
		maxBytes,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}
