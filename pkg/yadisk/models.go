package yadisk

import (
	"strings"
	"time"
)

// Resource is a file or directory on Disk, in the trash, or behind a public
// link.
type Resource struct {
	Name             string         `json:"name"`
	Path             string         `json:"path"`
	Type             string         `json:"type"`
	MimeType         string         `json:"mime_type,omitempty"`
	MediaType        string         `json:"media_type,omitempty"`
	Size             int64          `json:"size,omitempty"`
	MD5              string         `json:"md5,omitempty"`
	SHA256           string         `json:"sha256,omitempty"`
	Created          time.Time      `json:"created"`
	Modified         time.Time      `json:"modified"`
	ResourceID       string         `json:"resource_id,omitempty"`
	Revision         int64          `json:"revision,omitempty"`
	Preview          string         `json:"preview,omitempty"`
	File             string         `json:"file,omitempty"`
	PublicKey        string         `json:"public_key,omitempty"`
	PublicURL        string         `json:"public_url,omitempty"`
	OriginPath       string         `json:"origin_path,omitempty"`
	Deleted          string         `json:"deleted,omitempty"`
	AntivirusStatus  string         `json:"antivirus_status,omitempty"`
	CustomProperties map[string]any `json:"custom_properties,omitempty"`
	Exif             map[string]any `json:"exif,omitempty"`
	Embedded         *ResourceList  `json:"_embedded,omitempty"`
}

// IsDir reports whether the resource is a directory.
func (r Resource) IsDir() bool {
	return r.Type == ResourceTypeDir
}

// IsFile reports whether the resource is a file.
func (r Resource) IsFile() bool {
	return r.Type == ResourceTypeFile
}

// ResourceList is the embedded page of a directory listing.
type ResourceList struct {
	Sort      string     `json:"sort,omitempty"`
	PublicKey string     `json:"public_key,omitempty"`
	Path      string     `json:"path"`
	Items     []Resource `json:"items"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	Total     int        `json:"total"`
}

// FilesResourceList is a flat page of files.
type FilesResourceList struct {
	Items  []Resource `json:"items"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// PublicResourcesList is a page of published resources.
type PublicResourcesList struct {
	Items  []Resource `json:"items"`
	Type   string     `json:"type,omitempty"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Link is returned by operations that point at a resource or at an
// asynchronous operation.
type Link struct {
	Href      string `json:"href"`
	Method    string `json:"method"`
	Templated bool   `json:"templated"`
}

// IsOperation reports whether the link points at an operation status
// endpoint instead of a resource.
func (l Link) IsOperation() bool {
	return IsOperationLink(l.Href)
}

// OperationID extracts the operation id from an operation link.
func (l Link) OperationID() string {
	if !l.IsOperation() {
		return ""
	}
	return operationIDFromLink(l.Href)
}

// UploadLink is the answer to an upload link request.
type UploadLink struct {
	OperationID string `json:"operation_id"`
	Href        string `json:"href"`
	Method      string `json:"method"`
	Templated   bool   `json:"templated"`
}

// OperationStatus is the state of an asynchronous operation.
type OperationStatus struct {
	Status string `json:"status"`
}

// Disk describes the user's storage.
type Disk struct {
	TotalSpace                 int64             `json:"total_space"`
	UsedSpace                  int64             `json:"used_space"`
	TrashSize                  int64             `json:"trash_size"`
	MaxFileSize                int64             `json:"max_file_size"`
	PaidMaxFileSize            int64             `json:"paid_max_file_size"`
	IsPaid                     bool              `json:"is_paid"`
	UnlimitedAutouploadEnabled bool              `json:"unlimited_autoupload_enabled"`
	Revision                   int64             `json:"revision"`
	RegTime                    time.Time         `json:"reg_time"`
	SystemFolders              map[string]string `json:"system_folders"`
	User                       User              `json:"user"`
}

// User is the owner of a disk.
type User struct {
	Country     string `json:"country"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	UID         string `json:"uid"`
}

// ResourcePatch is the body of a custom properties update.
type ResourcePatch struct {
	CustomProperties map[string]any `json:"custom_properties"`
}

func operationIDFromLink(href string) string {
	for _, prefix := range operationLinkPrefixes {
		if strings.HasPrefix(href, prefix) {
			id := strings.TrimPrefix(href, prefix)
			if i := strings.IndexAny(id, "?#"); i >= 0 {
				id = id[:i]
			}
			return id
		}
	}
	return href
}
