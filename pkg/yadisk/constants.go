// Package yadisk provides constants used throughout the Yandex.Disk SDK.
package yadisk

import "time"

// API endpoints. The variables below may be redirected at a fake server in tests.
const (
	apiRootURL     = "https://cloud-api.yandex.net/v1/disk/"
	oAuthAuthURL   = "https://oauth.yandex.ru/authorize"
	oAuthTokenURL  = "https://oauth.yandex.ru/token"
	oAuthDeviceURL = "https://oauth.yandex.ru/device/code"
	oAuthRevokeURL = "https://oauth.yandex.ru/revoke_token"
)

var (
	customRootURL   = apiRootURL
	customAuthURL   = oAuthAuthURL
	customTokenURL  = oAuthTokenURL
	customDeviceURL = oAuthDeviceURL
	customRevokeURL = oAuthRevokeURL
)

// Process-wide request defaults. They apply when neither the call nor the
// client nor the operation overrides them.
const (
	DefaultTimeout             = 10 * time.Second
	DefaultUploadTimeout       = 60 * time.Second
	DefaultRetries             = 3
	DefaultRetryInterval       = time.Duration(0)
	DefaultUploadRetryInterval = time.Duration(0)
)

// Chunked transfer and listing constants.
const (
	UploadChunkSize     = 64 * 1024
	DownloadChunkSize   = 8 * 1024
	DefaultListingLimit = 10000
	filesPageLimit      = 1000
)

// Resource type values reported by the API.
const (
	ResourceTypeFile = "file"
	ResourceTypeDir  = "dir"
)

// Operation status values reported by the API.
const (
	OperationSuccess    = "success"
	OperationFailed     = "failed"
	OperationInProgress = "in-progress"
)

// checkTokenOperationID is looked up by CheckToken. Any id works; the
// operations endpoint needs no scopes, so a valid token gets 404 and an
// invalid one gets 401.
const checkTokenOperationID = "0000"

// File name limits enforced before a rename is sent.
const (
	MaxFileNameLength = 255
)
