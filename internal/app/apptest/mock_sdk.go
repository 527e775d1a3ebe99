// Package apptest provides a function-field mock of app.SDK for command
// tests. Unset functions return zero values and no error.
package apptest

import (
	"context"
	"errors"

	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

var _ app.SDK = (*MockSDK)(nil)

// MockSDK is a mock implementation of the SDK interface for testing.
type MockSDK struct {
	InitiateDeviceCodeFlowFunc func(deviceName string) (*yadisk.DeviceCodeResponse, error)
	VerifyDeviceCodeFunc       func(deviceCode string) (*yadisk.Token, error)
	StartAuthenticationFunc    func() (string, string, error)
	CompleteAuthenticationFunc func(code, verifier string) (*yadisk.Token, error)
	RefreshTokenFunc           func(refreshToken string) (*yadisk.Token, error)
	RevokeTokenFunc            func(token string) error

	GetDiskInfoFunc        func(opts *yadisk.Options) (yadisk.Disk, error)
	CheckTokenFunc         func(token string, opts *yadisk.Options) (bool, error)
	GetOperationStatusFunc func(idOrLink string, opts *yadisk.Options) (string, error)

	GetMetaFunc         func(path string, opts *yadisk.Options) (yadisk.Resource, error)
	ListDirFunc         func(path string, opts *yadisk.Options) ([]yadisk.Resource, error)
	ListFilesFunc       func(opts *yadisk.Options) ([]yadisk.Resource, error)
	GetLastUploadedFunc func(opts *yadisk.Options) ([]yadisk.Resource, error)
	MkdirFunc           func(path string, opts *yadisk.Options) (yadisk.Link, error)
	RemoveFunc          func(path string, opts *yadisk.Options) (*yadisk.Link, error)
	CopyFunc            func(src, dst string, opts *yadisk.Options) (yadisk.Link, error)
	MoveFunc            func(src, dst string, opts *yadisk.Options) (yadisk.Link, error)
	RenameFunc          func(path, newName string, opts *yadisk.Options) (yadisk.Link, error)
	PatchFunc           func(path string, props map[string]any, opts *yadisk.Options) (yadisk.Resource, error)
	UploadURLFunc       func(sourceURL, path string, opts *yadisk.Options) (yadisk.Link, error)
	UploadFunc          func(localPath, remotePath string, opts *yadisk.Options) error
	DownloadFunc        func(remotePath, localPath string, opts *yadisk.Options) error

	ListTrashFunc    func(path string, opts *yadisk.Options) ([]yadisk.Resource, error)
	RemoveTrashFunc  func(path string, opts *yadisk.Options) (*yadisk.Link, error)
	RestoreTrashFunc func(path string, opts *yadisk.Options) (yadisk.Link, error)

	PublishFunc            func(path string, opts *yadisk.Options) (yadisk.Link, error)
	UnpublishFunc          func(path string, opts *yadisk.Options) (yadisk.Link, error)
	GetPublicMetaFunc      func(publicKey string, opts *yadisk.Options) (yadisk.Resource, error)
	ListPublicFunc         func(publicKey string, opts *yadisk.Options) ([]yadisk.Resource, error)
	GetPublicResourcesFunc func(opts *yadisk.Options) (yadisk.PublicResourcesList, error)
	SaveToDiskFunc         func(publicKey string, opts *yadisk.Options) (yadisk.Link, error)
	DownloadPublicFunc     func(publicKey, localPath string, opts *yadisk.Options) error
}

var errNotImplemented = errors.New("not implemented")

func (m *MockSDK) InitiateDeviceCodeFlow(_ context.Context, deviceName string) (*yadisk.DeviceCodeResponse, error) {
	if m.InitiateDeviceCodeFlowFunc != nil {
		return m.InitiateDeviceCodeFlowFunc(deviceName)
	}
	return nil, errNotImplemented
}

func (m *MockSDK) VerifyDeviceCode(_ context.Context, deviceCode string) (*yadisk.Token, error) {
	if m.VerifyDeviceCodeFunc != nil {
		return m.VerifyDeviceCodeFunc(deviceCode)
	}
	return nil, errNotImplemented
}

func (m *MockSDK) StartAuthentication() (string, string, error) {
	if m.StartAuthenticationFunc != nil {
		return m.StartAuthenticationFunc()
	}
	return "", "", errNotImplemented
}

func (m *MockSDK) CompleteAuthentication(_ context.Context, code, verifier string) (*yadisk.Token, error) {
	if m.CompleteAuthenticationFunc != nil {
		return m.CompleteAuthenticationFunc(code, verifier)
	}
	return nil, errNotImplemented
}

func (m *MockSDK) RefreshToken(_ context.Context, refreshToken string) (*yadisk.Token, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(refreshToken)
	}
	return nil, errNotImplemented
}

func (m *MockSDK) RevokeToken(_ context.Context, token string) error {
	if m.RevokeTokenFunc != nil {
		return m.RevokeTokenFunc(token)
	}
	return nil
}

func (m *MockSDK) GetDiskInfo(_ context.Context, opts *yadisk.Options) (yadisk.Disk, error) {
	if m.GetDiskInfoFunc != nil {
		return m.GetDiskInfoFunc(opts)
	}
	return yadisk.Disk{}, nil
}

func (m *MockSDK) CheckToken(_ context.Context, token string, opts *yadisk.Options) (bool, error) {
	if m.CheckTokenFunc != nil {
		return m.CheckTokenFunc(token, opts)
	}
	return true, nil
}

func (m *MockSDK) GetOperationStatus(_ context.Context, idOrLink string, opts *yadisk.Options) (string, error) {
	if m.GetOperationStatusFunc != nil {
		return m.GetOperationStatusFunc(idOrLink, opts)
	}
	return yadisk.OperationSuccess, nil
}

func (m *MockSDK) GetMeta(_ context.Context, path string, opts *yadisk.Options) (yadisk.Resource, error) {
	if m.GetMetaFunc != nil {
		return m.GetMetaFunc(path, opts)
	}
	return yadisk.Resource{}, nil
}

func (m *MockSDK) ListDir(_ context.Context, path string, opts *yadisk.Options) ([]yadisk.Resource, error) {
	if m.ListDirFunc != nil {
		return m.ListDirFunc(path, opts)
	}
	return nil, nil
}

func (m *MockSDK) ListFiles(_ context.Context, opts *yadisk.Options) ([]yadisk.Resource, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc(opts)
	}
	return nil, nil
}

func (m *MockSDK) GetLastUploaded(_ context.Context, opts *yadisk.Options) ([]yadisk.Resource, error) {
	if m.GetLastUploadedFunc != nil {
		return m.GetLastUploadedFunc(opts)
	}
	return nil, nil
}

func (m *MockSDK) Mkdir(_ context.Context, path string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.MkdirFunc != nil {
		return m.MkdirFunc(path, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) Remove(_ context.Context, path string, opts *yadisk.Options) (*yadisk.Link, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path, opts)
	}
	return nil, nil
}

func (m *MockSDK) Copy(_ context.Context, src, dst string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.CopyFunc != nil {
		return m.CopyFunc(src, dst, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) Move(_ context.Context, src, dst string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(src, dst, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) Rename(_ context.Context, path, newName string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.RenameFunc != nil {
		return m.RenameFunc(path, newName, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) Patch(_ context.Context, path string, props map[string]any, opts *yadisk.Options) (yadisk.Resource, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(path, props, opts)
	}
	return yadisk.Resource{}, nil
}

func (m *MockSDK) UploadURL(_ context.Context, sourceURL, path string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.UploadURLFunc != nil {
		return m.UploadURLFunc(sourceURL, path, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) Upload(_ context.Context, localPath, remotePath string, opts *yadisk.Options) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(localPath, remotePath, opts)
	}
	return nil
}

func (m *MockSDK) Download(_ context.Context, remotePath, localPath string, opts *yadisk.Options) error {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(remotePath, localPath, opts)
	}
	return nil
}

func (m *MockSDK) ListTrash(_ context.Context, path string, opts *yadisk.Options) ([]yadisk.Resource, error) {
	if m.ListTrashFunc != nil {
		return m.ListTrashFunc(path, opts)
	}
	return nil, nil
}

func (m *MockSDK) RemoveTrash(_ context.Context, path string, opts *yadisk.Options) (*yadisk.Link, error) {
	if m.RemoveTrashFunc != nil {
		return m.RemoveTrashFunc(path, opts)
	}
	return nil, nil
}

func (m *MockSDK) RestoreTrash(_ context.Context, path string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.RestoreTrashFunc != nil {
		return m.RestoreTrashFunc(path, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) Publish(_ context.Context, path string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.PublishFunc != nil {
		return m.PublishFunc(path, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) Unpublish(_ context.Context, path string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.UnpublishFunc != nil {
		return m.UnpublishFunc(path, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) GetPublicMeta(_ context.Context, publicKey string, opts *yadisk.Options) (yadisk.Resource, error) {
	if m.GetPublicMetaFunc != nil {
		return m.GetPublicMetaFunc(publicKey, opts)
	}
	return yadisk.Resource{}, nil
}

func (m *MockSDK) ListPublic(_ context.Context, publicKey string, opts *yadisk.Options) ([]yadisk.Resource, error) {
	if m.ListPublicFunc != nil {
		return m.ListPublicFunc(publicKey, opts)
	}
	return nil, nil
}

func (m *MockSDK) GetPublicResources(_ context.Context, opts *yadisk.Options) (yadisk.PublicResourcesList, error) {
	if m.GetPublicResourcesFunc != nil {
		return m.GetPublicResourcesFunc(opts)
	}
	return yadisk.PublicResourcesList{}, nil
}

func (m *MockSDK) SaveToDisk(_ context.Context, publicKey string, opts *yadisk.Options) (yadisk.Link, error) {
	if m.SaveToDiskFunc != nil {
		return m.SaveToDiskFunc(publicKey, opts)
	}
	return yadisk.Link{}, nil
}

func (m *MockSDK) DownloadPublic(_ context.Context, publicKey, localPath string, opts *yadisk.Options) error {
	if m.DownloadPublicFunc != nil {
		return m.DownloadPublicFunc(publicKey, localPath, opts)
	}
	return nil
}
