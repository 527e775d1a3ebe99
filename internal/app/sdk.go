package app

import (
	"context"

	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

// SDK defines the interface for interacting with the Yandex.Disk API.
// This allows for mocking in tests.
type SDK interface {
	// Auth
	InitiateDeviceCodeFlow(ctx context.Context, deviceName string) (*yadisk.DeviceCodeResponse, error)
	VerifyDeviceCode(ctx context.Context, deviceCode string) (*yadisk.Token, error)
	StartAuthentication() (authURL, verifier string, err error)
	CompleteAuthentication(ctx context.Context, code, verifier string) (*yadisk.Token, error)
	RefreshToken(ctx context.Context, refreshToken string) (*yadisk.Token, error)
	RevokeToken(ctx context.Context, token string) error

	// Disk and operations
	GetDiskInfo(ctx context.Context, opts *yadisk.Options) (yadisk.Disk, error)
	CheckToken(ctx context.Context, token string, opts *yadisk.Options) (bool, error)
	GetOperationStatus(ctx context.Context, idOrLink string, opts *yadisk.Options) (string, error)

	// Resources
	GetMeta(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Resource, error)
	ListDir(ctx context.Context, path string, opts *yadisk.Options) ([]yadisk.Resource, error)
	ListFiles(ctx context.Context, opts *yadisk.Options) ([]yadisk.Resource, error)
	GetLastUploaded(ctx context.Context, opts *yadisk.Options) ([]yadisk.Resource, error)
	Mkdir(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Link, error)
	Remove(ctx context.Context, path string, opts *yadisk.Options) (*yadisk.Link, error)
	Copy(ctx context.Context, src, dst string, opts *yadisk.Options) (yadisk.Link, error)
	Move(ctx context.Context, src, dst string, opts *yadisk.Options) (yadisk.Link, error)
	Rename(ctx context.Context, path, newName string, opts *yadisk.Options) (yadisk.Link, error)
	Patch(ctx context.Context, path string, props map[string]any, opts *yadisk.Options) (yadisk.Resource, error)
	UploadURL(ctx context.Context, sourceURL, path string, opts *yadisk.Options) (yadisk.Link, error)
	Upload(ctx context.Context, localPath, remotePath string, opts *yadisk.Options) error
	Download(ctx context.Context, remotePath, localPath string, opts *yadisk.Options) error

	// Trash
	ListTrash(ctx context.Context, path string, opts *yadisk.Options) ([]yadisk.Resource, error)
	RemoveTrash(ctx context.Context, path string, opts *yadisk.Options) (*yadisk.Link, error)
	RestoreTrash(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Link, error)

	// Public resources
	Publish(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Link, error)
	Unpublish(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Link, error)
	GetPublicMeta(ctx context.Context, publicKey string, opts *yadisk.Options) (yadisk.Resource, error)
	ListPublic(ctx context.Context, publicKey string, opts *yadisk.Options) ([]yadisk.Resource, error)
	GetPublicResources(ctx context.Context, opts *yadisk.Options) (yadisk.PublicResourcesList, error)
	SaveToDisk(ctx context.Context, publicKey string, opts *yadisk.Options) (yadisk.Link, error)
	DownloadPublic(ctx context.Context, publicKey, localPath string, opts *yadisk.Options) error
}

// LiveSDK is the concrete implementation of the SDK interface that makes
// real API calls through a yadisk.Client.
type LiveSDK struct {
	client *yadisk.Client
}

// NewLiveSDK wraps client.
func NewLiveSDK(client *yadisk.Client) *LiveSDK {
	return &LiveSDK{client: client}
}

func (s *LiveSDK) InitiateDeviceCodeFlow(ctx context.Context, deviceName string) (*yadisk.DeviceCodeResponse, error) {
	return s.client.InitiateDeviceCodeFlow(ctx, "", deviceName)
}

func (s *LiveSDK) VerifyDeviceCode(ctx context.Context, deviceCode string) (*yadisk.Token, error) {
	return s.client.VerifyDeviceCode(ctx, deviceCode)
}

func (s *LiveSDK) StartAuthentication() (string, string, error) {
	return s.client.StartAuthentication(yadisk.CodeURLOptions{})
}

func (s *LiveSDK) CompleteAuthentication(ctx context.Context, code, verifier string) (*yadisk.Token, error) {
	return s.client.CompleteAuthentication(ctx, code, verifier)
}

func (s *LiveSDK) RefreshToken(ctx context.Context, refreshToken string) (*yadisk.Token, error) {
	return s.client.RefreshToken(ctx, refreshToken)
}

func (s *LiveSDK) RevokeToken(ctx context.Context, token string) error {
	return s.client.RevokeToken(ctx, token, nil)
}

func (s *LiveSDK) GetDiskInfo(ctx context.Context, opts *yadisk.Options) (yadisk.Disk, error) {
	return s.client.GetDiskInfo(ctx, opts)
}

func (s *LiveSDK) CheckToken(ctx context.Context, token string, opts *yadisk.Options) (bool, error) {
	return s.client.CheckToken(ctx, token, opts)
}

func (s *LiveSDK) GetOperationStatus(ctx context.Context, idOrLink string, opts *yadisk.Options) (string, error) {
	return s.client.GetOperationStatus(ctx, idOrLink, opts)
}

func (s *LiveSDK) GetMeta(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Resource, error) {
	return s.client.GetMeta(ctx, path, opts)
}

// ListDir drains the directory cursor.
func (s *LiveSDK) ListDir(ctx context.Context, path string, opts *yadisk.Options) ([]yadisk.Resource, error) {
	return s.client.Listdir(path, opts).All(ctx)
}

// ListFiles drains the flat file cursor.
func (s *LiveSDK) ListFiles(ctx context.Context, opts *yadisk.Options) ([]yadisk.Resource, error) {
	return s.client.GetFiles(opts).All(ctx)
}

func (s *LiveSDK) GetLastUploaded(ctx context.Context, opts *yadisk.Options) ([]yadisk.Resource, error) {
	return s.client.GetLastUploaded(ctx, opts)
}

func (s *LiveSDK) Mkdir(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.Mkdir(ctx, path, opts)
}

func (s *LiveSDK) Remove(ctx context.Context, path string, opts *yadisk.Options) (*yadisk.Link, error) {
	return s.client.Remove(ctx, path, opts)
}

func (s *LiveSDK) Copy(ctx context.Context, src, dst string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.Copy(ctx, src, dst, opts)
}

func (s *LiveSDK) Move(ctx context.Context, src, dst string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.Move(ctx, src, dst, opts)
}

func (s *LiveSDK) Rename(ctx context.Context, path, newName string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.Rename(ctx, path, newName, opts)
}

func (s *LiveSDK) Patch(ctx context.Context, path string, props map[string]any, opts *yadisk.Options) (yadisk.Resource, error) {
	return s.client.Patch(ctx, path, props, opts)
}

func (s *LiveSDK) UploadURL(ctx context.Context, sourceURL, path string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.UploadURL(ctx, sourceURL, path, opts)
}

func (s *LiveSDK) Upload(ctx context.Context, localPath, remotePath string, opts *yadisk.Options) error {
	return s.client.Upload(ctx, yadisk.FromPath(localPath), remotePath, opts)
}

func (s *LiveSDK) Download(ctx context.Context, remotePath, localPath string, opts *yadisk.Options) error {
	return s.client.Download(ctx, remotePath, yadisk.ToPath(localPath, overwrite(opts)), opts)
}

// ListTrash drains the trash directory cursor.
func (s *LiveSDK) ListTrash(ctx context.Context, path string, opts *yadisk.Options) ([]yadisk.Resource, error) {
	return s.client.TrashListdir(path, opts).All(ctx)
}

func (s *LiveSDK) RemoveTrash(ctx context.Context, path string, opts *yadisk.Options) (*yadisk.Link, error) {
	return s.client.RemoveTrash(ctx, path, opts)
}

func (s *LiveSDK) RestoreTrash(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.RestoreTrash(ctx, path, opts)
}

func (s *LiveSDK) Publish(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.Publish(ctx, path, opts)
}

func (s *LiveSDK) Unpublish(ctx context.Context, path string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.Unpublish(ctx, path, opts)
}

func (s *LiveSDK) GetPublicMeta(ctx context.Context, publicKey string, opts *yadisk.Options) (yadisk.Resource, error) {
	return s.client.GetPublicMeta(ctx, publicKey, opts)
}

// ListPublic drains the public folder cursor.
func (s *LiveSDK) ListPublic(ctx context.Context, publicKey string, opts *yadisk.Options) ([]yadisk.Resource, error) {
	return s.client.PublicListdir(publicKey, opts).All(ctx)
}

func (s *LiveSDK) GetPublicResources(ctx context.Context, opts *yadisk.Options) (yadisk.PublicResourcesList, error) {
	return s.client.GetPublicResources(ctx, opts)
}

func (s *LiveSDK) SaveToDisk(ctx context.Context, publicKey string, opts *yadisk.Options) (yadisk.Link, error) {
	return s.client.SaveToDisk(ctx, publicKey, opts)
}

func (s *LiveSDK) DownloadPublic(ctx context.Context, publicKey, localPath string, opts *yadisk.Options) error {
	return s.client.DownloadPublic(ctx, publicKey, yadisk.ToPath(localPath, overwrite(opts)), opts)
}

func overwrite(opts *yadisk.Options) bool {
	return opts != nil && opts.Overwrite
}
