// Package config loads and persists the yadisk-client settings file: the
// OAuth token, the application credentials and the HTTP defaults handed to
// the SDK.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/flock"
	"github.com/mitchellh/go-homedir"

	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
)

const (
	configDir  = ".yadisk-client"
	configFile = "config.json"

	// ConfigPathEnv overrides the location of the configuration file.
	ConfigPathEnv = "YADISK_CONFIG_PATH"

	// PermSecureFile is used for files holding credentials.
	PermSecureFile = 0o600
	// PermSecureDir is used for the configuration directory.
	PermSecureDir = 0o700
)

// HTTPConfig holds the request defaults applied to every SDK call.
type HTTPConfig struct {
	Timeout       time.Duration `json:"timeout"`
	UploadTimeout time.Duration `json:"upload_timeout"`
	Retries       int           `json:"retries"`
	RetryInterval time.Duration `json:"retry_interval"`
}

// DefaultHTTPConfig mirrors the SDK's own defaults.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:       yadisk.DefaultTimeout,
		UploadTimeout: yadisk.DefaultUploadTimeout,
		Retries:       yadisk.DefaultRetries,
		RetryInterval: yadisk.DefaultRetryInterval,
	}
}

// Validate rejects negative durations and retry counts.
func (h HTTPConfig) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&h.UploadTimeout, validation.Min(time.Duration(0))),
		validation.Field(&h.Retries, validation.Min(0)),
		validation.Field(&h.RetryInterval, validation.Min(time.Duration(0))),
	)
}

// Configuration holds all of the application's persisted settings.
type Configuration struct {
	Token        yadisk.Token `json:"token"`
	ClientID     string       `json:"client_id,omitempty"`
	ClientSecret string       `json:"client_secret,omitempty"`
	Debug        bool         `json:"debug"`
	LogLevel     string       `json:"log_level,omitempty"`
	HTTP         HTTPConfig   `json:"http"`

	mu sync.RWMutex
}

// Validate checks the HTTP defaults.
func (c *Configuration) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("invalid http settings: %w", err)
	}
	return nil
}

// RequestDefaults converts the HTTP settings into client-wide SDK options.
func (c *Configuration) RequestDefaults() yadisk.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return yadisk.Options{
		Timeout:       yadisk.Ptr(c.HTTP.Timeout),
		Retries:       yadisk.Ptr(c.HTTP.Retries),
		RetryInterval: yadisk.Ptr(c.HTTP.RetryInterval),
	}
}

// TransferTimeout returns the per-attempt deadline for uploads and downloads.
func (c *Configuration) TransferTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HTTP.UploadTimeout
}

// GetConfigDir returns the directory holding the configuration file.
func GetConfigDir() (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// GetConfigPath returns the configuration file path, honouring
// YADISK_CONFIG_PATH.
func GetConfigPath() (string, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, configDir, configFile), nil
}

// Save persists the configuration to disk. A lock file next to the
// configuration keeps concurrent CLI invocations from interleaving writes.
func (c *Configuration) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), PermSecureDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking configuration file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config to JSON: %w", err)
	}
	if err := os.WriteFile(path, data, PermSecureFile); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}
	return nil
}

// UpdateToken stores a refreshed token and saves the configuration.
func (c *Configuration) UpdateToken(token yadisk.Token) error {
	c.mu.Lock()
	c.Token = token
	c.mu.Unlock()
	return c.Save()
}

// Load reads the configuration file. Missing HTTP settings get defaults.
func Load() (*Configuration, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Configuration{HTTP: DefaultHTTPConfig()}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrCreate loads the configuration, or returns a default one when no
// file exists yet.
func LoadOrCreate() (*Configuration, error) {
	cfg, err := Load()
	if err != nil {
		if os.IsNotExist(err) {
			return &Configuration{HTTP: DefaultHTTPConfig()}, nil
		}
		return nil, err
	}
	return cfg, nil
}
