package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/config"
	"github.com/tonimelisma/yadisk-client/internal/logger"
	"github.com/tonimelisma/yadisk-client/internal/session"
	"github.com/tonimelisma/yadisk-client/internal/ui"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
	"golang.org/x/oauth2"
)

var (
	// ErrLoginPending means 'auth login' was started but not yet confirmed.
	ErrLoginPending = errors.New("login pending")
	// ErrNotLoggedIn means there is no token and no pending login.
	ErrNotLoggedIn = errors.New("not logged in, please run 'yadisk-client auth login'")
	// ErrNoClientID means no OAuth application is configured.
	ErrNoClientID = errors.New("no OAuth client id configured, set client_id in the config file or YADISK_CLIENT_ID")
)

// Environment variables overriding the configured OAuth application.
const (
	ClientIDEnv     = "YADISK_CLIENT_ID"
	ClientSecretEnv = "YADISK_CLIENT_SECRET"
)

type App struct {
	Config   *config.Configuration
	Client   *yadisk.Client
	SDK      SDK
	Sessions *session.Manager
}

// NewApp loads the configuration, completes a pending login if the user has
// confirmed it, and returns an app ready for authenticated calls.
func NewApp(cmd *cobra.Command) (*App, error) {
	a, err := NewUnauthenticatedApp(cmd)
	if err != nil {
		return nil, err
	}
	if err := a.authenticate(Context(cmd)); err != nil {
		_ = a.Client.Close()
		if errors.Is(err, ErrLoginPending) || errors.Is(err, ErrNotLoggedIn) {
			return nil, err
		}
		return nil, fmt.Errorf("initializing yadisk client: %w", err)
	}
	return a, nil
}

// NewUnauthenticatedApp returns an app whose client carries no token. The
// auth commands use it to start and complete logins.
func NewUnauthenticatedApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}

	client, err := yadisk.NewClient(yadisk.ClientConfig{
		ID:       firstNonEmpty(os.Getenv(ClientIDEnv), cfg.ClientID),
		Secret:   firstNonEmpty(os.Getenv(ClientSecretEnv), cfg.ClientSecret),
		Defaults: cfg.RequestDefaults(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating yadisk client: %w", err)
	}
	sdkLogger, err := newSDKLogger(cfg)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	if sdkLogger != nil {
		client.SetLogger(sdkLogger)
	}

	return &App{
		Config:   cfg,
		Client:   client,
		SDK:      NewLiveSDK(client),
		Sessions: session.NewManager(configDir),
	}, nil
}

// newSDKLogger picks the logger handed to the SDK. --debug prints through
// the standard logger; a configured log_level writes structured records to
// stderr. Nil means the SDK stays silent.
func newSDKLogger(cfg *config.Configuration) (yadisk.Logger, error) {
	if cfg.Debug {
		return ui.StdLogger{}, nil
	}
	if cfg.LogLevel == "" {
		return nil, nil
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level in configuration: %w", err)
	}
	return logger.NewSlogLogger(level).With("component", "sdk"), nil
}

// ApplyTransferTimeout sets the configured upload timeout on opts unless the
// caller already chose one with --timeout.
func (a *App) ApplyTransferTimeout(opts *yadisk.Options) {
	if opts == nil || opts.Timeout != nil || a.Config == nil {
		return
	}
	opts.Timeout = yadisk.Ptr(a.Config.TransferTimeout())
}

// ClientID returns the OAuth application id in effect.
func (a *App) ClientID() string {
	return firstNonEmpty(os.Getenv(ClientIDEnv), a.Config.ClientID)
}

func (a *App) authenticate(ctx context.Context) error {
	if a.Config.Token.AccessToken == "" {
		if err := a.completePendingLogin(ctx); err != nil {
			return err
		}
	}
	if a.Config.Token.AccessToken == "" {
		return ErrNotLoggedIn
	}

	token, err := a.TokenSource(ctx).Token()
	if err != nil {
		return fmt.Errorf("refreshing token: %w", err)
	}
	a.Client.SetToken(token.AccessToken)
	return nil
}

// completePendingLogin finishes a device login the user has confirmed in
// the browser. A browser (PKCE) login is finished by 'auth code' instead.
func (a *App) completePendingLogin(ctx context.Context) error {
	pending, err := a.Sessions.LoadAuthState()
	if err != nil {
		return fmt.Errorf("could not load auth state: %w", err)
	}
	if pending == nil {
		return nil
	}
	if pending.Flow == session.FlowPKCE {
		return fmt.Errorf("%w: open the login URL and run 'yadisk-client auth code <code>'", ErrLoginPending)
	}

	token, err := a.SDK.VerifyDeviceCode(ctx, pending.DeviceCode)
	if err != nil {
		if errors.Is(err, yadisk.ErrAuthorizationPending) {
			return fmt.Errorf("%w: please go to %s and enter code %s", ErrLoginPending, pending.VerificationURL, pending.UserCode)
		}
		_ = a.Sessions.DeleteAuthState()
		return fmt.Errorf("authentication failed, your login code may have expired, please try again: %w", err)
	}
	return a.SaveLogin(token)
}

// SaveLogin stores a freshly issued token and drops the pending login.
func (a *App) SaveLogin(token *yadisk.Token) error {
	if err := a.Config.UpdateToken(*token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	if err := a.Sessions.DeleteAuthState(); err != nil {
		log.Printf("Warning: could not delete auth session file: %v", err)
	}
	ui.Success("Login successful!")
	return nil
}

// TokenSource returns a source that refreshes an expired token through the
// SDK and writes every new token back to the configuration file.
func (a *App) TokenSource(ctx context.Context) oauth2.TokenSource {
	current := (*oauth2.Token)(&a.Config.Token)
	refresher := refreshingSource{ctx: ctx, sdk: a.SDK, refreshToken: current.RefreshToken}
	base := oauth2.ReuseTokenSource(current, refresher)
	return newPersistingTokenSource(base, a.Config.Token, a.Config.UpdateToken)
}

// Close releases the client's connections.
func (a *App) Close() error {
	if a.Client == nil {
		return nil
	}
	return a.Client.Close()
}

// Logout revokes the stored token when possible, then clears it and any
// pending login.
func (a *App) Logout(ctx context.Context) error {
	if token := a.Config.Token.AccessToken; token != "" && a.SDK != nil {
		revokeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := a.SDK.RevokeToken(revokeCtx, token); err != nil {
			log.Printf("Warning: could not revoke token: %v", err)
		}
	}
	if err := a.Config.UpdateToken(yadisk.Token{}); err != nil {
		return fmt.Errorf("could not clear token: %w", err)
	}
	if err := a.Sessions.DeleteAuthState(); err != nil {
		log.Printf("Warning: could not delete auth session file during logout: %v", err)
	}
	ui.Success("You have been logged out.")
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// LogicFunc is the body of a command that needs an authenticated app.
type LogicFunc func(a *App, cmd *cobra.Command, args []string) error

// WithApp adapts logic into a cobra RunE that builds the app first and
// releases it afterwards.
func WithApp(logic LogicFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := NewApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return logic(a, cmd, args)
	}
}

// Context returns the command's context, or a background context for
// commands that were not started through Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
