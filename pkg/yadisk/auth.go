// Package yadisk (auth.go) provides the OAuth flows of Yandex ID: the
// authorization code grant (optionally with PKCE), the device code flow,
// token refresh and revocation.
package yadisk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	cv "github.com/nirasan/go-oauth-pkce-code-verifier"
	"golang.org/x/oauth2"
)

// Token is the canonical OAuth token representation used by the SDK.
type Token oauth2.Token

// OAuthConfig is an alias for oauth2.Config configured for Yandex ID.
type OAuthConfig oauth2.Config

// DeviceCodeResponse is the answer to a device code request.
type DeviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURL string `json:"verification_url"`
	Interval        int    `json:"interval"`
	ExpiresIn       int    `json:"expires_in"`
}

// CodeURLOptions are the optional parameters of the authorization URL.
type CodeURLOptions struct {
	DeviceID      string
	DeviceName    string
	Display       string
	LoginHint     string
	Scope         []string
	OptionalScope []string
	ForceConfirm  bool
	State         string
}

// SetCustomEndpoints overrides the OAuth endpoints. It is meant for tests
// against a fake server.
func SetCustomEndpoints(authURL, tokenURL, deviceURL, revokeURL string) {
	customAuthURL = authURL
	customTokenURL = tokenURL
	customDeviceURL = deviceURL
	customRevokeURL = revokeURL
}

// GetOauth2Config returns the OAuth configuration for an application.
func GetOauth2Config(clientID, clientSecret string) *OAuthConfig {
	return &OAuthConfig{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   customAuthURL,
			TokenURL:  customTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func (c *Client) oauthConfig() *oauth2.Config {
	return (*oauth2.Config)(GetOauth2Config(c.id, c.secret))
}

func (o CodeURLOptions) authParams() []oauth2.AuthCodeOption {
	var params []oauth2.AuthCodeOption
	add := func(key, value string) {
		if value != "" {
			params = append(params, oauth2.SetAuthURLParam(key, value))
		}
	}
	add("device_id", o.DeviceID)
	add("device_name", o.DeviceName)
	add("display", o.Display)
	add("login_hint", o.LoginHint)
	add("scope", strings.Join(o.Scope, " "))
	add("optional_scope", strings.Join(o.OptionalScope, " "))
	if o.ForceConfirm {
		add("force_confirm", "yes")
	}
	return params
}

// GetCodeURL returns the URL the user visits to grant access. The
// confirmation code shown afterwards goes to GetToken.
//
// Example:
//
//	fmt.Println("Open", client.GetCodeURL(yadisk.CodeURLOptions{}))
func (c *Client) GetCodeURL(opts CodeURLOptions) string {
	return c.oauthConfig().AuthCodeURL(opts.State, opts.authParams()...)
}

// StartAuthentication builds an authorization URL protected by PKCE. The
// returned verifier must be passed to CompleteAuthentication.
func (c *Client) StartAuthentication(opts CodeURLOptions) (authURL, codeVerifier string, err error) {
	verifier, err := cv.CreateCodeVerifier()
	if err != nil {
		return "", "", fmt.Errorf("could not create PKCE code verifier: %w", err)
	}
	params := append(opts.authParams(),
		oauth2.SetAuthURLParam("code_challenge", verifier.CodeChallengeS256()),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
	return c.oauthConfig().AuthCodeURL(opts.State, params...), verifier.String(), nil
}

// CompleteAuthentication exchanges a code obtained through
// StartAuthentication for a token.
func (c *Client) CompleteAuthentication(ctx context.Context, code, verifier string) (*Token, error) {
	return c.exchange(ctx, code, oauth2.SetAuthURLParam("code_verifier", verifier))
}

// GetToken exchanges a confirmation code for a token.
func (c *Client) GetToken(ctx context.Context, code string, opts CodeURLOptions) (*Token, error) {
	var params []oauth2.AuthCodeOption
	if opts.DeviceID != "" {
		params = append(params, oauth2.SetAuthURLParam("device_id", opts.DeviceID))
	}
	if opts.DeviceName != "" {
		params = append(params, oauth2.SetAuthURLParam("device_name", opts.DeviceName))
	}
	return c.exchange(ctx, code, params...)
}

func (c *Client) exchange(ctx context.Context, code string, params ...oauth2.AuthCodeOption) (*Token, error) {
	token, err := c.oauthConfig().Exchange(ctx, code, params...)
	if err != nil {
		return nil, mapOAuthError(err)
	}
	setExpiry(token)
	return (*Token)(token), nil
}

// RefreshToken trades a refresh token for a new token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	stale := &oauth2.Token{RefreshToken: refreshToken, Expiry: time.Now().Add(-time.Minute)}
	token, err := c.oauthConfig().TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, mapOAuthError(err)
	}
	setExpiry(token)
	return (*Token)(token), nil
}

// RevokeToken invalidates token, or the client's token when empty. The
// request goes through the regular pipeline, so failures are classified.
func (c *Client) RevokeToken(ctx context.Context, token string, opts *Options) error {
	if token == "" {
		token = c.Token()
	}
	form := url.Values{}
	form.Set("access_token", token)
	form.Set("client_id", c.id)
	form.Set("client_secret", c.secret)

	o := c.options(opts)
	op := operation{
		method:      http.MethodPost,
		url:         customRevokeURL,
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}
	_, err := c.call(ctx, op, &o, standardDefaults, nil)
	return err
}

// InitiateDeviceCodeFlow requests a user code for the device flow. An empty
// deviceID gets a random one.
//
// Example:
//
//	resp, err := client.InitiateDeviceCodeFlow(ctx, "", "my-laptop")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Open %s and enter %s\n", resp.VerificationURL, resp.UserCode)
func (c *Client) InitiateDeviceCodeFlow(ctx context.Context, deviceID, deviceName string) (*DeviceCodeResponse, error) {
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	form := url.Values{}
	form.Set("client_id", c.id)
	form.Set("device_id", deviceID)
	if deviceName != "" {
		form.Set("device_name", deviceName)
	}

	data, err := c.oauthCall(ctx, customDeviceURL, form)
	if err != nil {
		return nil, fmt.Errorf("requesting device code from %s: %w", customDeviceURL, err)
	}
	var resp DeviceCodeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding device code response: %v", ErrInvalidResponse, err)
	}
	return &resp, nil
}

// VerifyDeviceCode polls for the token of a device flow. Until the user has
// confirmed, it fails with ErrAuthorizationPending.
func (c *Client) VerifyDeviceCode(ctx context.Context, deviceCode string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "device_code")
	form.Set("code", deviceCode)
	form.Set("client_id", c.id)
	form.Set("client_secret", c.secret)

	data, err := c.oauthCall(ctx, customTokenURL, form)
	if err != nil {
		return nil, fmt.Errorf("polling token endpoint %s: %w", customTokenURL, err)
	}

	var raw struct {
		AccessToken  string      `json:"access_token"`
		RefreshToken string      `json:"refresh_token"`
		TokenType    string      `json:"token_type"`
		ExpiresIn    json.Number `json:"expires_in"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing token: %v", ErrInvalidResponse, err)
	}
	token := &oauth2.Token{AccessToken: raw.AccessToken, RefreshToken: raw.RefreshToken, TokenType: raw.TokenType}
	if secs, err := raw.ExpiresIn.Int64(); err == nil && secs > 0 {
		token.Expiry = time.Now().Add(time.Duration(secs) * time.Second)
	}
	return (*Token)(token), nil
}

// oauthCall posts form to an OAuth endpoint once, without retries, and maps
// OAuth error answers to sentinels.
func (c *Client) oauthCall(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	var h Headers
	h.Set("Content-Type", "application/x-www-form-urlencoded")
	res, err := c.SessionForToken("", "oauth").do(ctx, exchange{
		method:  http.MethodPost,
		url:     endpoint,
		headers: h,
		body:    bytes.NewReader([]byte(form.Encode())),
		timeout: first(DefaultTimeout, c.defaults.Timeout),
	})
	if err != nil {
		return nil, err
	}
	defer closeBodySafely(res.Body, c.log(), "oauth")

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	c.log().Debugf("OAuth %s answered %d", endpoint, res.StatusCode)
	if res.StatusCode >= http.StatusBadRequest {
		var oauthErr struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.Unmarshal(data, &oauthErr)
		if err := oauthSentinel(oauthErr.Error); err != nil {
			return nil, err
		}
		apiErr := newResponseError(res.StatusCode, res.Header, nil)
		apiErr.Code = oauthErr.Error
		apiErr.Message = oauthErr.ErrorDescription
		return nil, apiErr
	}
	return data, nil
}

func oauthSentinel(code string) error {
	switch code {
	case "authorization_pending":
		return ErrAuthorizationPending
	case "access_denied", "authorization_declined":
		return ErrAuthorizationDeclined
	case "expired_token":
		return ErrTokenExpired
	}
	return nil
}

func mapOAuthError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		if s := oauthSentinel(re.ErrorCode); s != nil {
			return fmt.Errorf("%w: %v", s, err)
		}
		if re.ErrorCode == "invalid_grant" {
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
	}
	return fmt.Errorf("token exchange failed: %w", err)
}

// setExpiry fills Expiry from expires_in when the library left it empty.
func setExpiry(token *oauth2.Token) {
	if !token.Expiry.IsZero() {
		return
	}
	switch v := token.Extra("expires_in").(type) {
	case float64:
		token.Expiry = time.Now().Add(time.Duration(v) * time.Second)
	case string:
		if d, err := time.ParseDuration(v + "s"); err == nil {
			token.Expiry = time.Now().Add(d)
		}
	}
}
