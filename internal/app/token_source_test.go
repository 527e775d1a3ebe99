package app

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
	"golang.org/x/oauth2"
)

// mockTokenSource is a helper for testing the persistingTokenSource.
type mockTokenSource struct {
	mu         sync.Mutex
	token      *oauth2.Token
	err        error
	tokenCalls int
}

func (m *mockTokenSource) Token() (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokenCalls++
	return m.token, m.err
}

func (m *mockTokenSource) setToken(token *oauth2.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func TestPersistingTokenSource(t *testing.T) {
	initial := yadisk.Token{AccessToken: "initial_access", RefreshToken: "r1"}
	var saved []yadisk.Token
	save := func(token yadisk.Token) error {
		saved = append(saved, token)
		return nil
	}

	mockSource := &mockTokenSource{token: &oauth2.Token{AccessToken: "initial_access", RefreshToken: "r1"}}
	source := newPersistingTokenSource(mockSource, initial, save)

	token, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, "initial_access", token.AccessToken)
	assert.Empty(t, saved, "an unchanged token must not be saved")

	_, err = source.Token()
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Equal(t, 2, mockSource.tokenCalls)

	mockSource.setToken(&oauth2.Token{AccessToken: "refreshed_access", RefreshToken: "r1"})
	token, err = source.Token()
	require.NoError(t, err)
	assert.Equal(t, "refreshed_access", token.AccessToken)
	require.Len(t, saved, 1)
	assert.Equal(t, "refreshed_access", saved[0].AccessToken)

	// A rotated refresh token alone is also worth saving.
	mockSource.setToken(&oauth2.Token{AccessToken: "refreshed_access", RefreshToken: "r2"})
	_, err = source.Token()
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "r2", saved[1].RefreshToken)
}

func TestPersistingTokenSource_SaveError(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	mockSource := &mockTokenSource{token: &oauth2.Token{AccessToken: "refreshed_access"}}
	source := newPersistingTokenSource(mockSource, yadisk.Token{AccessToken: "initial_access"}, func(yadisk.Token) error {
		return errors.New("failed to save token")
	})

	token, err := source.Token()
	require.NoError(t, err, "a failed save must not fail the call")
	assert.Equal(t, "refreshed_access", token.AccessToken)
	assert.Contains(t, logs.String(), "failed to save token")
}

func TestPersistingTokenSource_BaseError(t *testing.T) {
	baseErr := errors.New("refresh failed")
	called := false
	source := newPersistingTokenSource(&mockTokenSource{err: baseErr}, yadisk.Token{}, func(yadisk.Token) error {
		called = true
		return nil
	})

	_, err := source.Token()
	assert.ErrorIs(t, err, baseErr)
	assert.False(t, called, "nothing is saved when the base source fails")
}

type refreshStub struct {
	SDK
	got   string
	token *yadisk.Token
	err   error
}

func (s *refreshStub) RefreshToken(_ context.Context, refreshToken string) (*yadisk.Token, error) {
	s.got = refreshToken
	return s.token, s.err
}

func TestRefreshingSourceKeepsOldRefreshToken(t *testing.T) {
	sdk := &refreshStub{token: &yadisk.Token{AccessToken: "new"}}
	token, err := refreshingSource{ctx: context.Background(), sdk: sdk, refreshToken: "old-refresh"}.Token()
	require.NoError(t, err)
	assert.Equal(t, "old-refresh", sdk.got)
	assert.Equal(t, "new", token.AccessToken)
	assert.Equal(t, "old-refresh", token.RefreshToken)
}

func TestRefreshingSourceErrors(t *testing.T) {
	_, err := refreshingSource{ctx: context.Background(), sdk: &refreshStub{}}.Token()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	sdk := &refreshStub{err: yadisk.ErrUnauthorized}
	_, err = refreshingSource{ctx: context.Background(), sdk: sdk, refreshToken: "r"}.Token()
	assert.ErrorIs(t, err, yadisk.ErrUnauthorized)
}
