package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/tonimelisma/yadisk-client/pkg/yadisk"
	"golang.org/x/oauth2"
)

// refreshingSource trades the stored refresh token for a new token through
// the SDK. Yandex may answer without a refresh token, in which case the old
// one stays valid and is kept.
type refreshingSource struct {
	ctx          context.Context
	sdk          SDK
	refreshToken string
}

func (s refreshingSource) Token() (*oauth2.Token, error) {
	if s.refreshToken == "" {
		return nil, fmt.Errorf("token expired and no refresh token is stored: %w", ErrNotLoggedIn)
	}
	token, err := s.sdk.RefreshToken(s.ctx, s.refreshToken)
	if err != nil {
		return nil, err
	}
	if token.RefreshToken == "" {
		token.RefreshToken = s.refreshToken
	}
	return (*oauth2.Token)(token), nil
}

// persistingTokenSource saves every token that differs from the last one it
// handed out, so a refresh done in one command is reused by the next.
type persistingTokenSource struct {
	base oauth2.TokenSource
	save func(yadisk.Token) error

	mu   sync.Mutex
	last yadisk.Token
}

func newPersistingTokenSource(base oauth2.TokenSource, current yadisk.Token, save func(yadisk.Token) error) *persistingTokenSource {
	return &persistingTokenSource{base: base, last: current, save: save}
}

// Token returns the base source's token. A failed save is only logged.
func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken == s.last.AccessToken && token.RefreshToken == s.last.RefreshToken {
		return token, nil
	}

	s.last = yadisk.Token(*token)
	if s.save != nil {
		if err := s.save(s.last); err != nil {
			log.Printf("Warning: could not persist refreshed token: %v", err)
		}
	}
	return token, nil
}
