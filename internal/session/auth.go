// Package session (auth.go) stores a pending login: either a device code
// waiting for the user to confirm it, or the PKCE verifier of a browser
// login waiting for its confirmation code.
package session

import "time"

const authSessionFile = "auth_session.json"

// Login flows a pending AuthState can belong to.
const (
	FlowDevice = "device"
	FlowPKCE   = "pkce"
)

// AuthState is a login started by 'auth login' and not yet completed.
type AuthState struct {
	Flow            string    `json:"flow"`
	DeviceCode      string    `json:"device_code,omitempty"`
	UserCode        string    `json:"user_code,omitempty"`
	VerificationURL string    `json:"verification_url,omitempty"`
	Interval        int       `json:"interval,omitempty"`
	CodeVerifier    string    `json:"code_verifier,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Expired reports whether the pending login can no longer be completed.
func (s *AuthState) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SaveAuthState persists the pending login.
func (m *Manager) SaveAuthState(state *AuthState) error {
	return m.save(authSessionFile, state)
}

// LoadAuthState returns the pending login, or nil when there is none or it
// has expired. An expired state is removed.
func (m *Manager) LoadAuthState() (*AuthState, error) {
	var state AuthState
	found, err := m.load(authSessionFile, &state)
	if err != nil || !found {
		return nil, err
	}
	if state.Expired(time.Now()) {
		_ = m.DeleteAuthState()
		return nil, nil
	}
	return &state, nil
}

// DeleteAuthState removes the pending login.
func (m *Manager) DeleteAuthState() error {
	return m.remove(authSessionFile)
}
