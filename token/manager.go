package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-microblog-client/internal/apierrors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Manager owns the token pair across both storage scopes. At most one
// scope holds a pair at a time: writing one scope clears the other, so a
// remember-me change cannot leave stale duplicates behind.
type Manager struct {
	durable Repo
	session Repo
}

// NewManager creates a token manager over the durable and session scopes.
func NewManager(durable, session Repo) (*Manager, error) {
	if durable == nil {
		return nil, errors.New("[NewManager] durable repo is required")
	}
	if session == nil {
		return nil, errors.New("[NewManager] session repo is required")
	}
	return &Manager{durable: durable, session: session}, nil
}

// Set stores the pair in the scope selected by pair.Persist and clears
// the other scope.
func (m *Manager) Set(pair Pair) error {
	target, other := m.session, m.durable
	if pair.Persist {
		target, other = m.durable, m.session
	}
	if err := other.Clear(); err != nil {
		return errors.Wrap(err, "[Manager.Set] clear other scope")
	}
	if err := target.Write(&pair); err != nil {
		return errors.Wrap(err, "[Manager.Set] write")
	}
	return nil
}

// Get returns the stored pair, reading the durable scope first and
// falling back to the session scope. Returns (nil, nil) when neither
// scope holds a token.
func (m *Manager) Get() (*Pair, error) {
	pair, err := m.durable.Read()
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Get] durable read")
	}
	if pair != nil {
		pair.Persist = true
		return pair, nil
	}
	pair, err = m.session.Read()
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Get] session read")
	}
	if pair != nil {
		pair.Persist = false
	}
	return pair, nil
}

// Update replaces the access and refresh tokens in whichever scope
// currently holds the pair. Used after a successful refresh so the
// remember-me choice made at login time is preserved.
func (m *Manager) Update(accessToken, refreshToken string) error {
	current, err := m.Get()
	if err != nil {
		return errors.Wrap(err, "[Manager.Update] get")
	}
	if current == nil {
		return apierrors.ErrNoToken
	}
	return m.Set(Pair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Persist:      current.Persist,
	})
}

// Clear removes the pair from both scopes.
func (m *Manager) Clear() error {
	if err := m.durable.Clear(); err != nil {
		return errors.Wrap(err, "[Manager.Clear] durable")
	}
	if err := m.session.Clear(); err != nil {
		return errors.Wrap(err, "[Manager.Clear] session")
	}
	return nil
}

// Expiry peeks at the access token's exp claim without verifying the
// signature (validation belongs to the server). Returns the zero time
// for opaque or claim-less tokens.
func (m *Manager) Expiry(accessToken string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// Expired reports whether the access token carries an exp claim in the
// past. Opaque tokens are never reported as expired.
func (m *Manager) Expired(accessToken string) bool {
	expiry := m.Expiry(accessToken)
	if expiry.IsZero() {
		return false
	}
	return NowTimeFunc().After(expiry)
}
