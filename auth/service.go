package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-microblog-client/api"
	"github.com/jrsteele09/go-microblog-client/internal/apierrors"
	"github.com/jrsteele09/go-microblog-client/token"
	"github.com/jrsteele09/go-microblog-client/transport"
)

// Credentials are the login form values. RememberMe selects the durable
// storage scope for the issued token pair.
type Credentials struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// State is the observable session snapshot. Initialized becomes true
// exactly once, after the first auth check resolves; consumers gate on
// it to avoid acting on a session that has not been checked yet.
type State struct {
	User        *api.User
	LoggedIn    bool
	Initialized bool
}

// Service is the single source of truth for whether someone is logged
// in, and who. All mutation goes through Login, Logout and
// CheckAuthStatus; the pipeline escalates fatal refresh failures here.
type Service struct {
	client  *transport.Client
	tokens  *token.Manager
	logger  zerolog.Logger
	nowTime func() time.Time

	lock  sync.RWMutex
	state State
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) { s.nowTime = nowFunc }
}

// NewService initializes the session service and registers it as the
// pipeline's auth-failure handler.
func NewService(client *transport.Client, tokens *token.Manager, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] transport client is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token manager is required")
	}

	s := &Service{
		client:  client,
		tokens:  tokens,
		logger:  log.Logger,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	client.OnAuthFailure(s.handleAuthFailure)
	return s, nil
}

// State returns a copy of the current session snapshot.
func (s *Service) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()

	snapshot := s.state
	if s.state.User != nil {
		user := *s.state.User
		snapshot.User = &user
	}
	return snapshot
}

// Login authenticates with the API, stores the issued token pair in the
// scope chosen by RememberMe, and flips the session to logged in. On
// failure the session is left unchanged.
func (s *Service) Login(ctx context.Context, creds Credentials) (*api.User, error) {
	var resp api.LoginResponse
	err := s.client.DoJSON(ctx, http.MethodPost, "login", map[string]Credentials{"session": creds}, &resp)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusUnauthorized:
				return nil, apierrors.Wrapf(apierrors.ErrInvalidCredentials, "[Service.Login] %s", apiErr.Error())
			case http.StatusForbidden:
				return nil, apierrors.Wrapf(apierrors.ErrAccountInactive, "[Service.Login] %s", apiErr.Error())
			}
		}
		return nil, errors.Wrap(err, "[Service.Login]")
	}

	if resp.Tokens == nil || resp.Tokens.Access.Token == "" {
		return nil, apierrors.Wrapf(apierrors.ErrMalformedResponse, "[Service.Login] invalid response from server")
	}

	pair := token.Pair{
		AccessToken:  resp.Tokens.Access.Token,
		RefreshToken: resp.Tokens.Refresh.Token,
		Persist:      creds.RememberMe,
	}
	if err := s.tokens.Set(pair); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] store tokens")
	}

	s.lock.Lock()
	s.state.User = resp.User
	s.state.LoggedIn = true
	s.lock.Unlock()

	if expiry := s.tokens.Expiry(pair.AccessToken); !expiry.IsZero() {
		s.logger.Debug().Dur("expires_in", expiry.Sub(s.nowTime())).Msg("logged in")
	}
	return resp.User, nil
}

// Logout tells the API to end the session and unconditionally clears
// tokens and session state. A failed remote call is logged, not
// surfaced. Safe to call repeatedly.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.client.DoJSON(ctx, http.MethodDelete, "logout", nil, nil); err != nil {
		s.logger.Warn().Err(err).Msg("logout call failed")
	}

	err := s.tokens.Clear()

	s.lock.Lock()
	s.state.User = nil
	s.state.LoggedIn = false
	s.lock.Unlock()

	return errors.Wrap(err, "[Service.Logout] clear tokens")
}

// CheckAuthStatus resolves the initial session state at startup. With
// no stored token it initializes immediately, without a network call.
// Otherwise it asks the who-am-I endpoint; any failure, 401 included,
// resolves silently to logged out. Initialized is true in every branch.
func (s *Service) CheckAuthStatus(ctx context.Context) error {
	pair, err := s.tokens.Get()
	if err != nil {
		s.logger.Warn().Err(err).Msg("token read failed during auth check")
	}
	if pair == nil {
		s.setState(nil, false)
		return nil
	}

	if s.tokens.Expired(pair.AccessToken) {
		s.logger.Debug().Msg("stored access token expired, refresh will occur on demand")
	}

	var resp api.SessionResponse
	if err := s.client.DoJSON(ctx, http.MethodGet, "sessions", nil, &resp); err != nil || resp.User == nil {
		if err != nil {
			s.logger.Debug().Err(err).Msg("auth check failed, treating as logged out")
		}
		s.setState(nil, false)
		return nil
	}

	s.setState(resp.User, true)
	return nil
}

func (s *Service) setState(user *api.User, loggedIn bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.state.User = user
	s.state.LoggedIn = loggedIn
	s.state.Initialized = true
}

// handleAuthFailure is invoked by the pipeline when a token refresh
// fails. The pipeline has already cleared stored tokens; this resets
// the in-memory session to logged out.
func (s *Service) handleAuthFailure() {
	s.lock.Lock()
	s.state.User = nil
	s.state.LoggedIn = false
	s.lock.Unlock()
	s.logger.Debug().Msg("session expired, logged out")
}
