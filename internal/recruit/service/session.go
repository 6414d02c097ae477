package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/domain"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/store"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

// AuthError is returned by Login and the Register calls. Message is ready
// to show in a form's error banner.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Cause }

var ErrUnexpectedRole = errors.New("unexpected role in authentication response")

// SessionService owns the signed-in identity and its bearer token. It is the
// only writer of session state; everything else reads snapshots.
//
// Client must be set before Initialize, Login or a Register call. The client
// in turn reads the token through SessionService.Token.
type SessionService struct {
	Client *recruitsdk.Client
	Store  store.Store
	Logger *slog.Logger

	mu      sync.RWMutex
	state   domain.SessionState
	session *domain.Session

	initOnce sync.Once
	initDone chan struct{}
	initErr  error

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(*domain.Session)
}

func NewSessionService(st store.Store, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		Store:    st,
		Logger:   logger,
		initDone: make(chan struct{}),
		subs:     make(map[int]func(*domain.Session)),
	}
}

// ============================================================================
// Reads
// ============================================================================

// Token implements recruitsdk.TokenSource. It is read on every dispatch.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// CurrentUser returns a copy of the session, or nil when signed out.
func (s *SessionService) CurrentUser() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Resolved reports whether startup rehydration has finished and no sign-in
// is in flight. Guards show a placeholder until it is true.
func (s *SessionService) Resolved() bool {
	select {
	case <-s.initDone:
	default:
		return false
	}
	return s.State() != domain.StateAuthenticating
}

// Ready is closed once Initialize has finished.
func (s *SessionService) Ready() <-chan struct{} { return s.initDone }

// Subscribe calls fn with the new session (nil when signed out) after every
// change.
func (s *SessionService) Subscribe(fn func(*domain.Session)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// ============================================================================
// Lifecycle
// ============================================================================

// Initialize restores the session from the persisted token. It runs once
// per process; concurrent and later callers wait for and share the first
// result. Without a persisted token no request is made. A token the backend
// rejects is deleted.
func (s *SessionService) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		defer close(s.initDone)
		s.initErr = s.rehydrate(ctx)
	})
	<-s.initDone
	return s.initErr
}

func (s *SessionService) rehydrate(ctx context.Context) error {
	tok, err := s.Store.Get(ctx, store.KeyToken)
	if errors.Is(err, store.ErrNotFound) || (err == nil && tok == "") {
		return nil
	}
	if err != nil {
		s.Logger.Error("read persisted token failed", "error", err)
		return err
	}

	s.setState(domain.StateAuthenticating)

	user, err := s.Client.Me(ctx, recruitsdk.WithToken(tok))
	if err == nil {
		var role domain.Role
		role, err = domain.ParseRole(user.Role)
		if err == nil {
			s.replace(sessionFrom(tok, user, role))
			s.Logger.Info("session restored", "user_id", user.ID, "role", role)
			return nil
		}
	}

	s.Logger.Warn("persisted token rejected, clearing", "error", err)
	if derr := s.Store.Delete(ctx, store.KeyToken); derr != nil {
		s.Logger.Error("delete persisted token failed", "error", derr)
	}
	s.setState(domain.StateAnonymous)
	return nil
}

// Login signs in with email and password. On failure any existing session is
// left as it was.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	restore := s.beginAuth()

	resp, err := s.Client.Login(ctx, recruitsdk.LoginRequest{Email: email, Password: password})
	if err != nil {
		restore()
		return authError("Login failed", err)
	}

	role, err := domain.ParseRole(resp.User.Role)
	if err != nil {
		restore()
		return authError("Login failed", errors.Join(ErrUnexpectedRole, err))
	}

	s.establish(ctx, resp, role)
	return nil
}

// RegisterDoctor creates a doctor account and signs in as it. The session
// role is always doctor.
func (s *SessionService) RegisterDoctor(ctx context.Context, req recruitsdk.RegisterDoctorRequest) error {
	restore := s.beginAuth()

	resp, err := s.Client.RegisterDoctor(ctx, req)
	if err != nil {
		restore()
		return authError("Registration failed", err)
	}
	return s.finishRegistration(ctx, resp, domain.RoleDoctor, restore)
}

// RegisterClinic creates a clinic account and signs in as it. The session
// role is always clinic.
func (s *SessionService) RegisterClinic(ctx context.Context, req recruitsdk.RegisterClinicRequest) error {
	restore := s.beginAuth()

	resp, err := s.Client.RegisterClinic(ctx, req)
	if err != nil {
		restore()
		return authError("Registration failed", err)
	}
	return s.finishRegistration(ctx, resp, domain.RoleClinic, restore)
}

func (s *SessionService) finishRegistration(ctx context.Context, resp *recruitsdk.AuthResponse, role domain.Role, restore func()) error {
	if resp.User.Role != "" && domain.Role(resp.User.Role) != role {
		restore()
		s.Logger.Error("registration returned wrong role", "want", role, "got", resp.User.Role)
		return authError("Registration failed", ErrUnexpectedRole)
	}
	s.establish(ctx, resp, role)
	return nil
}

// Logout forgets the session in memory and on disk. Calling it while signed
// out is a no-op.
func (s *SessionService) Logout(ctx context.Context) {
	changed := s.replace(nil)
	if err := s.Store.Delete(ctx, store.KeyToken); err != nil {
		s.Logger.Error("delete persisted token failed", "error", err)
	}
	if changed {
		s.Logger.Info("signed out")
	}
}

// InvalidateToken clears the session if token is the one it holds. It
// reports whether it cleared anything, so of many concurrent 401s for the
// same session exactly one returns true. Rejections of requests sent
// without a token, or with an older token, are ignored.
func (s *SessionService) InvalidateToken(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	if s.session == nil || s.session.Token != token {
		s.mu.Unlock()
		return false
	}
	s.session = nil
	s.state = domain.StateAnonymous
	s.mu.Unlock()

	if cur, err := s.Store.Get(ctx, store.KeyToken); err == nil && cur == token {
		if err := s.Store.Delete(ctx, store.KeyToken); err != nil {
			s.Logger.Error("delete persisted token failed", "error", err)
		}
	}

	s.Logger.Warn("session invalidated by backend")
	s.notify(nil)
	return true
}

// ============================================================================
// Internals
// ============================================================================

func (s *SessionService) establish(ctx context.Context, resp *recruitsdk.AuthResponse, role domain.Role) {
	if err := s.Store.Set(ctx, store.KeyToken, resp.Token); err != nil {
		// The session still works for this process.
		s.Logger.Error("persist token failed", "error", err)
	}
	s.replace(sessionFrom(resp.Token, &resp.User, role))
	s.Logger.Info("signed in", "user_id", resp.User.ID, "role", role)
}

// beginAuth marks a sign-in in flight when nobody is signed in. The returned
// func undoes that on failure.
func (s *SessionService) beginAuth() (restore func()) {
	s.mu.Lock()
	prev := s.state
	if s.session == nil {
		s.state = domain.StateAuthenticating
	}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if s.state == domain.StateAuthenticating {
			s.state = prev
		}
		s.mu.Unlock()
	}
}

func (s *SessionService) setState(st domain.SessionState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// replace swaps the session and notifies subscribers if it changed.
func (s *SessionService) replace(next *domain.Session) bool {
	s.mu.Lock()
	prev := s.session
	s.session = next
	if next != nil {
		s.state = domain.StateAuthenticated
	} else {
		s.state = domain.StateAnonymous
	}
	s.mu.Unlock()

	if prev == nil && next == nil {
		return false
	}
	var snap *domain.Session
	if next != nil {
		cp := *next
		snap = &cp
	}
	s.notify(snap)
	return true
}

func (s *SessionService) notify(snap *domain.Session) {
	s.subMu.Lock()
	fns := make([]func(*domain.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func sessionFrom(token string, u *recruitsdk.User, role domain.Role) *domain.Session {
	return &domain.Session{
		UserID:      u.ID,
		DisplayName: u.Name,
		Email:       u.Email,
		Role:        role,
		Token:       token,
	}
}

func authError(fallback string, err error) *AuthError {
	msg := fallback
	var (
		se *recruitsdk.ServerError
		ne *recruitsdk.NetworkError
		ce *recruitsdk.ClientError
	)
	if errors.As(err, &se) || errors.As(err, &ne) || errors.As(err, &ce) {
		if m := recruitsdk.Message(err); m != "" {
			msg = m
		}
	}
	return &AuthError{Message: msg, Cause: err}
}
