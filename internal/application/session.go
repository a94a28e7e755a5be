package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// SessionService holds the signed-in session for the process and mirrors it
// to durable storage. All identity calls go through the injected provider.
type SessionService struct {
	identity ports.IdentityProvider
	sessions ports.SessionStore
	secrets  ports.SecretStore
	logger   *zap.Logger

	mu        sync.RWMutex
	current   domain.UserSession
	listeners map[int]func(domain.AuthEvent)
	nextID    int
}

func NewSessionService(identity ports.IdentityProvider, sessions ports.SessionStore, secrets ports.SecretStore, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SessionService{
		identity:  identity,
		sessions:  sessions,
		secrets:   secrets,
		logger:    logger,
		listeners: map[int]func(domain.AuthEvent){},
	}
}

// Restore loads the durable session into memory. An empty store restores the
// signed-out state without error.
func (s *SessionService) Restore(ctx context.Context) (domain.UserSession, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotSignedIn) {
			return domain.UserSession{}, fmt.Errorf("restore session: %w", err)
		}
		session = domain.UserSession{}
	}

	s.set(session)
	return session, nil
}

func (s *SessionService) Current() (domain.UserSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current, !s.current.IsZero()
}

// SignIn runs the provider flow and persists the result. Nothing changes on
// failure.
func (s *SessionService) SignIn(ctx context.Context) (domain.UserSession, error) {
	result, err := s.identity.SignIn(ctx)
	if err != nil {
		return domain.UserSession{}, fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}
	session := result.Session
	if strings.TrimSpace(session.UID) == "" {
		return domain.UserSession{}, fmt.Errorf("%w: identity provider returned no uid", domain.ErrAuthFailed)
	}

	secretValue, err := encodeCredentials(result.Credentials)
	if err != nil {
		return domain.UserSession{}, err
	}

	session.SecretRef = TokenSecretKey(session.UID)
	if err := s.secrets.Put(ctx, session.SecretRef, secretValue); err != nil {
		return domain.UserSession{}, fmt.Errorf("store session tokens: %w", err)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		if rollbackErr := s.secrets.Delete(ctx, session.SecretRef); rollbackErr != nil {
			return domain.UserSession{}, fmt.Errorf("save session and rollback stored tokens: %w", errors.Join(err, rollbackErr))
		}
		return domain.UserSession{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("signed in", zap.String("uid", session.UID), zap.String("provider", session.Provider))
	s.set(session)

	return session, nil
}

// SignOut revokes the session tokens and clears durable storage. When the
// provider refuses the revocation the session stays signed in.
func (s *SessionService) SignOut(ctx context.Context) error {
	session, ok := s.Current()
	if !ok {
		return domain.ErrNotSignedIn
	}

	creds, err := s.Credentials(ctx)
	if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return err
	}

	if err := s.identity.SignOut(ctx, creds); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if session.SecretRef != "" {
		if err := s.secrets.Delete(ctx, session.SecretRef); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
			return fmt.Errorf("delete session tokens: %w", err)
		}
	}

	s.logger.Info("signed out", zap.String("uid", session.UID))
	s.set(domain.UserSession{})

	return nil
}

// Credentials returns the stored tokens of the current session.
func (s *SessionService) Credentials(ctx context.Context) (domain.Credentials, error) {
	session, ok := s.Current()
	if !ok {
		return domain.Credentials{}, domain.ErrNotSignedIn
	}
	if session.SecretRef == "" {
		return domain.Credentials{}, fmt.Errorf("session has no token reference: %w", domain.ErrSecretNotFound)
	}

	secretValue, err := s.secrets.Get(ctx, session.SecretRef)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("load session tokens: %w", err)
	}

	return decodeCredentials(secretValue)
}

// OnAuthChange registers fn for every auth transition and returns a function
// that removes it.
func (s *SessionService) OnAuthChange(fn func(domain.AuthEvent)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Route returns the redirect target for path given the current session.
func (s *SessionService) Route(path string) (string, bool) {
	session, _ := s.Current()
	return Route(path, session)
}

// Route applies the session boundary: signed-out visitors are sent to the
// login page and signed-in visitors are sent away from it.
func Route(path string, session domain.UserSession) (string, bool) {
	onLogin := path == LoginPath
	switch {
	case session.IsZero() && !onLogin:
		return LoginPath, true
	case !session.IsZero() && onLogin:
		return HomePath, true
	default:
		return "", false
	}
}

func (s *SessionService) set(session domain.UserSession) {
	s.mu.Lock()
	s.current = session
	listeners := make([]func(domain.AuthEvent), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	event := domain.AuthEvent{State: domain.AuthStateSignedOut, Session: session}
	if !session.IsZero() {
		event.State = domain.AuthStateSignedIn
	}
	for _, fn := range listeners {
		fn(event)
	}
}
