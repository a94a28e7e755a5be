// Package chain prefers the pass store for session tokens and falls back to
// private files when pass is missing or broken.
package chain

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	filestore "github.com/bnema/pokedex-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/pokedex-cli/internal/adapters/secrets/pass"
	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   *zap.Logger
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, logger *zap.Logger) (*Store, error) {
	switch {
	case primary == nil:
		return nil, errNilPrimaryStore
	case fallback == nil:
		return nil, errNilFallbackStore
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{primary: primary, fallback: fallback, logger: logger.Named("secrets")}, nil
}

// NewPassFirstWithFileFallback is the "auto" secrets backend.
func NewPassFirstWithFileFallback(fileRoot string, logger *zap.Logger) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot), logger)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	primaryErr := s.primary.Put(ctx, key, value)
	if primaryErr == nil || interrupted(primaryErr) {
		return primaryErr
	}
	s.logger.Debug("pass put failed, writing to file backend", zap.String("key", key), zap.Error(primaryErr))

	return backendError("put", primaryErr, s.fallback.Put(ctx, key, value))
}

// Get wraps domain.ErrSecretNotFound only when neither backend holds key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, primaryErr := s.primary.Get(ctx, key)
	if primaryErr == nil || interrupted(primaryErr) {
		return value, primaryErr
	}

	value, fallbackErr := s.fallback.Get(ctx, key)
	if errors.Is(primaryErr, domain.ErrSecretNotFound) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}
	if err := backendError("get", primaryErr, fallbackErr); err != nil {
		return "", err
	}
	return value, nil
}

// Delete always clears both backends so a token written to the fallback
// does not survive logout. One failing backend is tolerated.
func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if interrupted(primaryErr) {
		return primaryErr
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if primaryErr != nil && fallbackErr != nil {
		return backendError("delete", primaryErr, fallbackErr)
	}
	if primaryErr != nil {
		s.logger.Debug("pass delete failed", zap.String("key", key), zap.Error(primaryErr))
	}
	return nil
}

// backendError reports the fallback outcome, keeping the primary cause.
func backendError(op string, primaryErr error, fallbackErr error) error {
	if fallbackErr == nil {
		return nil
	}
	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", op, primaryErr, op, fallbackErr)
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
