// Package file keeps secrets as individual 0600 files under a private root,
// for machines without a pass store.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

const (
	storeDirMode   = 0o700
	secretFileMode = 0o600
	tempPattern    = ".secret-*.tmp"
)

var errEmptyKey = errors.New("secret key is empty")

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create secrets directory: %w", err)
	}
	if err := writeAtomic(path, value); err != nil {
		return fmt.Errorf("store secret %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
	case err != nil:
		return "", fmt.Errorf("read secret %q: %w", key, err)
	}
	return string(data), nil
}

// Delete removes the secret and any directories it leaves empty below root.
func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove secret %q: %w", key, err)
	}
	s.pruneEmptyParents(filepath.Dir(path))
	return nil
}

func (s *Store) pruneEmptyParents(dir string) {
	for dir != s.root && strings.HasPrefix(dir, s.root+string(filepath.Separator)) {
		if os.Remove(dir) != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// resolve maps key to a path inside root. Keys may contain slashes but never
// escape root.
func (s *Store) resolve(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errEmptyKey
	}
	cleaned := filepath.Clean(trimmed)
	if cleaned == "." || filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid secret key %q", key)
	}
	return filepath.Join(s.root, cleaned), nil
}

// writeAtomic replaces path through a temp file in the same directory so a
// reader never sees a partial token.
func writeAtomic(path string, value string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(secretFileMode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err = tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
