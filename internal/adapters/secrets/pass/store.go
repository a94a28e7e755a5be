// Package pass keeps session tokens in the user's password-store, encrypted
// with their gpg key, by shelling out to the pass CLI.
package pass

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

// pass prints this on stderr for show and rm of an unknown entry.
const missingEntryMarker = "is not in the password store"

type runner func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run runner
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: execPass("pass")}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	_, err := s.do(ctx, "put", key, value+"\n", "insert", "--multiline", "--force", key)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	out, err := s.do(ctx, "get", key, "", "show", key)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\r\n"), nil
}

// Delete treats a missing entry as already deleted.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.do(ctx, "delete", key, "", "rm", "--force", key)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}
	return err
}

// do runs pass and maps a missing entry to domain.ErrSecretNotFound.
func (s *Store) do(ctx context.Context, op string, key string, input string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, input, args...)
	switch {
	case err == nil:
		return stdout, nil
	case strings.Contains(stderr, missingEntryMarker):
		return "", fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	case stderr == "":
		return "", fmt.Errorf("pass %s %q: %w", op, key, err)
	default:
		return "", fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	}
}

func execPass(name string) runner {
	return func(ctx context.Context, input string, args ...string) (string, string, error) {
		path, err := exec.LookPath(name)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return "", "", ErrUnavailable
			}
			return "", "", fmt.Errorf("locate %s command: %w", name, err)
		}

		cmd := exec.CommandContext(ctx, path, args...)
		if input != "" {
			cmd.Stdin = strings.NewReader(input)
		}

		var stdout, stderr strings.Builder
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err = cmd.Run()
		return stdout.String(), strings.TrimSpace(stderr.String()), err
	}
}
