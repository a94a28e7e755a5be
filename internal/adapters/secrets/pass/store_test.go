package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pokedex-cli/internal/domain"
)

const tokenKey = "pokedex/sessions/uid-42/oauth_tokens"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "--multiline", "--force", tokenKey}, args)
			assert.Equal(t, "top-secret\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), tokenKey, "top-secret")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", tokenKey}, args)
			assert.Empty(t, input)
			return "top-secret\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "top-secret", value)
}

func TestStoreGetMissingEntryIsNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: " + tokenKey + " is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "--force", tokenKey}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), tokenKey)
	require.NoError(t, err)
}

func TestStoreDeleteMissingEntrySucceeds(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: " + tokenKey + " is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, tokenKey)
	assert.ErrorContains(t, err, "No secret key")
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreSurfacesUnavailableCommand(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "", ErrUnavailable
		},
	}

	err := store.Put(context.Background(), tokenKey, "value")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			t.Fatal("pass must not run after cancellation")
			return "", "", nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, tokenKey)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecPassReportsMissingBinary(t *testing.T) {
	t.Parallel()

	run := execPass("pdx-no-such-pass-binary")
	_, _, err := run(context.Background(), "", "show", tokenKey)
	assert.ErrorIs(t, err, ErrUnavailable)
}
