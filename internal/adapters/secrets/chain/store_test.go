package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pokedex-cli/internal/domain"
	portmocks "github.com/bnema/pokedex-cli/internal/ports/mocks"
)

const tokenKey = "pokedex/sessions/uid-42/oauth_tokens"

func newChain(t *testing.T) (*portmocks.MockSecretStore, *portmocks.MockSecretStore, *Store) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback, nil)
	require.NoError(t, err)

	return primary, fallback, store
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, portmocks.NewMockSecretStore(t), nil)
	assert.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil, nil)
	assert.ErrorIs(t, err, errNilFallbackStore)
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary, _, store := newChain(t)
	primary.On("Get", mock.Anything, tokenKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newChain(t)
	primary.On("Get", mock.Anything, tokenKey).Return("", errors.New("pass unavailable")).Once()
	fallback.On("Get", mock.Anything, tokenKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetNotFoundInBothBackends(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newChain(t)
	primary.On("Get", mock.Anything, tokenKey).Return("", domain.ErrSecretNotFound).Once()
	fallback.On("Get", mock.Anything, tokenKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.NotContains(t, err.Error(), "primary backend")
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newChain(t)
	primary.On("Get", mock.Anything, tokenKey).Return("", errors.New("pass failed")).Once()
	fallback.On("Get", mock.Anything, tokenKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newChain(t)
	primary.On("Put", mock.Anything, tokenKey, "value").Return(errors.New("pass unavailable")).Once()
	fallback.On("Put", mock.Anything, tokenKey, "value").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), tokenKey, "value"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary, _, store := newChain(t)
	primary.On("Put", mock.Anything, tokenKey, "value").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), tokenKey, "value"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newChain(t)
	primary.On("Delete", mock.Anything, tokenKey).Return(nil).Once()
	fallback.On("Delete", mock.Anything, tokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreDeleteToleratesOneFailingBackend(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newChain(t)
	primary.On("Delete", mock.Anything, tokenKey).Return(errors.New("pass unavailable")).Once()
	fallback.On("Delete", mock.Anything, tokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreDeleteFailsWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newChain(t)
	primary.On("Delete", mock.Anything, tokenKey).Return(errors.New("pass failed")).Once()
	fallback.On("Delete", mock.Anything, tokenKey).Return(errors.New("disk failed")).Once()

	err := store.Delete(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary, _, store := newChain(t)
	primary.On("Get", mock.Anything, tokenKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), tokenKey)
	assert.ErrorIs(t, err, context.Canceled)
}
