package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/pokeapitest"
)

func TestListShowsFirstPage(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "showing 4 of 4")
	assert.Contains(t, stdout, "Bulbasaur")
	assert.Contains(t, stdout, "Charmander")
	assert.NotContains(t, stdout, "More")
}

func TestListWithCardsShowsTypes(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "list", "--cards")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#001")
	assert.Contains(t, stdout, "poison")
	assert.Contains(t, stdout, "fire")
}

func TestListJSONOutput(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "list", "--format", "json", "--pages", "3")
	require.NoError(t, err)

	var page []domain.PokemonSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &page))
	assert.Len(t, page, 4)
}

func TestListRejectsZeroPages(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "list", "--pages", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--pages must be at least 1")
}

func TestListWithUnreachableIndexShowsEmptyList(t *testing.T) {
	home := t.TempDir()

	stdout, stderr, err := executeCLIWithOptions(t, home, pokeapitest.Options{FailIndex: true}, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No Pokémon to show.")
	assert.Contains(t, stderr, "load pokemon index")
}

func TestSearchSuggestsMatches(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "search", "SAUR")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bulba")
	assert.Contains(t, stdout, "venu")
	assert.NotContains(t, stdout, "charmander")

	stdout, _, err = executeCLI(t, home, "search", "charmander")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No suggestions.")
}

func TestSearchSubmitListsEveryMatch(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "search", "--submit", "--format", "yaml", "saur")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: bulbasaur")
	assert.Contains(t, stdout, "name: ivysaur")
	assert.Contains(t, stdout, "name: venusaur")
}

func TestShowRendersDetail(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "show", "Bulbasaur", "--damage")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Bulbasaur  #001")
	assert.Contains(t, stdout, "6.9kg")
	assert.Contains(t, stdout, "0.7m")
	assert.Contains(t, stdout, "Hit Point")
	assert.Contains(t, stdout, "ivysaur ›")
	assert.Contains(t, stdout, "Damage relations")
}

func TestShowShowsLoadingSpinnerMessage(t *testing.T) {
	home := t.TempDir()

	opts := pokeapitest.Options{Delays: map[string]time.Duration{"1": 200 * time.Millisecond}}
	_, stderr, err := executeCLIWithOptions(t, home, opts, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Loading 1...")
}

func TestShowStructuredOutput(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "show", "2", "--format", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"name\": \"ivysaur\"")
	assert.Contains(t, stdout, "\"previous\": \"bulbasaur\"")

	stdout, _, err = executeCLI(t, home, "show", "1", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: bulbasaur")
	assert.Contains(t, stdout, "weight_kg: 6.9")
}

func TestShowUnknownPokemonIsNotFound(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "show", "999999")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)
	assert.Contains(t, stdout, "999999 ...NOT FOUND")
}

func TestShowRejectsUnknownFormat(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "show", "1", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestShowAbortPolicyFromConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home, "[detail]\npartial_failure = \"abort\"\n"))

	stdout, _, err := executeCLIWithOptions(t, home, pokeapitest.Options{FailTypes: true}, "show", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, stdout, "1 ...NOT FOUND")

	stdout, _, err = executeCLIWithOptions(t, home, pokeapitest.Options{FailTypes: true}, "show", "1", "--config", filepath.Join(home, "missing.toml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Bulbasaur")
}

func TestWhoamiWhenSignedOut(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestLogoutWhenSignedOut(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
}

func TestLoginRequiresClientID(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--device")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Contains(t, err.Error(), "auth.client_id")
}

func TestDeviceLoginWhoamiLogout(t *testing.T) {
	identity := newFakeIdentityServer(t)
	identity.configure(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "login", "--device")
	require.NoError(t, err)
	assert.Contains(t, stdout, "enter code ABCD-EFGH")
	assert.Contains(t, stdout, "Signed in as Ash Ketchum.")

	sessionPath := filepath.Join(home, ".pokedex", "session.toml")
	require.FileExists(t, sessionPath)
	require.FileExists(t, filepath.Join(home, ".pokedex", "secrets", "pokedex", "sessions", "uid-42", "oauth_tokens"))

	stdout, _, err = executeCLI(t, home, "login", "--device")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Already signed in as Ash Ketchum.")

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ash Ketchum")
	assert.Contains(t, stdout, "ash@example.com")
	assert.Contains(t, stdout, "google.com")

	stdout, _, err = executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out.")
	assert.Equal(t, "rt", identity.revoked.Load())
	assert.NoFileExists(t, sessionPath)

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "pdx dev\n", stdout)

	stdout, _, err = executeCLI(t, home, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommand(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "pool")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"pool\"")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithOptions(t, home, pokeapitest.Options{}, args...)
}

func executeCLIWithOptions(t *testing.T, home string, opts pokeapitest.Options, args ...string) (string, string, error) {
	t.Helper()

	upstream := pokeapitest.NewServer(pokeapitest.Starters(), opts)
	t.Cleanup(upstream.Close)

	t.Setenv("HOME", home)
	t.Setenv("PDX_API_BASE_URL", upstream.BaseURL())
	t.Setenv("PDX_SECRETS_BACKEND", "file")

	root := NewRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFixture(home string, content string) error {
	configDir := filepath.Join(home, ".pokedex")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o600)
}

type fakeIdentityServer struct {
	*httptest.Server
	revoked atomic.Value
}

func newFakeIdentityServer(t *testing.T) *fakeIdentityServer {
	t.Helper()

	fake := &fakeIdentityServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /device/code", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"device_code":"dc","user_code":"ABCD-EFGH","verification_url":"https://example.com/device","interval":1}`))
	})
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"uid-42","name":"Ash Ketchum","email":"ash@example.com"}`))
	})
	mux.HandleFunc("POST /revoke", func(_ http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err == nil {
			fake.revoked.Store(r.Form.Get("token"))
		}
	})
	fake.Server = httptest.NewServer(mux)
	t.Cleanup(fake.Close)

	return fake
}

func (f *fakeIdentityServer) configure(t *testing.T) {
	t.Helper()

	t.Setenv("PDX_AUTH_CLIENT_ID", "pdx-test-client")
	t.Setenv("PDX_AUTH_DEVICE_CODE_URL", f.URL+"/device/code")
	t.Setenv("PDX_AUTH_TOKEN_URL", f.URL+"/token")
	t.Setenv("PDX_AUTH_USERINFO_URL", f.URL+"/userinfo")
	t.Setenv("PDX_AUTH_REVOKE_URL", f.URL+"/revoke")
}
