package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	maxOAuthResponseBytes = 1 << 20
	callbackPath          = "/auth/callback"
	defaultPrompt         = "select_account"
)

var (
	ErrStateMismatch   = errors.New("oauth callback state mismatch")
	ErrCallbackTimeout = errors.New("timed out waiting for oauth callback")
	ErrMissingState    = errors.New("expected state is required")
)

type AuthorizationRequest struct {
	AuthURL       string
	ClientID      string
	RedirectURI   string
	Scopes        []string
	State         string
	CodeChallenge string
	// Prompt defaults to "select_account" so a signed-out user can pick an identity.
	Prompt string
}

type TokenExchangeRequest struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Code         string
	CodeVerifier string
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// requireFields returns an error naming the first empty value. Pairs are
// label then value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%s is required", pairs[i])
		}
	}
	return nil
}

func BuildAuthorizationURL(req AuthorizationRequest) (string, error) {
	if err := requireFields(
		"auth url", req.AuthURL,
		"client id", req.ClientID,
		"redirect uri", req.RedirectURI,
		"state", req.State,
		"code challenge", req.CodeChallenge,
	); err != nil {
		return "", err
	}

	authURL, err := parseHTTPURL("auth", req.AuthURL)
	if err != nil {
		return "", err
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	query := authURL.Query()
	for key, value := range map[string]string{
		"response_type":         "code",
		"client_id":             req.ClientID,
		"redirect_uri":          req.RedirectURI,
		"state":                 req.State,
		"code_challenge":        req.CodeChallenge,
		"code_challenge_method": PKCEChallengeMethodS256,
		"access_type":           "offline",
		"prompt":                prompt,
	} {
		query.Set(key, value)
	}
	if len(req.Scopes) > 0 {
		query.Set("scope", strings.Join(req.Scopes, " "))
	}
	authURL.RawQuery = query.Encode()

	return authURL.String(), nil
}

// CallbackServer receives the single authorization-code redirect of a
// browser sign-in on a loopback port.
type CallbackServer struct {
	state     string
	listener  net.Listener
	server    *http.Server
	results   chan callbackResult
	sendOnce  sync.Once
	closeOnce sync.Once
}

type callbackResult struct {
	code string
	err  error
}

func StartCallbackServer(listenAddr string, expectedState string) (*CallbackServer, error) {
	if expectedState == "" {
		return nil, ErrMissingState
	}
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen callback server: %w", err)
	}

	cb := &CallbackServer{
		state:    expectedState,
		listener: listener,
		results:  make(chan callbackResult, 1),
	}

	router := chi.NewRouter()
	router.Get(callbackPath, cb.handleCallback)
	cb.server = &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := cb.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cb.deliver(callbackResult{err: err})
		}
	}()

	return cb, nil
}

func (c *CallbackServer) RedirectURI() string {
	port := 0
	if addr, ok := c.listener.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	return (&url.URL{Scheme: "http", Host: net.JoinHostPort("127.0.0.1", fmt.Sprint(port)), Path: callbackPath}).String()
}

// WaitForCode blocks until the provider redirects back, the timeout elapses or
// ctx is cancelled. The server is closed on return.
func (c *CallbackServer) WaitForCode(ctx context.Context, timeout time.Duration) (string, error) {
	defer c.Close()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-c.results:
		return result.code, result.err
	case <-timer.C:
		return "", ErrCallbackTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *CallbackServer) Close() error {
	var err error
	c.closeOnce.Do(func() { err = c.server.Close() })
	return err
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	code, err := readCallback(r.URL.Query(), c.state)
	c.deliver(callbackResult{code: code, err: err})
	if err != nil {
		http.Error(w, "sign-in failed", http.StatusBadRequest)
		return
	}
	_, _ = io.WriteString(w, "Signed in to pdx. You can close this window.")
}

// readCallback validates the redirect query and returns the authorization code.
func readCallback(query url.Values, expectedState string) (string, error) {
	if query.Get("state") != expectedState {
		return "", ErrStateMismatch
	}
	if oauthErr := query.Get("error"); oauthErr != "" {
		if description := query.Get("error_description"); description != "" {
			return "", fmt.Errorf("%s: %s", oauthErr, description)
		}
		return "", errors.New(oauthErr)
	}
	code := query.Get("code")
	if code == "" {
		return "", errors.New("missing authorization code")
	}
	return code, nil
}

func (c *CallbackServer) deliver(result callbackResult) {
	c.sendOnce.Do(func() { c.results <- result })
}

func ExchangeCodeForTokens(ctx context.Context, client *http.Client, req TokenExchangeRequest) (Tokens, error) {
	if err := requireFields(
		"token url", req.TokenURL,
		"client id", req.ClientID,
		"redirect uri", req.RedirectURI,
		"authorization code", req.Code,
		"code verifier", req.CodeVerifier,
	); err != nil {
		return Tokens{}, err
	}

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {req.Code},
		"redirect_uri":  {req.RedirectURI},
		"client_id":     {req.ClientID},
		"code_verifier": {req.CodeVerifier},
	}
	if req.ClientSecret != "" {
		form.Set("client_secret", req.ClientSecret)
	}

	return postTokenForm(ctx, client, req.TokenURL, form)
}

func postTokenForm(ctx context.Context, client *http.Client, endpoint string, form url.Values) (Tokens, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Tokens{}, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return Tokens{}, fmt.Errorf("request tokens: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return Tokens{}, fmt.Errorf("token endpoint returned %s", decodeOAuthError(resp))
	}

	var tokens Tokens
	if err := decodeJSON(resp.Body, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("decode token response: %w", err)
	}
	if tokens.AccessToken == "" {
		return Tokens{}, errors.New("token response missing access_token")
	}

	return tokens, nil
}

// decodeJSON reads at most maxOAuthResponseBytes of body into v.
func decodeJSON(body io.Reader, v any) error {
	return json.NewDecoder(io.LimitReader(body, maxOAuthResponseBytes)).Decode(v)
}

func parseHTTPURL(label string, raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	switch {
	case err != nil:
		return nil, fmt.Errorf("parse %s url: %w", label, err)
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		return nil, fmt.Errorf("%s url must use http or https", label)
	case parsed.Host == "":
		return nil, fmt.Errorf("%s url host is required", label)
	}
	return parsed, nil
}
