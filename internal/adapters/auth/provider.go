package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

const (
	GoogleAuthURL       = "https://accounts.google.com/o/oauth2/v2/auth"
	GoogleTokenURL      = "https://oauth2.googleapis.com/token"
	GoogleUserInfoURL   = "https://openidconnect.googleapis.com/v1/userinfo"
	GoogleRevokeURL     = "https://oauth2.googleapis.com/revoke"
	GoogleDeviceCodeURL = "https://oauth2.googleapis.com/device/code"
	GoogleProviderName  = "google.com"
)

var DefaultScopes = []string{"openid", "profile", "email"}

type Config struct {
	ProviderName  string
	AuthURL       string
	TokenURL      string
	UserInfoURL   string
	RevokeURL     string
	DeviceCodeURL string
	ClientID      string
	ClientSecret  string
	Scopes        []string
	ListenAddr    string
	Timeout       time.Duration
	// UseDeviceFlow switches SignIn to the device authorization grant.
	UseDeviceFlow bool
}

func DefaultConfig() Config {
	return Config{
		ProviderName:  GoogleProviderName,
		AuthURL:       GoogleAuthURL,
		TokenURL:      GoogleTokenURL,
		UserInfoURL:   GoogleUserInfoURL,
		RevokeURL:     GoogleRevokeURL,
		DeviceCodeURL: GoogleDeviceCodeURL,
		Scopes:        DefaultScopes,
		ListenAddr:    "127.0.0.1:0",
		Timeout:       5 * time.Minute,
	}
}

// Prompt is what the user must act on to finish signing in: a URL to open
// and, for the device flow, a code to type.
type Prompt struct {
	URL      string
	UserCode string
}

type Provider struct {
	cfg        Config
	httpClient *http.Client
	announce   func(Prompt)
	now        func() time.Time
}

var _ ports.IdentityProvider = (*Provider)(nil)

func NewProvider(cfg Config, httpClient *http.Client, announce func(Prompt)) (*Provider, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, errors.New("identity client id is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if announce == nil {
		announce = func(Prompt) {}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = GoogleProviderName
	}

	return &Provider{cfg: cfg, httpClient: httpClient, announce: announce, now: time.Now}, nil
}

func (p *Provider) SignIn(ctx context.Context) (ports.SignInResult, error) {
	var (
		tokens Tokens
		err    error
	)
	if p.cfg.UseDeviceFlow {
		tokens, err = p.deviceTokens(ctx)
	} else {
		tokens, err = p.browserTokens(ctx)
	}
	if err != nil {
		return ports.SignInResult{}, err
	}

	info, err := FetchUserInfo(ctx, p.httpClient, p.cfg.UserInfoURL, tokens.AccessToken)
	if err != nil {
		return ports.SignInResult{}, err
	}

	now := p.now().UTC()
	creds := domain.Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		IDToken:      tokens.IDToken,
		TokenType:    tokens.TokenType,
	}
	if tokens.ExpiresIn > 0 {
		creds.ExpiresAt = now.Add(time.Duration(tokens.ExpiresIn) * time.Second).Unix()
	}

	return ports.SignInResult{
		Session: domain.UserSession{
			UID:         info.Subject,
			DisplayName: info.Name,
			PhotoURL:    info.Picture,
			Email:       info.Email,
			Provider:    p.cfg.ProviderName,
			SignedInAt:  now,
		},
		Credentials: creds,
	}, nil
}

// SignOut revokes the refresh token when present, since that also
// invalidates the access tokens minted from it.
func (p *Provider) SignOut(ctx context.Context, creds domain.Credentials) error {
	if p.cfg.RevokeURL == "" {
		return nil
	}
	token := creds.RefreshToken
	if token == "" {
		token = creds.AccessToken
	}
	return RevokeToken(ctx, p.httpClient, p.cfg.RevokeURL, token)
}

func (p *Provider) browserTokens(ctx context.Context) (Tokens, error) {
	pkce, err := NewPKCEPair()
	if err != nil {
		return Tokens{}, fmt.Errorf("generate pkce pair: %w", err)
	}
	state, err := NewState()
	if err != nil {
		return Tokens{}, fmt.Errorf("generate state: %w", err)
	}

	callback, err := StartCallbackServer(p.cfg.ListenAddr, state)
	if err != nil {
		return Tokens{}, err
	}
	defer func() { _ = callback.Close() }()

	authURL, err := BuildAuthorizationURL(AuthorizationRequest{
		AuthURL:       p.cfg.AuthURL,
		ClientID:      p.cfg.ClientID,
		RedirectURI:   callback.RedirectURI(),
		Scopes:        p.cfg.Scopes,
		State:         state,
		CodeChallenge: pkce.Challenge,
	})
	if err != nil {
		return Tokens{}, err
	}
	p.announce(Prompt{URL: authURL})

	code, err := callback.WaitForCode(ctx, p.cfg.Timeout)
	if err != nil {
		return Tokens{}, err
	}

	return ExchangeCodeForTokens(ctx, p.httpClient, TokenExchangeRequest{
		TokenURL:     p.cfg.TokenURL,
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		RedirectURI:  callback.RedirectURI(),
		Code:         code,
		CodeVerifier: pkce.Verifier,
	})
}

func (p *Provider) deviceTokens(ctx context.Context) (Tokens, error) {
	flow := DeviceFlow{
		DeviceCodeURL: p.cfg.DeviceCodeURL,
		TokenURL:      p.cfg.TokenURL,
		ClientID:      p.cfg.ClientID,
		ClientSecret:  p.cfg.ClientSecret,
		HTTPClient:    p.httpClient,
	}

	code, err := flow.RequestDeviceCode(ctx, p.cfg.Scopes)
	if err != nil {
		return Tokens{}, err
	}
	p.announce(Prompt{URL: code.VerificationURL, UserCode: code.UserCode})

	return flow.PollToken(ctx, code, p.cfg.Timeout)
}
