package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	authadapter "github.com/bnema/pokedex-cli/internal/adapters/auth"
	"github.com/bnema/pokedex-cli/internal/adapters/pokeapi"
	tomlrepo "github.com/bnema/pokedex-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/pokedex-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/pokedex-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/pokedex-cli/internal/adapters/secrets/pass"
	"github.com/bnema/pokedex-cli/internal/application"
	"github.com/bnema/pokedex-cli/internal/config"
	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

var errMissingClientID = fmt.Errorf("%s is not configured (set PDX_AUTH_CLIENT_ID)", config.KeyAuthClientID)

type app struct {
	cfg        config.Config
	logger     *zap.Logger
	catalog    *application.CatalogService
	details    *application.DetailService
	sessions   ports.SessionStore
	secrets    ports.SecretStore
	httpClient *http.Client
	clock      ports.Clock
}

func (a *app) wire(configPath string, logger *zap.Logger) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	policy, err := application.ParsePartialFailurePolicy(cfg.Detail.PartialFailure)
	if err != nil {
		return err
	}

	sessions, err := tomlrepo.NewRepository(v)
	if err != nil {
		return fmt.Errorf("wire session repository: %w", err)
	}

	secrets, err := newSecretStore(cfg.Secrets, logger)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	api := pokeapi.NewClient(cfg.API.BaseURL, pokeapi.WithTimeout(cfg.API.Timeout))

	a.cfg = cfg
	a.logger = logger
	a.catalog = application.NewCatalogService(api, logger)
	a.details = application.NewDetailService(api, logger, application.WithPartialFailurePolicy(policy))
	a.sessions = sessions
	a.secrets = secrets
	a.httpClient = &http.Client{Timeout: 30 * time.Second}
	a.clock = ports.SystemClock{}

	return nil
}

func newSecretStore(cfg config.SecretsConfig, logger *zap.Logger) (ports.SecretStore, error) {
	switch cfg.Backend {
	case config.SecretsBackendPass:
		return passstore.NewStore(), nil
	case config.SecretsBackendFile:
		return filestore.NewStore(cfg.Dir), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.Dir, logger)
	}
}

// sessionService builds the session service around an identity provider
// whose prompts are written to out, and restores the stored session.
func (a *app) sessionService(ctx context.Context, out io.Writer, device bool) (*application.SessionService, error) {
	identity, err := a.identity(out, device)
	if err != nil {
		return nil, err
	}

	service := application.NewSessionService(identity, a.sessions, a.secrets, a.logger)
	if _, err := service.Restore(ctx); err != nil {
		return nil, err
	}
	return service, nil
}

func (a *app) identity(out io.Writer, device bool) (ports.IdentityProvider, error) {
	if a.cfg.Auth.ClientID == "" {
		return unconfiguredIdentity{httpClient: a.httpClient, revokeURL: a.cfg.Auth.RevokeURL}, nil
	}

	cfg := authadapter.DefaultConfig()
	cfg.AuthURL = a.cfg.Auth.AuthURL
	cfg.TokenURL = a.cfg.Auth.TokenURL
	cfg.UserInfoURL = a.cfg.Auth.UserInfoURL
	cfg.RevokeURL = a.cfg.Auth.RevokeURL
	cfg.DeviceCodeURL = a.cfg.Auth.DeviceCodeURL
	cfg.ClientID = a.cfg.Auth.ClientID
	cfg.ClientSecret = a.cfg.Auth.ClientSecret
	cfg.ListenAddr = a.cfg.Auth.ListenAddr
	cfg.Timeout = a.cfg.Auth.Timeout
	cfg.UseDeviceFlow = device

	return authadapter.NewProvider(cfg, a.httpClient, func(p authadapter.Prompt) {
		if p.UserCode != "" {
			_, _ = fmt.Fprintf(out, "Open %s and enter code %s\n", p.URL, p.UserCode)
			return
		}
		_, _ = fmt.Fprintf(out, "Open this URL to sign in:\n%s\n", p.URL)
	})
}

// unconfiguredIdentity cannot sign in but can still revoke the tokens of a
// session stored before the client id was removed.
type unconfiguredIdentity struct {
	httpClient *http.Client
	revokeURL  string
}

func (unconfiguredIdentity) SignIn(context.Context) (ports.SignInResult, error) {
	return ports.SignInResult{}, errMissingClientID
}

func (u unconfiguredIdentity) SignOut(ctx context.Context, creds domain.Credentials) error {
	if u.revokeURL == "" {
		return nil
	}
	token := creds.RefreshToken
	if token == "" {
		token = creds.AccessToken
	}
	return authadapter.RevokeToken(ctx, u.httpClient, u.revokeURL, token)
}

func isNotSignedIn(err error) bool {
	return errors.Is(err, domain.ErrNotSignedIn)
}
