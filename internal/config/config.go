package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "PDX"

	KeyAPIBaseURL        = "api.base_url"
	KeyAPITimeout        = "api.timeout"
	KeyPartialFailure    = "detail.partial_failure"
	KeyAuthClientID      = "auth.client_id"
	KeyAuthClientSecret  = "auth.client_secret"
	KeyAuthURL           = "auth.auth_url"
	KeyAuthTokenURL      = "auth.token_url"
	KeyAuthUserInfoURL   = "auth.userinfo_url"
	KeyAuthRevokeURL     = "auth.revoke_url"
	KeyAuthDeviceCodeURL = "auth.device_code_url"
	KeyAuthListenAddr    = "auth.listen_addr"
	KeyAuthTimeout       = "auth.timeout"
	KeyServeAddr         = "serve.addr"
	KeyServeAllowAll     = "serve.allow_all_origins"
	KeySessionPath       = "session.path"
	KeySecretsBackend    = "secrets.backend"
	KeySecretsDir        = "secrets.dir"

	configDir  = ".pokedex"
	configFile = "config.toml"
)

// Secret backends accepted by secrets.backend.
const (
	SecretsBackendAuto = "auto"
	SecretsBackendPass = "pass"
	SecretsBackendFile = "file"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	API     APIConfig
	Detail  DetailConfig
	Auth    AuthConfig
	Serve   ServeConfig
	Session SessionConfig
	Secrets SecretsConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DetailConfig struct {
	// PartialFailure is "degrade" or "abort".
	PartialFailure string
}

type AuthConfig struct {
	ClientID      string
	ClientSecret  string
	AuthURL       string
	TokenURL      string
	UserInfoURL   string
	RevokeURL     string
	DeviceCodeURL string
	ListenAddr    string
	Timeout       time.Duration
}

type ServeConfig struct {
	Addr            string
	AllowAllOrigins bool
}

type SessionConfig struct {
	Path string
}

type SecretsConfig struct {
	Backend string
	Dir     string
}

// New returns a viper instance with every default registered and PDX_*
// environment overrides enabled.
func New() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	base := filepath.Join(homeDir, configDir)

	v := viper.New()
	v.SetDefault(KeyAPIBaseURL, "https://pokeapi.co/api/v2")
	v.SetDefault(KeyAPITimeout, 10*time.Second)
	v.SetDefault(KeyPartialFailure, "degrade")
	v.SetDefault(KeyAuthClientID, "")
	v.SetDefault(KeyAuthClientSecret, "")
	v.SetDefault(KeyAuthURL, "https://accounts.google.com/o/oauth2/v2/auth")
	v.SetDefault(KeyAuthTokenURL, "https://oauth2.googleapis.com/token")
	v.SetDefault(KeyAuthUserInfoURL, "https://openidconnect.googleapis.com/v1/userinfo")
	v.SetDefault(KeyAuthRevokeURL, "https://oauth2.googleapis.com/revoke")
	v.SetDefault(KeyAuthDeviceCodeURL, "https://oauth2.googleapis.com/device/code")
	v.SetDefault(KeyAuthListenAddr, "127.0.0.1:0")
	v.SetDefault(KeyAuthTimeout, 5*time.Minute)
	v.SetDefault(KeyServeAddr, "127.0.0.1:8025")
	v.SetDefault(KeyServeAllowAll, false)
	v.SetDefault(KeySessionPath, filepath.Join(base, "session.toml"))
	v.SetDefault(KeySecretsBackend, SecretsBackendAuto)
	v.SetDefault(KeySecretsDir, filepath.Join(base, "secrets"))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// DefaultPath is ~/.pokedex/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir, configFile), nil
}

// Load reads path into v when the file exists and returns the resolved
// configuration. An empty path means DefaultPath.
func Load(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIBaseURL)), "/"),
			Timeout: v.GetDuration(KeyAPITimeout),
		},
		Detail: DetailConfig{
			PartialFailure: strings.ToLower(strings.TrimSpace(v.GetString(KeyPartialFailure))),
		},
		Auth: AuthConfig{
			ClientID:      strings.TrimSpace(v.GetString(KeyAuthClientID)),
			ClientSecret:  strings.TrimSpace(v.GetString(KeyAuthClientSecret)),
			AuthURL:       v.GetString(KeyAuthURL),
			TokenURL:      v.GetString(KeyAuthTokenURL),
			UserInfoURL:   v.GetString(KeyAuthUserInfoURL),
			RevokeURL:     v.GetString(KeyAuthRevokeURL),
			DeviceCodeURL: v.GetString(KeyAuthDeviceCodeURL),
			ListenAddr:    v.GetString(KeyAuthListenAddr),
			Timeout:       v.GetDuration(KeyAuthTimeout),
		},
		Serve: ServeConfig{
			Addr:            v.GetString(KeyServeAddr),
			AllowAllOrigins: v.GetBool(KeyServeAllowAll),
		},
		Session: SessionConfig{
			Path: v.GetString(KeySessionPath),
		},
		Secrets: SecretsConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
			Dir:     v.GetString(KeySecretsDir),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyAPIBaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyAPITimeout)
	}
	if c.Auth.Timeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyAuthTimeout)
	}
	switch c.Secrets.Backend {
	case SecretsBackendAuto, SecretsBackendPass, SecretsBackendFile:
	default:
		return fmt.Errorf("%w: %s %q", ErrInvalidConfig, KeySecretsBackend, c.Secrets.Backend)
	}
	return nil
}
