package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

const (
	SessionPathKey    = "session.path"
	sessionFileMode   = 0o600
	sessionDirMode    = 0o700
	sessionConfigDir  = ".pokedex"
	sessionConfigFile = "session.toml"
	tempFilePattern   = ".session-*.toml.tmp"
)

// Repository stores the signed-in session profile in a single toml file.
type Repository struct {
	sessionPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionStore = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(SessionPathKey, filepath.Join(homeDir, sessionConfigDir, sessionConfigFile))

	sessionPath := cfg.GetString(SessionPathKey)
	if sessionPath == "" {
		return nil, errors.New("session path is empty")
	}
	sessionPath, err = normalizeSessionPath(sessionPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionPath: sessionPath, mu: lockForPath(sessionPath)}, nil
}

func (r *Repository) Path() string {
	return r.sessionPath
}

func (r *Repository) Load(ctx context.Context) (domain.UserSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserSession{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.UserSession{}, err
	}
	if file.Session == nil || file.Session.UID == "" {
		return domain.UserSession{}, domain.ErrNotSignedIn
	}

	return fromSchema(*file.Session), nil
}

func (r *Repository) Save(ctx context.Context, session domain.UserSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session.IsZero() {
		return errors.New("session uid is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(session)
	file.Session = &encoded

	return r.writeSchema(file)
}

// Clear removes the stored session. Clearing an empty store succeeds.
func (r *Repository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sessionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeSessionPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionPath), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}
	if err := os.Rename(tempName, r.sessionPath); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	cleanup = false

	return nil
}

func toSchema(session domain.UserSession) sessionSchema {
	return sessionSchema{
		UID:         session.UID,
		DisplayName: session.DisplayName,
		PhotoURL:    session.PhotoURL,
		Email:       session.Email,
		Provider:    session.Provider,
		SignedInAt:  formatTime(session.SignedInAt),
		SecretRef:   session.SecretRef,
	}
}

func fromSchema(session sessionSchema) domain.UserSession {
	return domain.UserSession{
		UID:         session.UID,
		DisplayName: session.DisplayName,
		PhotoURL:    session.PhotoURL,
		Email:       session.Email,
		Provider:    session.Provider,
		SignedInAt:  parseTime(session.SignedInAt),
		SecretRef:   session.SecretRef,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
