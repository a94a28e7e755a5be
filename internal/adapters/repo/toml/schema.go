package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Session *sessionSchema `toml:"session,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	UID         string `toml:"uid"`
	DisplayName string `toml:"display_name"`
	PhotoURL    string `toml:"photo_url,omitempty"`
	Email       string `toml:"email,omitempty"`
	Provider    string `toml:"provider"`
	SignedInAt  string `toml:"signed_in_at"`
	SecretRef   string `toml:"secret_ref"`
}
