package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/pokedex-cli/internal/domain"
)

// TokenSecretKey is the secret-store key holding the tokens of uid.
func TokenSecretKey(uid string) string {
	return fmt.Sprintf("pokedex/sessions/%s/oauth_tokens", uid)
}

func encodeCredentials(creds domain.Credentials) (string, error) {
	payload, err := json.Marshal(creds)
	if err != nil {
		return "", fmt.Errorf("encode oauth tokens: %w", err)
	}
	return string(payload), nil
}

func decodeCredentials(secretValue string) (domain.Credentials, error) {
	var creds domain.Credentials
	if err := json.Unmarshal([]byte(secretValue), &creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("decode oauth tokens: %w", err)
	}
	if strings.TrimSpace(creds.AccessToken) == "" {
		return domain.Credentials{}, fmt.Errorf("oauth tokens missing access_token")
	}
	return creds, nil
}
