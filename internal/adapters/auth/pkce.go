package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const (
	PKCEChallengeMethodS256 = "S256"

	verifierEntropyBytes = 32
	stateEntropyBytes    = 16
)

// PKCEPair binds the token exchange to the authorization request that
// started it.
type PKCEPair struct {
	Verifier  string
	Challenge string
}

func NewPKCEPair() (PKCEPair, error) {
	verifier, err := randomURLToken(verifierEntropyBytes)
	if err != nil {
		return PKCEPair{}, fmt.Errorf("generate pkce verifier: %w", err)
	}

	return PKCEPair{Verifier: verifier, Challenge: S256Challenge(verifier)}, nil
}

// S256Challenge derives the code challenge sent with the authorization
// request from verifier.
func S256Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// NewState returns the opaque value echoed back by the provider on the
// loopback redirect.
func NewState() (string, error) {
	state, err := randomURLToken(stateEntropyBytes)
	if err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return state, nil
}

func randomURLToken(n int) (string, error) {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
