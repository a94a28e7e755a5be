package domain

import "time"

// UserSession is the signed-in identity mirrored into durable storage.
type UserSession struct {
	UID         string
	DisplayName string
	PhotoURL    string
	Email       string
	Provider    string
	SignedInAt  time.Time
	// SecretRef points to the secret-store entry holding the session tokens.
	SecretRef string
}

func (s UserSession) IsZero() bool {
	return s.UID == ""
}

type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

type AuthState string

const (
	AuthStateSignedIn  AuthState = "signed_in"
	AuthStateSignedOut AuthState = "signed_out"
)

// AuthEvent is delivered to auth-change listeners on every transition.
type AuthEvent struct {
	State   AuthState
	Session UserSession
}
