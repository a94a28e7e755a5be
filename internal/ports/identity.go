package ports

import (
	"context"

	"github.com/bnema/pokedex-cli/internal/domain"
)

// IdentityProvider issues and revokes sessions against a third-party identity service.
type IdentityProvider interface {
	SignIn(ctx context.Context) (SignInResult, error)
	SignOut(ctx context.Context, credentials domain.Credentials) error
}

type SignInResult struct {
	Session     domain.UserSession
	Credentials domain.Credentials
}

// SessionStore is the durable mirror of the signed-in session. Load returns
// domain.ErrNotSignedIn when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (domain.UserSession, error)
	Save(ctx context.Context, session domain.UserSession) error
	Clear(ctx context.Context) error
}
