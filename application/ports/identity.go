package ports

import (
	"context"
	"errors"
	"time"
)

// Identity provider failures the application maps to specific behavior.
var (
	// ErrEmailExists signals that an account with the same email already
	// exists at the identity provider.
	ErrEmailExists = errors.New("email already in use")

	// ErrTokenInvalid covers every verification failure: bad signature,
	// expired, revoked, or malformed token.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrIdentityNotFound signals that no identity exists for the given
	// uid or email.
	ErrIdentityNotFound = errors.New("identity not found")
)

// IdentityUser is the identity provider's view of an account.
type IdentityUser struct {
	UID         string
	Email       string
	DisplayName string
}

// SessionClaims are the verified contents of a session token.
type SessionClaims struct {
	UID      string
	Email    string
	IssuedAt time.Time
}

// IdentityProvider is the managed identity service the session flow is
// built on: it owns credentials, token issuance, verification and
// revocation. The application never inspects token internals itself.
type IdentityProvider interface {
	CreateUser(ctx context.Context, uid, email, displayName string) (*IdentityUser, error)
	GetUser(ctx context.Context, uid string) (*IdentityUser, error)
	GetUserByEmail(ctx context.Context, email string) (*IdentityUser, error)

	// CreateSessionCookie exchanges a short-lived identity token for a
	// session token valid for expiresIn.
	CreateSessionCookie(ctx context.Context, identityToken string, expiresIn time.Duration) (string, error)

	// VerifySessionCookie checks a session token; with checkRevoked it also
	// rejects tokens issued before the identity's revocation epoch.
	VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (*SessionClaims, error)

	// RevokeRefreshTokens invalidates every outstanding session for uid.
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// TextGenerator is a single-shot prompt-in/text-out call to an external
// text-generation model. No streaming, no conversation state, no retries.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
