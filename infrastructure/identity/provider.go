// Package identity implements the identity-provider contract on signed
// tokens plus the user table. Identity tokens are short-lived credentials
// handed to the client at sign-in; session cookies are longer-lived tokens
// minted in exchange. Revocation is an epoch on the user record: bumping it
// invalidates every session token issued earlier.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/domain/entities"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	tokenUseIdentity = "id"
	tokenUseSession  = "session"
)

// Provider is the JWT-backed identity provider.
type Provider struct {
	secret      []byte
	issuer      string
	identityTTL time.Duration
	users       ports.UserRepository
	logger      *zap.Logger

	// now is swappable for tests
	now func() time.Time
}

type tokenClaims struct {
	Email    string `json:"email,omitempty"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// NewProvider creates a provider signing with secret and checking
// revocation against the user repository.
func NewProvider(secret, issuer string, identityTTL time.Duration, users ports.UserRepository, logger *zap.Logger) (*Provider, error) {
	if secret == "" {
		return nil, fmt.Errorf("identity: signing secret must not be empty")
	}
	return &Provider{
		secret:      []byte(secret),
		issuer:      issuer,
		identityTTL: identityTTL,
		users:       users,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// CreateUser registers a new identity. The email must be unused.
func (p *Provider) CreateUser(ctx context.Context, uid, email, displayName string) (*ports.IdentityUser, error) {
	existing, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("identity: create user: %w", err)
	}
	if existing != nil && existing.ID != uid {
		return nil, ports.ErrEmailExists
	}

	record := &entities.User{ID: uid, Email: email, Name: displayName}
	if err := p.users.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("identity: create user: %w", err)
	}

	p.logger.Info("identity created",
		zap.String("uid", uid),
		zap.String("email", email),
	)

	return &ports.IdentityUser{UID: uid, Email: email, DisplayName: displayName}, nil
}

// GetUser fetches an identity by uid.
func (p *Provider) GetUser(ctx context.Context, uid string) (*ports.IdentityUser, error) {
	user, err := p.users.GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("identity: get user: %w", err)
	}
	if user == nil {
		return nil, ports.ErrIdentityNotFound
	}
	return &ports.IdentityUser{UID: user.ID, Email: user.Email, DisplayName: user.Name}, nil
}

// GetUserByEmail fetches an identity by email.
func (p *Provider) GetUserByEmail(ctx context.Context, email string) (*ports.IdentityUser, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("identity: get user by email: %w", err)
	}
	if user == nil {
		return nil, ports.ErrIdentityNotFound
	}
	return &ports.IdentityUser{UID: user.ID, Email: user.Email, DisplayName: user.Name}, nil
}

// MintIdentityToken issues the short-lived identity token a client presents
// at sign-in, the way managed providers mint custom tokens server-side.
func (p *Provider) MintIdentityToken(ctx context.Context, uid string) (string, error) {
	user, err := p.GetUser(ctx, uid)
	if err != nil {
		return "", err
	}
	return p.sign(uid, user.Email, tokenUseIdentity, p.identityTTL)
}

// CreateSessionCookie exchanges a valid identity token for a session token.
func (p *Provider) CreateSessionCookie(ctx context.Context, identityToken string, expiresIn time.Duration) (string, error) {
	claims, err := p.parse(identityToken, tokenUseIdentity)
	if err != nil {
		return "", err
	}
	return p.sign(claims.Subject, claims.Email, tokenUseSession, expiresIn)
}

// VerifySessionCookie checks a session token. With checkRevoked, tokens
// issued before the identity's revocation epoch are rejected; an identity
// with no user record is left for the caller to resolve.
func (p *Provider) VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (*ports.SessionClaims, error) {
	claims, err := p.parse(cookie, tokenUseSession)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Time{}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	if checkRevoked {
		user, err := p.users.GetByID(ctx, claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("identity: revocation check: %w", err)
		}
		if user != nil && issuedAt.Before(user.TokensValidAfter) {
			return nil, fmt.Errorf("%w: session revoked", ports.ErrTokenInvalid)
		}
	}

	return &ports.SessionClaims{
		UID:      claims.Subject,
		Email:    claims.Email,
		IssuedAt: issuedAt,
	}, nil
}

// RevokeRefreshTokens invalidates all outstanding sessions for uid by
// advancing the revocation epoch.
func (p *Provider) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := p.users.BumpTokensValidAfter(ctx, uid); err != nil {
		return fmt.Errorf("identity: revoke tokens: %w", err)
	}

	p.logger.Info("sessions revoked", zap.String("uid", uid))
	return nil
}

func (p *Provider) sign(uid, email, use string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := tokenClaims{
		Email:    email,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("identity: sign token: %w", err)
	}
	return signed, nil
}

func (p *Provider) parse(raw, wantUse string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.secret, nil
	},
		jwt.WithIssuer(p.issuer),
		jwt.WithTimeFunc(func() time.Time { return p.now() }),
	)
	if err != nil {
		return nil, errors.Join(ports.ErrTokenInvalid, err)
	}

	if claims.TokenUse != wantUse {
		return nil, fmt.Errorf("%w: token use %q, want %q", ports.ErrTokenInvalid, claims.TokenUse, wantUse)
	}
	return claims, nil
}
