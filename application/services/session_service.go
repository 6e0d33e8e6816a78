package services

import (
	"context"
	"errors"
	"net/http"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/domain/entities"
	"interviewprep-backend/infrastructure/config"

	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// SessionManager issues, resolves and revokes the session cookie, with the
// identity provider as the source of truth for tokens.
type SessionManager struct {
	provider ports.IdentityProvider
	users    ports.UserRepository
	secure   bool
	logger   *zap.Logger
}

// NewSessionManager creates a new SessionManager. Cookies are marked Secure
// only in production so local development over plain HTTP keeps working.
func NewSessionManager(provider ports.IdentityProvider, users ports.UserRepository, cfg *config.Config, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		provider: provider,
		users:    users,
		secure:   cfg.IsProduction(),
		logger:   logger,
	}
}

// EstablishSession exchanges a short-lived identity token for a week-long
// session token and sets it as the session cookie. Provider rejection
// propagates to the caller.
func (m *SessionManager) EstablishSession(ctx context.Context, w http.ResponseWriter, identityToken string) error {
	sessionCookie, err := m.provider.CreateSessionCookie(ctx, identityToken, config.SessionDuration)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionCookie,
		MaxAge:   int(config.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// EndSession deletes the session cookie. It has no error conditions.
func (m *SessionManager) EndSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveCurrentUser resolves the request's session cookie to a user.
// Contract: returns the user or nil, never an error. A missing cookie is
// simply "no user"; verification failures are logged and swallowed. When a
// verified token references a user record that no longer exists, every
// outstanding session for that identity is revoked.
func (m *SessionManager) ResolveCurrentUser(ctx context.Context, r *http.Request) *entities.User {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := m.provider.VerifySessionCookie(ctx, cookie.Value, true)
	if err != nil {
		if !errors.Is(err, ports.ErrTokenInvalid) {
			m.logger.Warn("session verification failed", zap.Error(err))
		}
		return nil
	}

	user, err := m.users.GetByID(ctx, claims.UID)
	if err != nil {
		m.logger.Warn("session user lookup failed",
			zap.Error(err),
			zap.String("uid", claims.UID),
		)
		return nil
	}
	if user == nil {
		if err := m.provider.RevokeRefreshTokens(ctx, claims.UID); err != nil {
			m.logger.Warn("failed to revoke sessions for deleted user",
				zap.Error(err),
				zap.String("uid", claims.UID),
			)
		}
		return nil
	}

	return user
}

// IsAuthenticated reports whether the request carries a valid session.
func (m *SessionManager) IsAuthenticated(ctx context.Context, r *http.Request) bool {
	return m.ResolveCurrentUser(ctx, r) != nil
}
