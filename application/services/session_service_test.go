package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/domain/entities"
	"interviewprep-backend/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockIdentityProvider struct {
	mock.Mock
}

func (m *mockIdentityProvider) CreateUser(ctx context.Context, uid, email, displayName string) (*ports.IdentityUser, error) {
	args := m.Called(ctx, uid, email, displayName)
	if u := args.Get(0); u != nil {
		return u.(*ports.IdentityUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdentityProvider) GetUser(ctx context.Context, uid string) (*ports.IdentityUser, error) {
	args := m.Called(ctx, uid)
	if u := args.Get(0); u != nil {
		return u.(*ports.IdentityUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdentityProvider) GetUserByEmail(ctx context.Context, email string) (*ports.IdentityUser, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*ports.IdentityUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdentityProvider) CreateSessionCookie(ctx context.Context, identityToken string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, identityToken, expiresIn)
	return args.String(0), args.Error(1)
}

func (m *mockIdentityProvider) VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (*ports.SessionClaims, error) {
	args := m.Called(ctx, cookie, checkRevoked)
	if c := args.Get(0); c != nil {
		return c.(*ports.SessionClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdentityProvider) RevokeRefreshTokens(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Save(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entities.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) BumpTokensValidAfter(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newSessionManager(provider ports.IdentityProvider, users ports.UserRepository) *SessionManager {
	cfg := &config.Config{Environment: "development"}
	return NewSessionManager(provider, users, cfg, zap.NewNop())
}

func requestWithSessionCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: value})
	return r
}

func TestEstablishSession_SetsCookie(t *testing.T) {
	ctx := context.Background()
	provider := new(mockIdentityProvider)
	users := new(mockUserRepo)

	provider.On("CreateSessionCookie", ctx, "id-token", config.SessionDuration).
		Return("session-token", nil)

	m := newSessionManager(provider, users)
	w := httptest.NewRecorder()

	require.NoError(t, m.EstablishSession(ctx, w, "id-token"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, SessionCookieName, c.Name)
	assert.Equal(t, "session-token", c.Value)
	assert.Equal(t, int(config.SessionDuration.Seconds()), c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure) // development environment
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestEstablishSession_ProviderRejection(t *testing.T) {
	ctx := context.Background()
	provider := new(mockIdentityProvider)
	provider.On("CreateSessionCookie", ctx, "bad-token", config.SessionDuration).
		Return("", ports.ErrTokenInvalid)

	m := newSessionManager(provider, new(mockUserRepo))
	w := httptest.NewRecorder()

	err := m.EstablishSession(ctx, w, "bad-token")
	assert.ErrorIs(t, err, ports.ErrTokenInvalid)
	assert.Empty(t, w.Result().Cookies())
}

func TestEndSession_ExpiresCookie(t *testing.T) {
	m := newSessionManager(new(mockIdentityProvider), new(mockUserRepo))
	w := httptest.NewRecorder()

	m.EndSession(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestResolveCurrentUser_NoCookie(t *testing.T) {
	m := newSessionManager(new(mockIdentityProvider), new(mockUserRepo))
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, m.ResolveCurrentUser(context.Background(), r))
	assert.False(t, m.IsAuthenticated(context.Background(), r))
}

func TestResolveCurrentUser_MalformedCookie(t *testing.T) {
	provider := new(mockIdentityProvider)
	provider.On("VerifySessionCookie", mock.Anything, "garbage", true).
		Return(nil, ports.ErrTokenInvalid)

	m := newSessionManager(provider, new(mockUserRepo))

	assert.NotPanics(t, func() {
		assert.Nil(t, m.ResolveCurrentUser(context.Background(), requestWithSessionCookie("garbage")))
	})
}

func TestResolveCurrentUser_DeletedUserRevokesSessions(t *testing.T) {
	provider := new(mockIdentityProvider)
	users := new(mockUserRepo)

	provider.On("VerifySessionCookie", mock.Anything, "valid", true).
		Return(&ports.SessionClaims{UID: "ghost", Email: "ghost@example.com"}, nil)
	users.On("GetByID", mock.Anything, "ghost").Return(nil, nil)
	provider.On("RevokeRefreshTokens", mock.Anything, "ghost").Return(nil)

	m := newSessionManager(provider, users)

	assert.Nil(t, m.ResolveCurrentUser(context.Background(), requestWithSessionCookie("valid")))
	provider.AssertCalled(t, "RevokeRefreshTokens", mock.Anything, "ghost")
}

func TestResolveCurrentUser_Success(t *testing.T) {
	provider := new(mockIdentityProvider)
	users := new(mockUserRepo)

	provider.On("VerifySessionCookie", mock.Anything, "valid", true).
		Return(&ports.SessionClaims{UID: "u1", Email: "u1@example.com"}, nil)
	users.On("GetByID", mock.Anything, "u1").
		Return(&entities.User{ID: "u1", Name: "User One", Email: "u1@example.com"}, nil)

	m := newSessionManager(provider, users)
	r := requestWithSessionCookie("valid")

	user := m.ResolveCurrentUser(context.Background(), r)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, m.IsAuthenticated(context.Background(), r))
}

func TestResolveCurrentUser_StoreErrorSwallowed(t *testing.T) {
	provider := new(mockIdentityProvider)
	users := new(mockUserRepo)

	provider.On("VerifySessionCookie", mock.Anything, "valid", true).
		Return(&ports.SessionClaims{UID: "u1"}, nil)
	users.On("GetByID", mock.Anything, "u1").Return(nil, assert.AnError)

	m := newSessionManager(provider, users)

	assert.Nil(t, m.ResolveCurrentUser(context.Background(), requestWithSessionCookie("valid")))
}
