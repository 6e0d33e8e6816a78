package handlers

import (
	"context"
	"strings"
	"time"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/domain/entities"

	"github.com/stretchr/testify/mock"
)

func newBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

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

type mockInterviewRepo struct {
	mock.Mock
}

func (m *mockInterviewRepo) Create(ctx context.Context, interview *entities.Interview) error {
	args := m.Called(ctx, interview)
	return args.Error(0)
}

func (m *mockInterviewRepo) GetByID(ctx context.Context, id string) (*entities.Interview, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*entities.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInterviewRepo) GetByUserID(ctx context.Context, userID string) ([]entities.Interview, error) {
	args := m.Called(ctx, userID)
	if i := args.Get(0); i != nil {
		return i.([]entities.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInterviewRepo) GetLatest(ctx context.Context, userID string, limit int) ([]entities.Interview, error) {
	args := m.Called(ctx, userID, limit)
	if i := args.Get(0); i != nil {
		return i.([]entities.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFeedbackRepo struct {
	mock.Mock
}

func (m *mockFeedbackRepo) Create(ctx context.Context, feedback *entities.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *mockFeedbackRepo) GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*entities.Feedback, error) {
	args := m.Called(ctx, interviewID, userID)
	if f := args.Get(0); f != nil {
		return f.(*entities.Feedback), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTextGenerator struct {
	mock.Mock
}

func (m *mockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
