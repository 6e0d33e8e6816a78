package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interviewprep-backend/application/services"
	"interviewprep-backend/domain/entities"
	"interviewprep-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInterviewRouter(repo *mockInterviewRepo, generator *mockTextGenerator) http.Handler {
	svc := services.NewInterviewService(generator, repo, zap.NewNop())
	h := NewInterviewHandler(repo, svc, 20, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/dashboard", h.Dashboard)
	r.Post("/interviews/generate", h.GenerateInterview)
	r.Get("/interviews/{id}", h.GetInterview)
	return r
}

func asUser(req *http.Request, user *entities.User) *http.Request {
	return req.WithContext(common.WithCurrentUser(req.Context(), user))
}

func TestInterviewHandler_GetInterview(t *testing.T) {
	repo := new(mockInterviewRepo)
	router := newInterviewRouter(repo, new(mockTextGenerator))

	repo.On("GetByID", mock.Anything, "iv-1").Return(&entities.Interview{
		ID:        "iv-1",
		UserID:    "uid-1",
		Role:      "Frontend Developer",
		Type:      "Technical",
		Techstack: []string{"React"},
		Finalized: true,
		CreatedAt: time.Now(),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/interviews/iv-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var got entities.Interview
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "iv-1", got.ID)
	assert.Equal(t, "Frontend Developer", got.Role)
}

func TestInterviewHandler_GetInterview_NotFound(t *testing.T) {
	repo := new(mockInterviewRepo)
	router := newInterviewRouter(repo, new(mockTextGenerator))

	repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/interviews/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInterviewHandler_Dashboard(t *testing.T) {
	repo := new(mockInterviewRepo)
	router := newInterviewRouter(repo, new(mockTextGenerator))

	own := []entities.Interview{{ID: "mine", UserID: "uid-1"}}
	latest := []entities.Interview{{ID: "theirs-1", UserID: "uid-2"}, {ID: "theirs-2", UserID: "uid-3"}}
	repo.On("GetByUserID", mock.Anything, "uid-1").Return(own, nil)
	repo.On("GetLatest", mock.Anything, "uid-1", 20).Return(latest, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/dashboard", nil), &entities.User{ID: "uid-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var got DashboardResponse
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got.UserInterviews, 1)
	assert.Len(t, got.LatestInterviews, 2)
}

func TestInterviewHandler_Dashboard_EmptyListsNotNull(t *testing.T) {
	repo := new(mockInterviewRepo)
	router := newInterviewRouter(repo, new(mockTextGenerator))

	repo.On("GetByUserID", mock.Anything, "uid-1").Return(nil, nil)
	repo.On("GetLatest", mock.Anything, "uid-1", 20).Return(nil, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/dashboard", nil), &entities.User{ID: "uid-1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userInterviews":[]`)
	assert.Contains(t, rec.Body.String(), `"latestInterviews":[]`)
}

func TestInterviewHandler_GenerateInterview(t *testing.T) {
	repo := new(mockInterviewRepo)
	generator := new(mockTextGenerator)
	router := newInterviewRouter(repo, generator)

	generator.On("Generate", mock.Anything, mock.Anything).
		Return("```json\n[\"Tell me about yourself\",\"What is a closure\"]\n```", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(iv *entities.Interview) bool {
		return iv.UserID == "uid-1" && iv.Finalized && len(iv.Questions) == 2
	})).Return(nil)

	body := `{"role":"Frontend Developer","level":"Junior","type":"Technical","techstack":["React","TypeScript"],"amount":2}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/interviews/generate", newBody(body)), &entities.User{ID: "uid-1"})
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestInterviewHandler_GenerateInterview_ModelFailure(t *testing.T) {
	repo := new(mockInterviewRepo)
	generator := new(mockTextGenerator)
	router := newInterviewRouter(repo, generator)

	generator.On("Generate", mock.Anything, mock.Anything).Return("not json", nil)

	body := `{"role":"Backend Developer","level":"Senior","type":"Technical","techstack":["Go"],"amount":3}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/interviews/generate", newBody(body)), &entities.User{ID: "uid-1"})
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
