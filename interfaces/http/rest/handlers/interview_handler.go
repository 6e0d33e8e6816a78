package handlers

import (
	"net/http"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/application/services"
	"interviewprep-backend/domain/entities"
	"interviewprep-backend/pkg/common"
	"interviewprep-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InterviewHandler handles interview endpoints
type InterviewHandler struct {
	interviews ports.InterviewRepository
	generator  *services.InterviewService
	latestN    int
	logger     *zap.Logger
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(
	interviews ports.InterviewRepository,
	generator *services.InterviewService,
	latestN int,
	logger *zap.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		interviews: interviews,
		generator:  generator,
		latestN:    latestN,
		logger:     logger,
	}
}

// GenerateInterviewRequest is the request body for interview generation
type GenerateInterviewRequest struct {
	Role      string   `json:"role" validate:"required,max=100"`
	Level     string   `json:"level" validate:"required,max=50"`
	Type      string   `json:"type" validate:"required,max=50"`
	Techstack []string `json:"techstack" validate:"required,min=1,dive,max=50"`
	Amount    int      `json:"amount" validate:"required,min=1,max=20"`
}

// DashboardResponse bundles the two interview lists the home page needs
type DashboardResponse struct {
	UserInterviews   []entities.Interview `json:"userInterviews"`
	LatestInterviews []entities.Interview `json:"latestInterviews"`
}

// GetInterview handles GET /interviews/{id}
func (h *InterviewHandler) GetInterview(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "id")

	interview, err := h.interviews.GetByID(r.Context(), interviewID)
	if err != nil {
		h.logger.Error("interview lookup failed", zap.String("interviewId", interviewID), zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to load interview")
		return
	}
	if interview == nil {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, "Interview not found")
		return
	}

	common.RespondJSON(w, http.StatusOK, interview)
}

// GenerateInterview handles POST /interviews/generate
func (h *InterviewHandler) GenerateInterview(w http.ResponseWriter, r *http.Request) {
	user := common.CurrentUser(r.Context())

	var req GenerateInterviewRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	interview, err := h.generator.GenerateInterview(r.Context(), services.GenerateInterviewParams{
		UserID:    user.ID,
		Role:      req.Role,
		Level:     req.Level,
		Type:      req.Type,
		Techstack: req.Techstack,
		Amount:    req.Amount,
	})
	if err != nil {
		h.logger.Error("interview generation failed", zap.String("userId", user.ID), zap.Error(err))
		common.RespondError(w, http.StatusBadGateway, "GENERATION_FAILED", "Failed to generate interview. Please try again.")
		return
	}

	common.RespondJSON(w, http.StatusCreated, interview)
}

// Dashboard handles GET /dashboard. The two lists are independent reads
// and are fetched concurrently.
func (h *InterviewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := common.CurrentUser(r.Context())

	var (
		own    []entities.Interview
		latest []entities.Interview
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		own, err = h.interviews.GetByUserID(ctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = h.interviews.GetLatest(ctx, user.ID, h.latestN)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("dashboard load failed", zap.String("userId", user.ID), zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to load dashboard")
		return
	}

	if own == nil {
		own = []entities.Interview{}
	}
	if latest == nil {
		latest = []entities.Interview{}
	}

	common.RespondJSON(w, http.StatusOK, DashboardResponse{
		UserInterviews:   own,
		LatestInterviews: latest,
	})
}
