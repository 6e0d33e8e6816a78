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
)

// FeedbackHandler handles feedback endpoints
type FeedbackHandler struct {
	feedback   ports.FeedbackRepository
	interviews ports.InterviewRepository
	service    *services.FeedbackService
	logger     *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(
	feedback ports.FeedbackRepository,
	interviews ports.InterviewRepository,
	service *services.FeedbackService,
	logger *zap.Logger,
) *FeedbackHandler {
	return &FeedbackHandler{
		feedback:   feedback,
		interviews: interviews,
		service:    service,
		logger:     logger,
	}
}

// CreateFeedbackRequest is the request body for feedback generation
type CreateFeedbackRequest struct {
	Transcript entities.Transcript `json:"transcript" validate:"required,min=1,dive"`
}

// CreateFeedbackResponse reports the outcome of a generation attempt
type CreateFeedbackResponse struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId,omitempty"`
}

// CreateFeedback handles POST /interviews/{id}/feedback
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	user := common.CurrentUser(r.Context())
	interviewID := chi.URLParam(r, "id")

	var req CreateFeedbackRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	interview, err := h.interviews.GetByID(r.Context(), interviewID)
	if err != nil {
		h.logger.Error("feedback interview lookup failed", zap.String("interviewId", interviewID), zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to load interview")
		return
	}
	if interview == nil {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, "Interview not found")
		return
	}

	result := h.service.CreateFeedback(r.Context(), services.CreateFeedbackParams{
		InterviewID: interviewID,
		UserID:      user.ID,
		Transcript:  req.Transcript,
	})

	resp := CreateFeedbackResponse{Success: result.Success, FeedbackID: result.FeedbackID}
	if !result.Success {
		common.RespondJSON(w, http.StatusBadGateway, resp)
		return
	}
	common.RespondJSON(w, http.StatusCreated, resp)
}

// GetFeedback handles GET /interviews/{id}/feedback. Missing feedback is
// not an error; the data is null and the client renders a placeholder.
func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	user := common.CurrentUser(r.Context())
	interviewID := chi.URLParam(r, "id")

	fb, err := h.feedback.GetByInterviewAndUser(r.Context(), interviewID, user.ID)
	if err != nil {
		h.logger.Error("feedback lookup failed",
			zap.String("interviewId", interviewID),
			zap.String("userId", user.ID),
			zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to load feedback")
		return
	}

	common.RespondJSON(w, http.StatusOK, fb)
}
