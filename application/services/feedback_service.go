package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/domain/entities"
	"interviewprep-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const feedbackPromptFormat = `You are an expert interviewer scoring a completed mock interview.

Return ONLY valid JSON in this exact format:

{
  "totalScore": number,
  "categoryScores": [
    {
      "name": "Communication Skills",
      "score": number,
      "comment": string
    },
    {
      "name": "Technical Knowledge",
      "score": number,
      "comment": string
    },
    {
      "name": "Problem-Solving",
      "score": number,
      "comment": string
    },
    {
      "name": "Cultural & Role Fit",
      "score": number,
      "comment": string
    },
    {
      "name": "Confidence & Clarity",
      "score": number,
      "comment": string
    }
  ],
  "strengths": string[],
  "areasForImprovement": string[],
  "finalAssessment": string
}

All scores are integers from 0 to 100.

Transcript:
%s
`

// feedbackPayload is the shape the model is instructed to return. The
// output is untrusted free text, so after parsing it is validated against
// this schema and rejected, not coerced, on violation.
type feedbackPayload struct {
	TotalScore          *int                     `json:"totalScore" validate:"required,min=0,max=100"`
	CategoryScores      []entities.CategoryScore `json:"categoryScores" validate:"required,min=1,dive"`
	Strengths           []string                 `json:"strengths" validate:"required"`
	AreasForImprovement []string                 `json:"areasForImprovement" validate:"required"`
	FinalAssessment     string                   `json:"finalAssessment" validate:"required"`
}

// CreateFeedbackParams identifies the interview run being scored.
type CreateFeedbackParams struct {
	InterviewID string
	UserID      string
	Transcript  entities.Transcript
}

// CreateFeedbackResult is the caller-facing outcome. Model-call, parse and
// schema failures all collapse to Success=false with no detail propagated.
type CreateFeedbackResult struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId,omitempty"`
}

// FeedbackService generates and persists LLM-scored interview feedback.
type FeedbackService struct {
	generator ports.TextGenerator
	feedback  ports.FeedbackRepository
	logger    *zap.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(generator ports.TextGenerator, feedback ports.FeedbackRepository, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		generator: generator,
		feedback:  feedback,
		logger:    logger,
	}
}

// CreateFeedback formats the transcript, asks the model for a scored
// assessment, validates the response and persists it. Any failure is
// terminal for this call: no partial record is written and no retry is
// attempted.
func (s *FeedbackService) CreateFeedback(ctx context.Context, params CreateFeedbackParams) CreateFeedbackResult {
	prompt := fmt.Sprintf(feedbackPromptFormat, params.Transcript.Format())

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("feedback generation failed",
			zap.Error(err),
			zap.String("interviewID", params.InterviewID),
		)
		return CreateFeedbackResult{}
	}

	payload, err := parseFeedbackPayload(raw)
	if err != nil {
		s.logger.Error("feedback response rejected",
			zap.Error(err),
			zap.String("interviewID", params.InterviewID),
		)
		return CreateFeedbackResult{}
	}

	feedback := &entities.Feedback{
		ID:                  uuid.New().String(),
		InterviewID:         params.InterviewID,
		UserID:              params.UserID,
		TotalScore:          *payload.TotalScore,
		CategoryScores:      payload.CategoryScores,
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		FinalAssessment:     payload.FinalAssessment,
		CreatedAt:           time.Now().UTC(),
	}

	if err := s.feedback.Create(ctx, feedback); err != nil {
		s.logger.Error("failed to persist feedback",
			zap.Error(err),
			zap.String("interviewID", params.InterviewID),
		)
		return CreateFeedbackResult{}
	}

	s.logger.Info("feedback created",
		zap.String("feedbackID", feedback.ID),
		zap.String("interviewID", params.InterviewID),
		zap.Int("totalScore", feedback.TotalScore),
	)

	return CreateFeedbackResult{Success: true, FeedbackID: feedback.ID}
}

// parseFeedbackPayload cleans and parses the model's raw output.
func parseFeedbackPayload(raw string) (*feedbackPayload, error) {
	cleaned := stripCodeFences(raw)

	var payload feedbackPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	if err := utils.ValidateStruct(payload); err != nil {
		return nil, fmt.Errorf("model output failed schema validation: %w", err)
	}

	return &payload, nil
}

// stripCodeFences removes Markdown code-fence markers the model sometimes
// wraps its JSON in.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
