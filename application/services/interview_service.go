package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/domain/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const questionsPromptFormat = `Prepare questions for a job interview.

The job role is %s.
The job experience level is %s.
The tech stack used in the job is: %s.
The focus between behavioural and technical questions should lean towards: %s.
The amount of questions required is: %d.

Please return only the questions, without any additional text.
The questions are going to be read by a voice assistant so do not use "/" or "*" or any other special characters which might break the voice assistant.
Return the questions formatted like this:
["Question 1", "Question 2", "Question 3"]
`

// GenerateInterviewParams describes the interview to author.
type GenerateInterviewParams struct {
	UserID    string
	Role      string
	Level     string
	Type      string
	Techstack []string
	Amount    int
}

// InterviewService authors new interviews and serves interview queries.
type InterviewService struct {
	generator  ports.TextGenerator
	interviews ports.InterviewRepository
	logger     *zap.Logger
}

// NewInterviewService creates a new InterviewService
func NewInterviewService(generator ports.TextGenerator, interviews ports.InterviewRepository, logger *zap.Logger) *InterviewService {
	return &InterviewService{
		generator:  generator,
		interviews: interviews,
		logger:     logger,
	}
}

// GenerateInterview asks the model for a question set and persists a
// finalized interview owned by the caller. Failures are terminal: no
// partial record is written and no retry is attempted.
func (s *InterviewService) GenerateInterview(ctx context.Context, params GenerateInterviewParams) (*entities.Interview, error) {
	prompt := fmt.Sprintf(questionsPromptFormat,
		params.Role,
		params.Level,
		strings.Join(params.Techstack, ", "),
		params.Type,
		params.Amount,
	)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var questions []string
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &questions); err != nil {
		return nil, fmt.Errorf("model output is not a JSON question list: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}

	interview := &entities.Interview{
		ID:        uuid.New().String(),
		UserID:    params.UserID,
		Role:      params.Role,
		Type:      params.Type,
		Level:     params.Level,
		Techstack: params.Techstack,
		Questions: questions,
		Finalized: true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, fmt.Errorf("failed to persist interview: %w", err)
	}

	s.logger.Info("interview generated",
		zap.String("interviewID", interview.ID),
		zap.String("role", interview.Role),
		zap.Int("questions", len(questions)),
	)

	return interview, nil
}
