package ports

import (
	"context"

	"interviewprep-backend/domain/entities"
)

// UserRepository is the document-store accessor for user records.
// Missing records are (nil, nil), never errors.
type UserRepository interface {
	Save(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, userID string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// BumpTokensValidAfter advances the user's revocation epoch so that
	// previously issued session tokens stop verifying.
	BumpTokensValidAfter(ctx context.Context, userID string) error
}

// InterviewRepository is the read accessor over interview records, plus the
// single write used by the generation flow.
type InterviewRepository interface {
	Create(ctx context.Context, interview *entities.Interview) error

	// GetByID returns the interview or (nil, nil) when the id is unknown.
	GetByID(ctx context.Context, id string) (*entities.Interview, error)

	// GetByUserID returns the user's interviews, newest first.
	GetByUserID(ctx context.Context, userID string) ([]entities.Interview, error)

	// GetLatest returns up to limit finalized interviews authored by users
	// other than userID, newest first.
	GetLatest(ctx context.Context, userID string, limit int) ([]entities.Interview, error)
}

// FeedbackRepository stores and fetches feedback records.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entities.Feedback) error

	// GetByInterviewAndUser returns the single matching record or (nil, nil).
	// At most one match is expected; if the store somehow holds more, the
	// first in store order wins.
	GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*entities.Feedback, error)
}
