package dynamodb

import (
	"context"
	"fmt"
	"time"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/domain/entities"
	apperrors "interviewprep-backend/pkg/errors"
	"interviewprep-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// FeedbackRepository implements ports.FeedbackRepository using DynamoDB.
type FeedbackRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// feedbackItem is the write-side DynamoDB item structure
type feedbackItem struct {
	PK                  string                   `dynamodbav:"PK"`
	SK                  string                   `dynamodbav:"SK"`
	EntityType          string                   `dynamodbav:"EntityType"`
	FeedbackID          string                   `dynamodbav:"FeedbackID"`
	InterviewID         string                   `dynamodbav:"InterviewID"`
	UserID              string                   `dynamodbav:"UserID"`
	TotalScore          int                      `dynamodbav:"TotalScore"`
	CategoryScores      []entities.CategoryScore `dynamodbav:"CategoryScores"`
	Strengths           []string                 `dynamodbav:"Strengths"`
	AreasForImprovement []string                 `dynamodbav:"AreasForImprovement"`
	FinalAssessment     string                   `dynamodbav:"FinalAssessment"`
	CreatedAt           string                   `dynamodbav:"CreatedAt"`
}

// rawFeedbackItem is the read-side structure. Records written by older
// versions stored category scores as a name->score mapping and may hold
// malformed lists, so the polymorphic fields land in `any` and go through
// normalization before anything downstream sees them.
type rawFeedbackItem struct {
	FeedbackID          string `dynamodbav:"FeedbackID"`
	InterviewID         string `dynamodbav:"InterviewID"`
	UserID              string `dynamodbav:"UserID"`
	TotalScore          int    `dynamodbav:"TotalScore"`
	CategoryScores      any    `dynamodbav:"CategoryScores"`
	Strengths           any    `dynamodbav:"Strengths"`
	AreasForImprovement any    `dynamodbav:"AreasForImprovement"`
	FinalAssessment     string `dynamodbav:"FinalAssessment"`
	CreatedAt           string `dynamodbav:"CreatedAt"`
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.FeedbackRepository {
	return &FeedbackRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Create persists a feedback record. The key is (interview, user), so a
// second write for the same pair replaces the first.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *entities.Feedback) error {
	item := feedbackItem{
		PK:                  interviewPK(feedback.InterviewID),
		SK:                  feedbackSK(feedback.UserID),
		EntityType:          "FEEDBACK",
		FeedbackID:          feedback.ID,
		InterviewID:         feedback.InterviewID,
		UserID:              feedback.UserID,
		TotalScore:          feedback.TotalScore,
		CategoryScores:      feedback.CategoryScores,
		Strengths:           feedback.Strengths,
		AreasForImprovement: feedback.AreasForImprovement,
		FinalAssessment:     feedback.FinalAssessment,
		CreatedAt:           utils.FormatRFC3339(feedback.CreatedAt),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("failed to save feedback",
			zap.Error(err),
			zap.String("feedbackID", feedback.ID),
			zap.String("interviewID", feedback.InterviewID),
		)
		return apperrors.NewDatabaseError("save feedback", err)
	}

	return nil
}

// GetByInterviewAndUser returns the single matching record or (nil, nil).
// The query is limited to one item; if the store somehow held more, only
// the first in store order would be used.
func (r *FeedbackRepository) GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*entities.Feedback, error) {
	keyExpr := expression.Key("PK").Equal(expression.Value(interviewPK(interviewID))).
		And(expression.Key("SK").Equal(expression.Value(feedbackSK(userID))))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("query feedback", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}

	return parseFeedbackItem(result.Items[0])
}

// parseFeedbackItem normalizes a stored record into the current shape.
func parseFeedbackItem(item map[string]types.AttributeValue) (*entities.Feedback, error) {
	var record rawFeedbackItem
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback: %w", err)
	}

	createdAt, err := utils.ParseRFC3339(record.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return &entities.Feedback{
		ID:                  record.FeedbackID,
		InterviewID:         record.InterviewID,
		UserID:              record.UserID,
		TotalScore:          record.TotalScore,
		CategoryScores:      entities.NormalizeCategoryScores(record.CategoryScores),
		Strengths:           entities.NormalizeStringList(record.Strengths),
		AreasForImprovement: entities.NormalizeStringList(record.AreasForImprovement),
		FinalAssessment:     record.FinalAssessment,
		CreatedAt:           createdAt,
	}, nil
}

func feedbackSK(userID string) string {
	return fmt.Sprintf("FEEDBACK#%s", userID)
}
