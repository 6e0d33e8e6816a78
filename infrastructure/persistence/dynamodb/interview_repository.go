package dynamodb

import (
	"context"
	"fmt"

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

const finalizedPartition = "INTERVIEW#FINALIZED"

// InterviewRepository implements ports.InterviewRepository using DynamoDB.
//
// Key layout: the interview lives under its own partition for direct id
// lookup; GSI1 orders a user's interviews by creation time; GSI2 holds the
// finalized feed, keyed so a descending query returns newest first.
type InterviewRepository struct {
	client         *dynamodb.Client
	tableName      string
	ownerIndex     string
	finalizedIndex string
	logger         *zap.Logger
}

// interviewItem is the DynamoDB item structure for an interview
type interviewItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	GSI1PK      string   `dynamodbav:"GSI1PK"`
	GSI1SK      string   `dynamodbav:"GSI1SK"`
	GSI2PK      string   `dynamodbav:"GSI2PK,omitempty"`
	GSI2SK      string   `dynamodbav:"GSI2SK,omitempty"`
	EntityType  string   `dynamodbav:"EntityType"`
	InterviewID string   `dynamodbav:"InterviewID"`
	UserID      string   `dynamodbav:"UserID"`
	Role        string   `dynamodbav:"Role"`
	Type        string   `dynamodbav:"Type"`
	Level       string   `dynamodbav:"Level,omitempty"`
	Techstack   []string `dynamodbav:"Techstack"`
	Questions   []string `dynamodbav:"Questions,omitempty"`
	Finalized   bool     `dynamodbav:"Finalized"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(client *dynamodb.Client, tableName, ownerIndex, finalizedIndex string, logger *zap.Logger) ports.InterviewRepository {
	return &InterviewRepository{
		client:         client,
		tableName:      tableName,
		ownerIndex:     ownerIndex,
		finalizedIndex: finalizedIndex,
		logger:         logger,
	}
}

// Create persists a new interview record
func (r *InterviewRepository) Create(ctx context.Context, interview *entities.Interview) error {
	createdAt := utils.FormatRFC3339(interview.CreatedAt)

	item := interviewItem{
		PK:          interviewPK(interview.ID),
		SK:          "METADATA",
		GSI1PK:      userPK(interview.UserID),
		GSI1SK:      fmt.Sprintf("INTERVIEW#%s#%s", createdAt, interview.ID),
		EntityType:  "INTERVIEW",
		InterviewID: interview.ID,
		UserID:      interview.UserID,
		Role:        interview.Role,
		Type:        interview.Type,
		Level:       interview.Level,
		Techstack:   interview.Techstack,
		Questions:   interview.Questions,
		Finalized:   interview.Finalized,
		CreatedAt:   createdAt,
	}
	if interview.Finalized {
		item.GSI2PK = finalizedPartition
		item.GSI2SK = fmt.Sprintf("%s#%s", createdAt, interview.ID)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal interview: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("failed to save interview",
			zap.Error(err),
			zap.String("interviewID", interview.ID),
		)
		return apperrors.NewDatabaseError("save interview", err)
	}

	return nil
}

// GetByID retrieves an interview by id, (nil, nil) when absent
func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*entities.Interview, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": interviewPK(id),
		"SK": "METADATA",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get interview", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	return parseInterviewItem(result.Item)
}

// GetByUserID returns the user's interviews, newest first
func (r *InterviewRepository) GetByUserID(ctx context.Context, userID string) ([]entities.Interview, error) {
	keyExpr := expression.Key("GSI1PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("GSI1SK").BeginsWith("INTERVIEW#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	// GSI1SK embeds the RFC3339 creation time, so a descending scan is a
	// newest-first ordering.
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.ownerIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("query interviews", err)
	}

	interviews := make([]entities.Interview, 0, len(result.Items))
	for _, item := range result.Items {
		interview, err := parseInterviewItem(item)
		if err != nil {
			r.logger.Warn("skipping malformed interview item", zap.Error(err))
			continue
		}
		interviews = append(interviews, *interview)
	}

	return interviews, nil
}

// GetLatest returns up to limit finalized interviews authored by other
// users, newest first. The userID filter runs after the page limit, so the
// query pages until the limit is satisfied or the feed is exhausted.
func (r *InterviewRepository) GetLatest(ctx context.Context, userID string, limit int) ([]entities.Interview, error) {
	keyExpr := expression.Key("GSI2PK").Equal(expression.Value(finalizedPartition))
	filterExpr := expression.Name("UserID").NotEqual(expression.Value(userID))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyExpr).
		WithFilter(filterExpr).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	interviews := make([]entities.Interview, 0, limit)
	var lastKey map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.finalizedIndex),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			Limit:                     aws.Int32(int32(limit)),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("query latest interviews", err)
		}

		for _, item := range result.Items {
			interview, err := parseInterviewItem(item)
			if err != nil {
				r.logger.Warn("skipping malformed interview item", zap.Error(err))
				continue
			}
			interviews = append(interviews, *interview)
			if len(interviews) == limit {
				return interviews, nil
			}
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			return interviews, nil
		}
	}
}

func parseInterviewItem(item map[string]types.AttributeValue) (*entities.Interview, error) {
	var record interviewItem
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interview: %w", err)
	}

	createdAt, err := utils.ParseRFC3339(record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interview createdAt: %w", err)
	}

	return &entities.Interview{
		ID:        record.InterviewID,
		UserID:    record.UserID,
		Role:      record.Role,
		Type:      record.Type,
		Level:     record.Level,
		Techstack: record.Techstack,
		Questions: record.Questions,
		Finalized: record.Finalized,
		CreatedAt: createdAt,
	}, nil
}

func interviewPK(id string) string {
	return fmt.Sprintf("INTERVIEW#%s", id)
}
