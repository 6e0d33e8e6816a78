package dynamodb

import (
	"context"
	"fmt"
	"time"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/domain/entities"
	apperrors "interviewprep-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements ports.UserRepository using DynamoDB.
type UserRepository struct {
	client     *dynamodb.Client
	tableName  string
	emailIndex string
	logger     *zap.Logger
}

// userItem is the DynamoDB item structure for a user record
type userItem struct {
	PK               string `dynamodbav:"PK"`
	SK               string `dynamodbav:"SK"`
	GSI1PK           string `dynamodbav:"GSI1PK"`
	GSI1SK           string `dynamodbav:"GSI1SK"`
	EntityType       string `dynamodbav:"EntityType"`
	UserID           string `dynamodbav:"UserID"`
	Name             string `dynamodbav:"Name"`
	Email            string `dynamodbav:"Email"`
	TokensValidAfter int64  `dynamodbav:"TokensValidAfter"`
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName, emailIndex string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:     client,
		tableName:  tableName,
		emailIndex: emailIndex,
		logger:     logger,
	}
}

// Save persists a user record
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	item := userItem{
		PK:               userPK(user.ID),
		SK:               "PROFILE",
		GSI1PK:           emailKey(user.Email),
		GSI1SK:           "PROFILE",
		EntityType:       "USER",
		UserID:           user.ID,
		Name:             user.Name,
		Email:            user.Email,
		TokensValidAfter: user.TokensValidAfter.Unix(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("failed to save user",
			zap.Error(err),
			zap.String("userID", user.ID),
		)
		return apperrors.NewDatabaseError("save user", err)
	}

	return nil
}

// GetByID retrieves a user by id, (nil, nil) when absent
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPK(userID),
		"SK": "PROFILE",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	return parseUserItem(result.Item)
}

// GetByEmail retrieves a user by email via the email GSI, (nil, nil) when absent
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	keyExpr := expression.Key("GSI1PK").Equal(expression.Value(emailKey(email)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.emailIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("query user by email", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}

	return parseUserItem(result.Items[0])
}

// BumpTokensValidAfter advances the user's revocation epoch to now. The
// update creates the attribute even when the profile item is gone, so a
// deleted user's outstanding sessions still die.
func (r *UserRepository) BumpTokensValidAfter(ctx context.Context, userID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPK(userID),
		"SK": "PROFILE",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	update := expression.Set(
		expression.Name("TokensValidAfter"),
		expression.Value(time.Now().Unix()),
	)
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("failed to build expression: %w", err)
	}

	if _, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}); err != nil {
		r.logger.Error("failed to bump revocation epoch",
			zap.Error(err),
			zap.String("userID", userID),
		)
		return apperrors.NewDatabaseError("bump revocation epoch", err)
	}

	return nil
}

func parseUserItem(item map[string]types.AttributeValue) (*entities.User, error) {
	var record userItem
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &entities.User{
		ID:               record.UserID,
		Name:             record.Name,
		Email:            record.Email,
		TokensValidAfter: time.Unix(record.TokensValidAfter, 0),
	}, nil
}

func userPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

func emailKey(email string) string {
	return fmt.Sprintf("EMAIL#%s", email)
}
