package di

import (
	"context"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/application/services"
	"interviewprep-backend/infrastructure/config"
	"interviewprep-backend/infrastructure/genai"
	"interviewprep-backend/infrastructure/identity"
	"interviewprep-backend/infrastructure/persistence/dynamodb"
	"interviewprep-backend/interfaces/http/rest"
	"interviewprep-backend/interfaces/http/rest/handlers"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName, // GSI1 doubles as the email lookup index
		logger,
	)
}

// ProvideInterviewRepository creates an interview repository
func ProvideInterviewRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.InterviewRepository {
	return dynamodb.NewInterviewRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,     // GSI1 for owner-scoped listings
		cfg.GSI2IndexName, // GSI2 for the finalized feed
		logger,
	)
}

// ProvideFeedbackRepository creates a feedback repository
func ProvideFeedbackRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.FeedbackRepository {
	return dynamodb.NewFeedbackRepository(
		client,
		cfg.DynamoDBTable,
		logger,
	)
}

// ProvideIdentityProvider creates the token-backed identity provider
func ProvideIdentityProvider(cfg *config.Config, users ports.UserRepository, logger *zap.Logger) (ports.IdentityProvider, error) {
	secret := cfg.SessionSecret
	if secret == "" && !cfg.IsProduction() {
		// Development convenience only; Validate rejects this in production.
		secret = "development-session-secret"
	}
	return identity.NewProvider(secret, cfg.SessionIssuer, cfg.IdentityTokenTTL, users, logger)
}

// ProvideTextGenerator creates the Gemini-backed text generator
func ProvideTextGenerator(cfg *config.Config, logger *zap.Logger) ports.TextGenerator {
	return genai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEndpoint, logger)
}

// ProvideSessionManager creates the session manager
func ProvideSessionManager(provider ports.IdentityProvider, users ports.UserRepository, cfg *config.Config, logger *zap.Logger) *services.SessionManager {
	return services.NewSessionManager(provider, users, cfg, logger)
}

// ProvideFeedbackService creates the feedback generation service
func ProvideFeedbackService(generator ports.TextGenerator, feedback ports.FeedbackRepository, logger *zap.Logger) *services.FeedbackService {
	return services.NewFeedbackService(generator, feedback, logger)
}

// ProvideInterviewService creates the interview generation service
func ProvideInterviewService(generator ports.TextGenerator, interviews ports.InterviewRepository, logger *zap.Logger) *services.InterviewService {
	return services.NewInterviewService(generator, interviews, logger)
}

// ProvideAuthHandler creates the auth handler
func ProvideAuthHandler(provider ports.IdentityProvider, users ports.UserRepository, sessions *services.SessionManager, logger *zap.Logger) *handlers.AuthHandler {
	return handlers.NewAuthHandler(provider, users, sessions, logger)
}

// ProvideInterviewHandler creates the interview handler
func ProvideInterviewHandler(interviews ports.InterviewRepository, generator *services.InterviewService, cfg *config.Config, logger *zap.Logger) *handlers.InterviewHandler {
	return handlers.NewInterviewHandler(interviews, generator, cfg.LatestInterviewsLimit, logger)
}

// ProvideFeedbackHandler creates the feedback handler
func ProvideFeedbackHandler(feedback ports.FeedbackRepository, interviews ports.InterviewRepository, service *services.FeedbackService, logger *zap.Logger) *handlers.FeedbackHandler {
	return handlers.NewFeedbackHandler(feedback, interviews, service, logger)
}

// ProvideRouter creates the configured HTTP router
func ProvideRouter(
	cfg *config.Config,
	sessions *services.SessionManager,
	auth *handlers.AuthHandler,
	interviews *handlers.InterviewHandler,
	feedback *handlers.FeedbackHandler,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, sessions, auth, interviews, feedback, logger)
}
