package di

import (
	"interviewprep-backend/application/ports"
	"interviewprep-backend/application/services"
	"interviewprep-backend/infrastructure/config"
	"interviewprep-backend/interfaces/http/rest"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	UserRepo      ports.UserRepository
	InterviewRepo ports.InterviewRepository
	FeedbackRepo  ports.FeedbackRepository
	Identity      ports.IdentityProvider
	Sessions      *services.SessionManager
	Feedback      *services.FeedbackService
	Interviews    *services.InterviewService
	Router        *rest.Router
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideUserRepository,
	ProvideInterviewRepository,
	ProvideFeedbackRepository,
	ProvideIdentityProvider,
	ProvideTextGenerator,
	ProvideSessionManager,
	ProvideFeedbackService,
	ProvideInterviewService,
	ProvideAuthHandler,
	ProvideInterviewHandler,
	ProvideFeedbackHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)
