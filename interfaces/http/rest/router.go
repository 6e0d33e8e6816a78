package rest

import (
	"net/http"

	"interviewprep-backend/application/services"
	"interviewprep-backend/infrastructure/config"
	"interviewprep-backend/interfaces/http/rest/handlers"
	"interviewprep-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	sessions   *services.SessionManager
	auth       *handlers.AuthHandler
	interviews *handlers.InterviewHandler
	feedback   *handlers.FeedbackHandler
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	sessions *services.SessionManager,
	auth *handlers.AuthHandler,
	interviews *handlers.InterviewHandler,
	feedback *handlers.FeedbackHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		sessions:   sessions,
		auth:       auth,
		interviews: interviews,
		feedback:   feedback,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Resolve the session cookie on every API request. Handlers that
		// need a signed-in user are additionally gated by RequireAuth.
		r.Use(middleware.Session(rt.sessions))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", rt.auth.SignUp)
			r.Post("/signin", rt.auth.SignIn)
			r.Post("/signout", rt.auth.SignOut)
			r.Get("/me", rt.auth.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/dashboard", rt.interviews.Dashboard)

			r.Route("/interviews", func(r chi.Router) {
				r.Post("/generate", rt.interviews.GenerateInterview)
				r.Get("/{id}", rt.interviews.GetInterview)
				r.Get("/{id}/feedback", rt.feedback.GetFeedback)
				r.Post("/{id}/feedback", rt.feedback.CreateFeedback)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
