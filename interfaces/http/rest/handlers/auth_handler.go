package handlers

import (
	"errors"
	"net/http"

	"interviewprep-backend/application/ports"
	"interviewprep-backend/application/services"
	"interviewprep-backend/domain/entities"
	"interviewprep-backend/pkg/common"
	"interviewprep-backend/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler handles sign-up, sign-in and session endpoints
type AuthHandler struct {
	provider ports.IdentityProvider
	users    ports.UserRepository
	sessions *services.SessionManager
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	provider ports.IdentityProvider,
	users ports.UserRepository,
	sessions *services.SessionManager,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// SignUpRequest is the request body for account creation
type SignUpRequest struct {
	UID   string `json:"uid" validate:"required"`
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// SignInRequest is the request body for signing in
type SignInRequest struct {
	Email         string `json:"email" validate:"required,email"`
	IdentityToken string `json:"identityToken" validate:"required"`
}

// SignUp handles POST /auth/signup. Every failure is converted to a
// result message; the email-already-in-use case gets its specific text.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	ctx := r.Context()

	// Create the identity only when it does not exist yet.
	if _, err := h.provider.GetUser(ctx, req.UID); err != nil {
		if !errors.Is(err, ports.ErrIdentityNotFound) {
			h.logger.Error("sign-up identity lookup failed", zap.Error(err))
			common.RespondMessage(w, http.StatusInternalServerError, false, "Something went wrong. Please try again.")
			return
		}
		if _, err := h.provider.CreateUser(ctx, req.UID, req.Email, req.Name); err != nil {
			if errors.Is(err, ports.ErrEmailExists) {
				common.RespondMessage(w, http.StatusConflict, false, "This email is already in use")
				return
			}
			h.logger.Error("sign-up identity creation failed", zap.Error(err))
			common.RespondMessage(w, http.StatusInternalServerError, false, "Something went wrong. Please try again.")
			return
		}
	}

	user := &entities.User{ID: req.UID, Name: req.Name, Email: req.Email}
	if err := h.users.Save(ctx, user); err != nil {
		h.logger.Error("sign-up user save failed", zap.Error(err))
		common.RespondMessage(w, http.StatusInternalServerError, false, "Something went wrong. Please try again.")
		return
	}

	common.RespondMessage(w, http.StatusCreated, true, "Account created successfully. Please sign in.")
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	ctx := r.Context()

	if _, err := h.provider.GetUserByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, ports.ErrIdentityNotFound) {
			common.RespondMessage(w, http.StatusNotFound, false, "User does not exist. Create an account.")
			return
		}
		h.logger.Error("sign-in lookup failed", zap.Error(err))
		common.RespondMessage(w, http.StatusInternalServerError, false, "Failed to log into account. Please try again.")
		return
	}

	if err := h.sessions.EstablishSession(ctx, w, req.IdentityToken); err != nil {
		h.logger.Warn("sign-in session establishment failed", zap.Error(err))
		common.RespondMessage(w, http.StatusUnauthorized, false, "Failed to log into account. Please try again.")
		return
	}

	common.RespondMessage(w, http.StatusOK, true, "Signed in successfully.")
}

// SignOut handles POST /auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.EndSession(w)
	common.RespondMessage(w, http.StatusOK, true, "Signed out.")
}

// Me handles GET /auth/me. An unauthenticated request is not an error;
// the data is simply null.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, common.CurrentUser(r.Context()))
}
