package middleware

import (
	"net/http"

	"interviewprep-backend/application/services"
	"interviewprep-backend/pkg/common"
)

// Session resolves the request's session cookie to a user and attaches it
// to the context. Resolution never fails the request: an invalid or absent
// cookie simply means no current user.
func Session(sessions *services.SessionManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sessions.ResolveCurrentUser(r.Context(), r)
			ctx := common.WithCurrentUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no current user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if common.CurrentUser(r.Context()) == nil {
			common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Please sign in")
			return
		}
		next.ServeHTTP(w, r)
	})
}
