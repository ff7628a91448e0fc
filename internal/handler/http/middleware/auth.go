package middleware

import (
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired expects jwtauth.Verifier to have run. It accepts only access
// tokens whose session is still live and puts that session on the context.
func AuthRequired(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			c := jwt.ClaimsFromMap(claims)
			if c.Type != jwt.TokenTypeAccess || c.SessionID == "" {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			session, err := authService.Authenticate(r.Context(), c.SessionID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}
