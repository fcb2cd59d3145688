package middleware

import (
	"context"
	"net/http"

	"fintrack/internal/app/service"
	"fintrack/internal/common"
	"fintrack/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const PrincipalCtxKey contextKey = "principal"

// Authenticator resolves the bearer token into a Principal once per request
// and stores it in the context. Handlers downstream never see the raw token.
func Authenticator(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := jwtauth.TokenFromHeader(r)
			if tokenString == "" {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			principal, err := sessions.Resolve(r.Context(), tokenString)
			if err != nil {
				common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalCtxKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly gates mutation endpoints; composed after Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
			return
		}
		if err := service.RequireAdmin(principal); err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(*model.Principal)
	return principal, ok
}
