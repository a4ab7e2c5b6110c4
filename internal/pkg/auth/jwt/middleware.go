package jwt

import (
	"context"
	"net/http"
	"strings"

	"nexora/internal/pkg/errs"
	"nexora/internal/pkg/logx"
	"nexora/internal/pkg/resp"
)

type contextKey string

// ContextClaimsKey is the request context key holding the caller's *Claims.
const ContextClaimsKey contextKey = "auth_claims"

// RequireUser rejects requests without a valid Bearer access token with
// 401 and stores the verified claims in the request context otherwise.
func RequireUser(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			claims, err := ParseToken(tokenString, secretKey)
			if err != nil {
				logx.Ctx(r.Context()).Warn().Err(err).Msg("Rejected access token")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), ContextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext returns the claims stored by RequireUser, or nil.
func GetClaimsFromContext(r *http.Request) *Claims {
	claims, ok := r.Context().Value(ContextClaimsKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
