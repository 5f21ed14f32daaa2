package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Chuseok22/Malsami-BE/internal/common"
	"github.com/Chuseok22/Malsami-BE/internal/server/services"
)

type ctxKey string

const authContextKey ctxKey = "authContext"

// AuthContextFrom extracts the authenticated identity placed in the request
// context by requireAuth.
func AuthContextFrom(ctx context.Context) (*services.AuthContext, bool) {
	authCtx, ok := ctx.Value(authContextKey).(*services.AuthContext)
	return authCtx, ok
}

// requireAuth resolves the Bearer access token to an authenticated identity
// and stores it in the request context. The refresh store is never
// consulted on this path.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing access token")
			return
		}

		authCtx, err := s.members.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrTokenExpired):
				s.writeError(w, http.StatusUnauthorized, "session expired, please sign in again")
			case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorNotFound):
				s.writeError(w, http.StatusUnauthorized, "unauthenticated")
			default:
				s.logger.Error(r.Context(), "authentication failed", "error", err)
				s.writeError(w, http.StatusInternalServerError, "authentication failed")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authContextKey, authCtx)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}
