package middleware

import (
	"context"
	"net/http"
	"strings"

	"movie-favorites/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionValidator resolves a bearer token to a user id. It returns an
// unauthorized AppError for unknown, revoked or expired tokens.
type SessionValidator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthSession rejects requests without a valid bearer token before they reach
// the next handler. On success the user id and token are put in the context.
func AuthSession(sessions SessionValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Debug("Missing or malformed authorization header",
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Missing or invalid authorization token. Use: Bearer <token>")
				return
			}

			userID, err := sessions.Authenticate(r.Context(), token)
			if err != nil {
				utils.WriteError(w, r, logger, err)
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts <token> from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
