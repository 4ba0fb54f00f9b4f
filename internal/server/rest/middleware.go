package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// accessTokenMiddleware gates protected routes. A request without a bearer
// credential is rejected before any verification work; invalid and expired
// tokens get the same external response, the cause only reaches the log.
// On success the resolved user id is attached to the request context.
func (s *RESTServer) accessTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			s.writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		tokenString, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || tokenString == "" {
			s.writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
		if err != nil {
			s.logger.Debug(r.Context(), "rejected token", "reason", err.Error())
			s.writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user id attached by the access
// token middleware. The second result is false for unauthenticated contexts.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// ContextWithUserID attaches a user id to ctx the same way the middleware
// does. Useful in tests and non-HTTP call sites.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
