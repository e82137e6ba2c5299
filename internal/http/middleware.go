package httpserver

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireAuth rejects requests without a valid bearer token and attaches
// the decoded user id to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if header == "" || !strings.HasPrefix(header, prefix) {
			s.respondError(w, http.StatusUnauthorized, "Missing or invalid authentication information")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		claims, err := s.tokens.Validate(token)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "Missing or invalid authentication information")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFrom returns the authenticated user id attached by requireAuth.
func userIDFrom(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok
}
