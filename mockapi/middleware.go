package mockapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/user/snsclone-go/apperror"
)

type contextKey string

const accountIDKey contextKey = "accountID"

// jwtMiddleware authenticates requests carrying `Authorization: JWT <token>` or
// `Authorization: Bearer <token>` and stores the account id in the request context.
func (s *Server) jwtMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, apperror.NewAuthError("Authorization header is missing", nil))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || (!strings.EqualFold(parts[0], "jwt") && !strings.EqualFold(parts[0], "bearer")) {
			writeError(w, apperror.NewAuthError("Authorization header format must be JWT {token}", nil))
			return
		}

		claims, err := s.auth.validateToken(parts[1], tokenTypeAccess)
		if err != nil {
			writeError(w, apperror.NewAuthError("invalid token", err))
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accountFromContext returns the authenticated account id set by jwtMiddleware.
func accountFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey).(int64)
	return id, ok
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
