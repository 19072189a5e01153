package middlewares

import (
	"context"
	"net/http"
	"strings"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate requires a bearer token and stores the caller's identity in the
// request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))
		identity, err := m.TokenManager.VerifyToken(r.Context(), token)
		if err != nil {
			m.Log.Info("Middlewares.Authenticate rejected token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_IDENTITY_KEY, *identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
