package middlewares

import (
	"net/http"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit limits each client IP to App.MaxRequests per second.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}
