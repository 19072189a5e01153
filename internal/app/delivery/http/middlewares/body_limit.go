package middlewares

import (
	"net/http"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/utils"
)

// BodyLimit rejects requests whose declared length exceeds the configured
// limit and caps the reader for the rest.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) << 20
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > limit {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRequestBodyTooLarge(nil, limit))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}
