package utils

import (
	"context"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/questionnaire"
)

// IdentityFromContext returns the caller set by the authentication middleware.
func IdentityFromContext(ctx context.Context) (questionnaire.Identity, bool) {
	identity, ok := ctx.Value(constvars.CONTEXT_IDENTITY_KEY).(questionnaire.Identity)
	return identity, ok
}
