package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"
	"survey-portal-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}

func identityOf(r *http.Request) (questionnaire.Identity, error) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		return questionnaire.Identity{}, exceptions.ErrTokenMissing(nil)
	}
	return identity, nil
}

func surveyCodeParam(r *http.Request) (string, error) {
	surveyCode := utils.SanitizeSurveyCode(chi.URLParam(r, constvars.URLParamSurveyCode))
	if err := utils.ValidateVar(surveyCode, "required,survey_code"); err != nil {
		return "", exceptions.ErrURLParamValidation(err, constvars.URLParamSurveyCode)
	}
	return surveyCode, nil
}

func sessionIDParam(r *http.Request) (string, error) {
	sessionID := chi.URLParam(r, constvars.URLParamSessionID)
	if err := utils.ValidateVar(sessionID, "required,session_id"); err != nil {
		return "", exceptions.ErrURLParamValidation(err, constvars.URLParamSessionID)
	}
	return sessionID, nil
}

func quizNoParam(r *http.Request) (int, error) {
	quizNo, err := strconv.Atoi(chi.URLParam(r, constvars.URLParamQuizNo))
	if err != nil {
		return 0, exceptions.ErrURLParamValidation(err, constvars.URLParamQuizNo)
	}
	return quizNo, nil
}

// decodeOptionalBody decodes a JSON body into request; an empty body leaves it untouched.
func decodeOptionalBody(r *http.Request, request interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil && !errors.Is(err, io.EOF) {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}
