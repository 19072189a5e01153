package questionnaires

import (
	"errors"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"
)

// mapEngineError turns an engine error into the HTTP-facing CustomError.
func mapEngineError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *questionnaire.ValidationError
	if errors.As(err, &validationErr) {
		return exceptions.ErrQuestionnaireValidation(err, validationErr.Fields)
	}

	var submissionErr *questionnaire.SubmissionError
	if errors.As(err, &submissionErr) {
		return exceptions.ErrSubmitAnswer(err, submissionErr.QuizNo, submissionErr.Sent)
	}

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	switch {
	case errors.Is(err, questionnaire.ErrSessionSubmitted):
		return exceptions.ErrQuestionnaireState(err, constvars.StatusConflict, constvars.ErrClientQuestionnaireSubmitted)
	case errors.Is(err, questionnaire.ErrSessionFailed):
		return exceptions.ErrQuestionnaireState(err, constvars.StatusConflict, constvars.ErrClientQuestionnaireFrozen)
	case errors.Is(err, questionnaire.ErrSubmissionInProgress):
		return exceptions.ErrQuestionnaireState(err, constvars.StatusConflict, constvars.ErrClientSubmissionInProgress)
	case errors.Is(err, questionnaire.ErrConfirmationRequired):
		return exceptions.ErrQuestionnaireState(err, constvars.StatusBadRequest, constvars.ErrClientConfirmationRequired)
	case errors.Is(err, questionnaire.ErrNotLastPage):
		return exceptions.ErrQuestionnaireState(err, constvars.StatusConflict, constvars.ErrClientNotLastPage)
	case errors.Is(err, questionnaire.ErrUnknownQuestion):
		return exceptions.ErrQuestionnaireState(err, constvars.StatusNotFound, constvars.ErrClientQuestionNotFound)
	case errors.Is(err, questionnaire.ErrNotAnswerable):
		return exceptions.ErrQuestionnaireState(err, constvars.StatusUnprocessableEntity, constvars.ErrClientQuestionDisplayOnly)
	case errors.Is(err, questionnaire.ErrQuestionLocked):
		return exceptions.ErrQuestionnaireState(err, constvars.StatusUnprocessableEntity, constvars.ErrClientQuestionLocked)
	}

	return exceptions.ErrQuestionnaireState(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest)
}
