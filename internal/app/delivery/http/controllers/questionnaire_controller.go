package controllers

import (
	"context"
	"net/http"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/dto/requests"
	"survey-portal-service/internal/pkg/exceptions"
	"survey-portal-service/internal/pkg/questionnaire"
	"survey-portal-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type QuestionnaireController struct {
	Log                  *zap.Logger
	QuestionnaireUsecase contracts.QuestionnaireUsecase
	InternalConfig       *config.InternalConfig
}

func NewQuestionnaireController(logger *zap.Logger, questionnaireUsecase contracts.QuestionnaireUsecase, internalConfig *config.InternalConfig) *QuestionnaireController {
	return &QuestionnaireController{
		Log:                  logger,
		QuestionnaireUsecase: questionnaireUsecase,
		InternalConfig:       internalConfig,
	}
}

func (ctrl *QuestionnaireController) timeout() time.Duration {
	return requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds)
}

// sessionRequest resolves the caller and the session_id URL param.
func (ctrl *QuestionnaireController) sessionRequest(r *http.Request) (questionnaire.Identity, string, error) {
	identity, err := identityOf(r)
	if err != nil {
		return questionnaire.Identity{}, "", err
	}
	sessionID, err := sessionIDParam(r)
	if err != nil {
		return questionnaire.Identity{}, "", err
	}
	return identity, sessionID, nil
}

func (ctrl *QuestionnaireController) StartSession(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	surveyCode, err := surveyCodeParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.StartQuestionnaire)
	if err := decodeOptionalBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Validate request
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	view, err := ctrl.QuestionnaireUsecase.StartSession(ctx, identity, surveyCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.StartQuestionnaireSuccessMessage, view)
}

func (ctrl *QuestionnaireController) FindSession(w http.ResponseWriter, r *http.Request) {
	identity, sessionID, err := ctrl.sessionRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	view, err := ctrl.QuestionnaireUsecase.FindSession(ctx, identity, sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindQuestionnaireSuccessMessage, view)
}

func (ctrl *QuestionnaireController) SetAnswer(w http.ResponseWriter, r *http.Request) {
	identity, sessionID, err := ctrl.sessionRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	quizNo, err := quizNoParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.SetAnswer)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	// Sanitize request
	utils.SanitizeSetAnswerRequest(request)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	view, err := ctrl.QuestionnaireUsecase.SetAnswer(ctx, identity, sessionID, quizNo, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SaveAnswerSuccessMessage, view)
}

func (ctrl *QuestionnaireController) ReorderAnswer(w http.ResponseWriter, r *http.Request) {
	identity, sessionID, err := ctrl.sessionRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	quizNo, err := quizNoParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.ReorderAnswer)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	view, err := ctrl.QuestionnaireUsecase.ReorderAnswer(ctx, identity, sessionID, quizNo, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReorderAnswerSuccessMessage, view)
}

func (ctrl *QuestionnaireController) ResetLocation(w http.ResponseWriter, r *http.Request) {
	identity, sessionID, err := ctrl.sessionRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	quizNo, err := quizNoParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ResetLocation)
	if err := decodeOptionalBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	view, err := ctrl.QuestionnaireUsecase.ResetLocation(ctx, identity, sessionID, quizNo, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResetLocationSuccessMessage, view)
}

func (ctrl *QuestionnaireController) NextPage(w http.ResponseWriter, r *http.Request) {
	identity, sessionID, err := ctrl.sessionRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	view, err := ctrl.QuestionnaireUsecase.NextPage(ctx, identity, sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NextPageSuccessMessage, view)
}

func (ctrl *QuestionnaireController) PreviousPage(w http.ResponseWriter, r *http.Request) {
	identity, sessionID, err := ctrl.sessionRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	view, err := ctrl.QuestionnaireUsecase.PreviousPage(ctx, identity, sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PreviousPageSuccessMessage, view)
}

// Submit gets its own, longer deadline since records are sent one at a time.
func (ctrl *QuestionnaireController) Submit(w http.ResponseWriter, r *http.Request) {
	identity, sessionID, err := ctrl.sessionRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.SubmitQuestionnaire)
	if err := decodeOptionalBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.Questionnaire.SubmitTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.QuestionnaireUsecase.Submit(ctx, identity, sessionID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitQuestionnaireSuccessMessage, result)
}

func (ctrl *QuestionnaireController) FindSubmissions(w http.ResponseWriter, r *http.Request) {
	identity, sessionID, err := ctrl.sessionRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	result, err := ctrl.QuestionnaireUsecase.FindSubmissions(ctx, identity, sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindSubmissionsSuccessMessage, result)
}
