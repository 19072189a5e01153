package controllers

import (
	"context"
	"net/http"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type SurveyController struct {
	Log            *zap.Logger
	SurveyUsecase  contracts.SurveyUsecase
	InternalConfig *config.InternalConfig
}

func NewSurveyController(logger *zap.Logger, surveyUsecase contracts.SurveyUsecase, internalConfig *config.InternalConfig) *SurveyController {
	return &SurveyController{
		Log:            logger,
		SurveyUsecase:  surveyUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *SurveyController) FindSurveys(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.SurveyUsecase.FindSurveys(ctx, identity)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindSurveysSuccessMessage, result)
}

func (ctrl *SurveyController) FindMyQuestionnaires(w http.ResponseWriter, r *http.Request) {
	identity, err := identityOf(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	result, err := ctrl.SurveyUsecase.FindMyQuestionnaires(ctx, identity)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, mapDeadline(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindMyAnswersSuccessMessage, result)
}
