package surveys

import (
	"context"
	"strconv"
	"strings"
	"survey-portal-service/internal/app/config"
	"survey-portal-service/internal/app/contracts"
	"survey-portal-service/internal/app/models"
	"survey-portal-service/internal/pkg/constvars"
	"survey-portal-service/internal/pkg/dto/responses"
	"survey-portal-service/internal/pkg/questionnaire"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type surveyUsecase struct {
	BackendRepository contracts.BackendRepository
	RedisRepository   contracts.RedisRepository
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewSurveyUsecase(
	backendRepository contracts.BackendRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SurveyUsecase {
	return &surveyUsecase{
		BackendRepository: backendRepository,
		RedisRepository:   redisRepository,
		InternalConfig:    internalConfig,
		Log:               logger,
	}
}

// FindSurveys lists the published surveys with a per-user already_filled flag.
// A failed status check leaves the flag false.
func (uc *surveyUsecase) FindSurveys(ctx context.Context, identity questionnaire.Identity) ([]responses.Survey, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("surveyUsecase.FindSurveys called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, identity.Email),
	)

	surveys, err := uc.findSurveyCatalog(ctx)
	if err != nil {
		uc.Log.Error("surveyUsecase.FindSurveys error fetching survey catalog",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	filled := uc.checkFilledStatuses(ctx, surveys, identity.Email)

	result := make([]responses.Survey, 0, len(surveys))
	for i, survey := range surveys {
		result = append(result, responses.Survey{
			SurveyCode:    survey.SurveyCode,
			Description:   survey.Description,
			ProjectNo:     survey.ProjectNo,
			SurveyType:    survey.SurveyType,
			Status:        survey.Status,
			StartDate:     survey.StartDate,
			EndDate:       survey.EndDate,
			AlreadyFilled: filled[i],
		})
	}

	uc.Log.Info("surveyUsecase.FindSurveys succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

// findSurveyCatalog serves the Survey entity set from the Redis cache and
// refreshes it from the backend on a miss. Cache failures only cost a refetch.
func (uc *surveyUsecase) findSurveyCatalog(ctx context.Context) ([]models.Survey, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	cached, err := uc.RedisRepository.Get(ctx, constvars.RedisKeySurveyCatalog)
	if err != nil {
		uc.Log.Warn("surveyUsecase.findSurveyCatalog error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if cached != "" {
		var surveys []models.Survey
		if err := json.Unmarshal([]byte(cached), &surveys); err == nil {
			uc.Log.Debug("surveyUsecase.findSurveyCatalog cache hit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Bool(constvars.LoggingCacheHitKey, true),
			)
			return surveys, nil
		}
	}

	surveys, err := uc.BackendRepository.FindSurveys(ctx)
	if err != nil {
		return nil, err
	}

	exp := time.Duration(uc.InternalConfig.Survey.CacheExpiredTimeInMinutes) * time.Minute
	if err := uc.RedisRepository.Set(ctx, constvars.RedisKeySurveyCatalog, surveys, exp); err != nil {
		uc.Log.Warn("surveyUsecase.findSurveyCatalog error writing cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return surveys, nil
}

func (uc *surveyUsecase) checkFilledStatuses(ctx context.Context, surveys []models.Survey, email string) []bool {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	filled := make([]bool, len(surveys))

	limit := uc.InternalConfig.Survey.StatusCheckBatchSize
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, survey := range surveys {
		i, surveyCode := i, survey.SurveyCode
		g.Go(func() error {
			isFilled, err := uc.BackendRepository.IsSurveyFilledByEmail(gctx, surveyCode, email)
			if err != nil {
				uc.Log.Warn("surveyUsecase.checkFilledStatuses status check failed",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingSurveyCodeKey, surveyCode),
					zap.Error(err),
				)
				return nil
			}
			filled[i] = isFilled
			return nil
		})
	}
	_ = g.Wait()

	return filled
}

// FindMyQuestionnaires groups the user's past answers by survey name, in the
// order the backend returned them.
func (uc *surveyUsecase) FindMyQuestionnaires(ctx context.Context, identity questionnaire.Identity) ([]responses.MyQuestionnaire, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("surveyUsecase.FindMyQuestionnaires called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, identity.Email),
	)

	entries, err := uc.BackendRepository.FindAnswers(ctx)
	if err != nil {
		uc.Log.Error("surveyUsecase.FindMyQuestionnaires error calling BackendRepository.FindAnswers",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.MyQuestionnaire, 0)
	index := make(map[string]int)
	for _, entry := range entries {
		if !strings.EqualFold(strings.TrimSpace(entry.AnsweredBy), identity.Email) {
			continue
		}

		i, ok := index[entry.SurveyName]
		if !ok {
			i = len(result)
			index[entry.SurveyName] = i
			result = append(result, responses.MyQuestionnaire{
				Name:       entry.SurveyName,
				SurveyCode: entry.SurveyCode,
				PeriodFrom: entry.PeriodFrom,
				PeriodTo:   entry.PeriodTo,
				Answers:    make([]responses.MyAnswer, 0),
			})
		}

		question := entry.Question
		if question == "" {
			question = "Question " + strconv.Itoa(entry.QuizNo)
		}
		result[i].Answers = append(result[i].Answers, responses.MyAnswer{
			QuizNo:       entry.QuizNo,
			Question:     question,
			QuestionType: entry.QuestionType,
			Answer:       displayAnswer(entry),
			AnsweredDate: dateOnly(entry.AnsweredDate),
		})
	}

	uc.Log.Info("surveyUsecase.FindMyQuestionnaires succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

// displayAnswer picks the first populated value: text, then a true boolean,
// then the number.
func displayAnswer(entry models.AnswerEntry) string {
	if entry.TextAnswer != "" {
		return entry.TextAnswer
	}
	if entry.BooleanAnswer {
		return strconv.FormatBool(entry.BooleanAnswer)
	}
	return strconv.FormatFloat(entry.NumberAnswer, 'f', -1, 64)
}

func dateOnly(raw string) string {
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}
