package constvars

const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientBackendUnavailable            = "the survey service is unavailable, please try again later"
	ErrClientQuestionnaireUnavailable      = "failed to load the questionnaire"
	ErrClientQuestionnaireNotFound         = "questionnaire session not found"
	ErrClientQuestionnaireBusy             = "questionnaire is being updated, please retry"
	ErrClientQuestionnaireValidation       = "please correct the highlighted answers"
	ErrClientQuestionnaireSubmitted        = "questionnaire already submitted"
	ErrClientQuestionnaireFrozen           = "questionnaire submission failed, submit again to resume"
	ErrClientSubmissionInProgress          = "questionnaire submission is in progress"
	ErrClientConfirmationRequired          = "please confirm the submission"
	ErrClientNotLastPage                   = "answers can only be submitted from the last page"
	ErrClientSubmitAnswer                  = "failed to submit the answer to question %d, %d answers were already sent; submit again to resume"
	ErrClientSubmitAnswerField             = "this answer could not be sent"
	ErrClientSurveyAlreadyFilled           = "you have already completed this survey"
	ErrClientSurveyNotFound                = "survey not found or has no questions"
	ErrClientQuestionNotFound              = "question does not belong to this questionnaire"
	ErrClientQuestionLocked                = "this question is locked by an earlier answer"
	ErrClientQuestionDisplayOnly           = "this row does not accept answers"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientRequestBodyTooLarge           = "request body is too large"
)

const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevCannotParseXML             = "cannot parse XML"
	ErrDevCannotMarshalXML           = "cannot marshal XML"
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamValidationFailed   = "url param %s validation failed"
	ErrDevInvalidCredentials         = "invalid credentials"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevReadBody                   = "failed to read response body"
	ErrDevServerDeadlineExceeded     = "deadline exceeded"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevRateLimitExceeded          = "rate limit exceeded"
	ErrDevRequestBodyTooLarge        = "request body exceeds %d bytes"
	ErrDevPanicRecovered             = "recovered from panic"
	ErrDevAuthTokenMissing           = "token missing"
	ErrDevAuthTokenInvalidOrExpired  = "token invalid or expired"
	ErrDevAuthGenerateToken          = "failed to generate token"
	ErrDevODataFetchEntitySet        = "failed to fetch OData entity set %s"
	ErrDevODataDecodeEntitySet       = "failed to decode OData entity set %s"
	ErrDevSOAPCallAction             = "failed to call SOAP action %s"
	ErrDevSOAPFault                  = "SOAP action %s returned a fault"
	ErrDevSOAPDecodeAction           = "failed to decode SOAP response of %s"
	ErrDevLoadQuestionnaire          = "failed to load questionnaire %s"
	ErrDevQuestionnaireNotFound      = "questionnaire session %s not found"
	ErrDevQuestionnaireLocked        = "questionnaire session %s is locked by another request"
	ErrDevQuestionnaireValidation    = "questionnaire answers failed validation"
	ErrDevQuestionnaireState         = "questionnaire session state does not allow this action"
	ErrDevSubmitAnswer               = "failed to submit answer record"
	ErrDevSurveyAlreadyFilled        = "survey %s already filled by %s"
	ErrDevSurveyNotFound             = "survey %s has no questions"
	ErrDevRedisGetData               = "failed to get data from redis"
	ErrDevRedisGetNoData             = "no data found in redis for key %s"
	ErrDevRedisSetData               = "failed to set data into redis"
	ErrDevRedisDeleteData            = "failed to delete data from redis"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from database"
	ErrDevMinioFailedToCreateObject  = "failed to create object in bucket %s"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to queue %s"
)

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":  "is required",
	"email":     "must be a valid email",
	"min":       "must be at least %s",
	"max":       "must be at most %s",
	"gte":       "must be greater than or equal to %s",
	"lte":       "must be less than or equal to %s",
	"latitude":  "must be a valid latitude",
	"longitude": "must be a valid longitude",
	"oneof":     "must be one of [%s]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}
