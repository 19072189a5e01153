package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_IDENTITY_KEY             ContextKey = "identity"
)

const (
	ResourceAuth           = "auth"
	ResourceSurveys        = "surveys"
	ResourceQuestionnaires = "questionnaires"
)

// OData entity sets exposed by the backend company.
const (
	EntitySetQuestions        = "Questions"
	EntitySetDrillDownAnswers = "DrillDownAnswers"
	EntitySetSurvey           = "Survey"
	EntitySetAnswers          = "answers"
)

// Actions of the ProjectQuestions SOAP codeunit.
const (
	SOAPActionSubmitQuizAnswers     = "SubmitQuizAnswers"
	SOAPActionIsSurveyFilledByEmail = "isSurveyfilledByEmail"
	SOAPActionLoginCustomer         = "FnloginCustomer"
	SOAPCodeunitNamespaceFormat     = "urn:microsoft-dynamics-schemas/codeunit/%s"
)

const (
	RedisKeyQuestionnaireSessionFormat = "questionnaire:session:%s"
	RedisKeyQuestionnaireLockFormat    = "questionnaire:lock:%s"
	RedisKeySurveyCatalog              = "survey:catalog"
)

const (
	EventSurveySubmitted       = "survey.submitted"
	ReceiptObjectNameFormat    = "%s/%s/%s.json"
	SubmissionStatusSent       = "sent"
	SubmissionStatusFailed     = "failed"
	SubmissionLedgerSessionID  = "session_id"
	SubmissionLedgerRecordedAt = "recorded_at"
)

const (
	RegexSurveyCode = `^[A-Za-z0-9][A-Za-z0-9_\-]{0,49}$`
	RegexSessionID  = `^[0-9a-fA-F\-]{36}$`
)

const (
	ODataEntitySetURLFormat = "%s/%s/ODataV4/Company('%s')/%s"
	SOAPCodeunitURLFormat   = "%s/%s/WS/%s/Codeunit/%s"
	SOAPEnvelopeNamespace   = "http://schemas.xmlsoap.org/soap/envelope/"
)
