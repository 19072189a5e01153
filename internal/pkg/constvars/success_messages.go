package constvars

const (
	ResponseUnknown = "unknown"

	HealthCheckSuccessMessage = "service is healthy"

	LoginSuccessMessage = "successfully login"

	FindSurveysSuccessMessage   = "successfully fetched surveys"
	FindMyAnswersSuccessMessage = "successfully fetched your answered questionnaires"

	StartQuestionnaireSuccessMessage  = "questionnaire started"
	FindQuestionnaireSuccessMessage   = "successfully fetched questionnaire"
	SaveAnswerSuccessMessage          = "answer saved"
	ReorderAnswerSuccessMessage       = "answer reordered"
	ResetLocationSuccessMessage       = "location updated"
	NextPageSuccessMessage            = "moved to the next page"
	PreviousPageSuccessMessage        = "moved to the previous page"
	SubmitQuestionnaireSuccessMessage = "answers submitted successfully"
	FindSubmissionsSuccessMessage     = "successfully fetched submission records"
)
