package constvars

const (
	URLParamSurveyCode = "survey_code"
	URLParamSessionID  = "session_id"
	URLParamQuizNo     = "quiz_no"
)
