package responses

type Survey struct {
	SurveyCode    string `json:"survey_code"`
	Description   string `json:"description"`
	ProjectNo     string `json:"project_no"`
	SurveyType    string `json:"survey_type"`
	Status        string `json:"status"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	AlreadyFilled bool   `json:"already_filled"`
}

type MyAnswer struct {
	QuizNo       int    `json:"quiz_no"`
	Question     string `json:"question"`
	QuestionType string `json:"question_type"`
	Answer       string `json:"answer"`
	AnsweredDate string `json:"answered_date"`
}

type MyQuestionnaire struct {
	Name       string     `json:"name"`
	SurveyCode string     `json:"survey_code"`
	PeriodFrom string     `json:"period_from"`
	PeriodTo   string     `json:"period_to"`
	Answers    []MyAnswer `json:"answers"`
}
