package models

// Survey mirrors a row of the backend Survey entity set.
type Survey struct {
	SurveyCode  string `json:"SurveyCode"`
	Description string `json:"Description"`
	ProjectNo   string `json:"ProjectNo"`
	SurveyType  string `json:"SurveyType"`
	Status      string `json:"Status"`
	StartDate   string `json:"StartDate"`
	EndDate     string `json:"EndDate"`
}

// AnswerEntry mirrors a row of the backend answers entity set.
type AnswerEntry struct {
	SurveyCode     string  `json:"Survey_Code"`
	SurveyName     string  `json:"Survey_Name"`
	PeriodFrom     string  `json:"Period_From"`
	PeriodTo       string  `json:"Period_To"`
	QuizNo         int     `json:"Quiz_No"`
	Question       string  `json:"Question"`
	QuestionType   string  `json:"Question_Type"`
	TextAnswer     string  `json:"Text_Answer"`
	BooleanAnswer  bool    `json:"Boolean_Answer"`
	NumberAnswer   float64 `json:"Number_Answer"`
	AnsweredDate   string  `json:"Answered_Date"`
	AnsweredByName string  `json:"Answered_By_Name"`
	AnsweredBy     string  `json:"Answered_By_Email"`
}
