package soap

// SubmitQuizAnswers carries one answer record. Element names follow the
// codeunit's parameter names, typos included.
type SubmitQuizAnswers struct {
	ProjectNo        string  `xml:"projectNo"`
	QuizNo           int     `xml:"quiZNo"`
	BoolAnswer       bool    `xml:"boolAnswer"`
	TxtAnswer        string  `xml:"txtAnswer"`
	NumberAnswer     float64 `xml:"numberAnswer"`
	SubmittedByName  string  `xml:"submitedByName"`
	SubmittedByEmail string  `xml:"submitedByEmail"`
	SurveyCode       string  `xml:"surveyCode"`
}

type IsSurveyFilledByEmail struct {
	Email      string `xml:"email"`
	SurveyCode string `xml:"surveyCode"`
}

type LoginCustomer struct {
	Email    string `xml:"email"`
	Password string `xml:"password"`
}
