package questionnaire

// QuestionView is one rendered row of the current page.
type QuestionView struct {
	QuizNo      int      `json:"quiz_no"`
	Question    string   `json:"question"`
	Category    Category `json:"category"`
	Type        Type     `json:"type"`
	Input       string   `json:"input,omitempty"`
	Mandatory   bool     `json:"mandatory"`
	DisplayOnly bool     `json:"display_only"`
	Locked      bool     `json:"locked"`
	ReadOnly    bool     `json:"read_only"`
	Choices     []string `json:"choices,omitempty"`
	Answer      *Answer  `json:"answer,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// PageView is what a client renders for the session's current page.
type PageView struct {
	SessionID    string         `json:"session_id"`
	SurveyCode   string         `json:"survey_code"`
	State        State          `json:"state"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	IsFirstPage  bool           `json:"is_first_page"`
	IsLastPage   bool           `json:"is_last_page"`
	CanSubmit    bool           `json:"can_submit"`
	Questions    []QuestionView `json:"questions"`
	Errors       map[int]string `json:"errors,omitempty"`
	SentRecords  int            `json:"sent_records"`
	FailedQuizNo int            `json:"failed_quiz_no,omitempty"`
	FailureCause string         `json:"failure_cause,omitempty"`
}

// View renders the current page. Page numbers are zero based.
func (s *Session) View() *PageView {
	readOnly := s.State != StateReady
	view := &PageView{
		SessionID:    s.ID,
		SurveyCode:   s.SurveyCode,
		State:        s.State,
		Page:         s.Page,
		TotalPages:   s.TotalPages(),
		IsFirstPage:  s.Page == 0,
		IsLastPage:   s.IsLastPage(),
		Errors:       s.Errors,
		SentRecords:  len(s.SentKeys),
		FailedQuizNo: s.FailedQuizNo,
		FailureCause: s.FailureCause,
	}
	view.CanSubmit = view.IsLastPage && (s.State == StateReady || s.State == StateFailed)

	for _, q := range s.PageQuestions() {
		row := QuestionView{
			QuizNo:      q.QuizNo,
			Question:    q.Question,
			Category:    q.QuestionCategory,
			Type:        q.QuestionType,
			Mandatory:   q.Mandatory,
			DisplayOnly: !q.Answerable(),
			Locked:      s.Locked[q.QuizNo],
			ReadOnly:    readOnly,
		}
		if q.Answerable() {
			row.Input = HandlerFor(q.QuestionType).Input()
			row.Error = s.Errors[q.QuizNo]
			for _, c := range s.Choices[q.QuizNo] {
				row.Choices = append(row.Choices, c.Choice)
			}
			if answer, ok := s.Answers[q.QuizNo]; ok {
				answer := answer
				row.Answer = &answer
			}
		}
		view.Questions = append(view.Questions, row)
	}

	return view
}
