package questionnaire

import (
	"context"
	"strconv"
)

// AnswerRecord is the normalized payload sent to the backend for one answer.
// Exactly one of BoolAnswer, TxtAnswer and NumberAnswer carries the value.
type AnswerRecord struct {
	ProjectNo        string  `json:"projectNo"`
	QuizNo           int     `json:"quizNo"`
	BoolAnswer       bool    `json:"boolAnswer"`
	TxtAnswer        string  `json:"txtAnswer"`
	NumberAnswer     float64 `json:"numberAnswer"`
	SubmittedByName  string  `json:"submittedByName"`
	SubmittedByEmail string  `json:"submittedByEmail"`
	SurveyCode       string  `json:"surveyCode"`
}

// Key identifies a record within a session. Re-submitting a session skips
// records whose key was already acknowledged.
func (r AnswerRecord) Key() string {
	return strconv.Itoa(r.QuizNo) + "|" +
		strconv.FormatBool(r.BoolAnswer) + "|" +
		strconv.FormatFloat(r.NumberAnswer, 'f', -1, 64) + "|" +
		r.TxtAnswer
}

// AnswerSink accepts one record per call.
type AnswerSink interface {
	SubmitAnswer(ctx context.Context, record AnswerRecord) error
}

// Pacer blocks until the next backend call may go out. *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Records serializes every answered, unlocked question in display order. A
// Number answer cleared to blank still yields a record with 0.
func (s *Session) Records() []AnswerRecord {
	locked := s.currentLocks()
	records := make([]AnswerRecord, 0, len(s.Answers))
	for _, q := range s.Questions {
		if !q.Answerable() || locked[q.QuizNo] {
			continue
		}
		answer, ok := s.Answers[q.QuizNo]
		if !ok {
			continue
		}
		handler := HandlerFor(q.QuestionType)
		if handler.IsEmpty(answer) && q.QuestionType != TypeNumber {
			continue
		}
		for _, v := range handler.Values(answer) {
			records = append(records, AnswerRecord{
				ProjectNo:        q.ProjectNo,
				QuizNo:           q.QuizNo,
				BoolAnswer:       v.Bool,
				TxtAnswer:        v.Text,
				NumberAnswer:     v.Number,
				SubmittedByName:  s.Owner.Name,
				SubmittedByEmail: s.Owner.Email,
				SurveyCode:       s.SurveyCode,
			})
		}
	}
	return records
}

// BeginSubmit runs the pre-submission checks and moves the session to
// submitting. A failed session may be submitted again; its answers are frozen.
func (s *Session) BeginSubmit(confirmed bool) error {
	switch s.State {
	case StateSubmitted:
		return ErrSessionSubmitted
	case StateSubmitting:
		return ErrSubmissionInProgress
	}

	if !s.IsLastPage() {
		return ErrNotLastPage
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	s.State = StateSubmitting
	s.FailedQuizNo = 0
	s.FailureCause = ""
	return nil
}

// Submit sends the session's records one at a time, awaiting each before the
// next. The first failure stops the loop and leaves the session failed; records
// already acknowledged stay sent and are skipped on the next attempt.
func (s *Session) Submit(ctx context.Context, sink AnswerSink, pacer Pacer, confirmed bool) error {
	if err := s.BeginSubmit(confirmed); err != nil {
		return err
	}

	sent := make(map[string]bool, len(s.SentKeys))
	for _, key := range s.SentKeys {
		sent[key] = true
	}

	for _, record := range s.Records() {
		key := record.Key()
		if sent[key] {
			continue
		}

		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				return s.fail(record.QuizNo, err)
			}
		}

		if err := sink.SubmitAnswer(ctx, record); err != nil {
			return s.fail(record.QuizNo, err)
		}

		sent[key] = true
		s.SentKeys = append(s.SentKeys, key)
	}

	s.State = StateSubmitted
	return nil
}

func (s *Session) fail(quizNo int, err error) error {
	s.State = StateFailed
	s.FailedQuizNo = quizNo
	s.FailureCause = err.Error()
	return &SubmissionError{QuizNo: quizNo, Sent: len(s.SentKeys), Err: err}
}
