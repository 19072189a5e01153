package questionnaire

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const MessageRequired = "This field is required"

var (
	ErrSessionSubmitted     = errors.New("questionnaire already submitted")
	ErrSessionFailed        = errors.New("questionnaire submission failed; answers are frozen until it is re-submitted")
	ErrSubmissionInProgress = errors.New("questionnaire submission in progress")
	ErrConfirmationRequired = errors.New("submission must be confirmed")
	ErrNotLastPage          = errors.New("questionnaire can only be submitted from the last page")
	ErrUnknownQuestion      = errors.New("question does not belong to this questionnaire")
	ErrNotAnswerable        = errors.New("question is display only")
	ErrQuestionLocked       = errors.New("question is locked")
	ErrNoQuestions          = errors.New("survey has no questions")
)

// LoadError reports a failed question or choice retrieval. It is terminal.
type LoadError struct {
	SurveyCode string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load questionnaire %s: %v", e.SurveyCode, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError carries per-field messages keyed by QuizNo.
type ValidationError struct {
	Fields map[int]string
}

func (e *ValidationError) Error() string {
	quizNos := make([]int, 0, len(e.Fields))
	for quizNo := range e.Fields {
		quizNos = append(quizNos, quizNo)
	}
	sort.Ints(quizNos)

	parts := make([]string, 0, len(quizNos))
	for _, quizNo := range quizNos {
		parts = append(parts, fmt.Sprintf("%d: %s", quizNo, e.Fields[quizNo]))
	}
	return "validation failed (" + strings.Join(parts, "; ") + ")"
}

// SubmissionError names the question whose record could not be sent.
// Records sent before it stay sent.
type SubmissionError struct {
	QuizNo int
	Sent   int
	Err    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit answer for question %d (%d records already sent): %v", e.QuizNo, e.Sent, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
