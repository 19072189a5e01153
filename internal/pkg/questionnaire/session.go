package questionnaire

import (
	"fmt"
	"sort"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateFailed     State = "failed"
)

const DefaultPageSize = 10

// Options configure a session at construction.
type Options struct {
	PageSize         int         `json:"page_size"`
	DeviceLocation   *Coordinate `json:"device_location,omitempty"`
	FallbackLocation Coordinate  `json:"fallback_location"`
}

// Session is the engine instance for one questionnaire run. Its fields are
// exported so the session can be persisted between requests.
type Session struct {
	ID           string           `json:"id"`
	SurveyCode   string           `json:"survey_code"`
	Owner        Identity         `json:"owner"`
	Questions    []Question       `json:"questions"`
	Choices      map[int][]Choice `json:"choices,omitempty"`
	Answers      map[int]Answer   `json:"answers"`
	Errors       map[int]string   `json:"errors"`
	Locked       map[int]bool     `json:"locked"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	State        State            `json:"state"`
	Options      Options          `json:"options"`
	SentKeys     []string         `json:"sent_keys,omitempty"`
	FailedQuizNo int              `json:"failed_quiz_no,omitempty"`
	FailureCause string           `json:"failure_cause,omitempty"`
}

// NewSession builds a ready session from a loaded catalog. Targets of an
// activator start locked; Order and Geo-Location questions get their defaults.
func NewSession(id string, catalog *Catalog, owner Identity, opts Options) *Session {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	s := &Session{
		ID:         id,
		SurveyCode: catalog.SurveyCode,
		Owner:      owner,
		Questions:  catalog.Questions,
		Choices:    catalog.Choices,
		Answers:    make(map[int]Answer),
		Errors:     make(map[int]string),
		PageSize:   opts.PageSize,
		State:      StateReady,
		Options:    opts,
	}
	if s.Choices == nil {
		s.Choices = make(map[int][]Choice)
	}

	s.Locked = LockedQuestions(s.Questions, s.Answers)
	for _, q := range s.Questions {
		if q.Answerable() && !s.Locked[q.QuizNo] {
			s.seedDefault(q)
		}
	}
	// Defaults can satisfy a trigger.
	s.applyLocks(s.Locked)

	return s
}

// TotalPages is ceil(len(questions) / page size).
func (s *Session) TotalPages() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return (len(s.Questions) + s.PageSize - 1) / s.PageSize
}

// PageQuestions returns the rows shown on the current page.
func (s *Session) PageQuestions() []Question {
	start := s.Page * s.PageSize
	if start >= len(s.Questions) {
		return nil
	}
	end := start + s.PageSize
	if end > len(s.Questions) {
		end = len(s.Questions)
	}
	return s.Questions[start:end]
}

// IsLastPage reports whether the current page is the final one.
func (s *Session) IsLastPage() bool {
	return s.Page >= s.TotalPages()-1
}

// SetAnswer records a value for an answerable question, recomputes the lock
// set and clears the field's error once it holds a value.
func (s *Session) SetAnswer(quizNo int, in Answer) error {
	if err := s.checkEditable(); err != nil {
		return err
	}

	q, err := s.answerable(quizNo)
	if err != nil {
		return err
	}

	handler := HandlerFor(q.QuestionType)
	answer, err := handler.Normalize(q, s.Choices[quizNo], in)
	if err != nil {
		s.Errors[quizNo] = err.Error()
		return &ValidationError{Fields: map[int]string{quizNo: err.Error()}}
	}

	s.store(q, answer)
	return nil
}

// ReorderAnswer moves one item of an Order answer from index from to index to.
func (s *Session) ReorderAnswer(quizNo, from, to int) error {
	if err := s.checkEditable(); err != nil {
		return err
	}

	q, err := s.answerable(quizNo)
	if err != nil {
		return err
	}
	if q.QuestionType != TypeOrder {
		return fmt.Errorf("question %d is not an order question", quizNo)
	}

	current := s.Answers[quizNo]
	if len(current.Values) == 0 {
		if seeded, ok := HandlerFor(TypeOrder).Default(s.Choices[quizNo], s.Options); ok {
			current = seeded
		}
	}

	moved, err := Reorder(current.Values, from, to)
	if err != nil {
		return &ValidationError{Fields: map[int]string{quizNo: err.Error()}}
	}

	s.store(q, Answer{Values: moved})
	return nil
}

// ResetLocation sets a Geo-Location answer to the given device position, or
// to the fallback coordinate when the device has none.
func (s *Session) ResetLocation(quizNo int, device *Coordinate) error {
	if err := s.checkEditable(); err != nil {
		return err
	}

	q, err := s.answerable(quizNo)
	if err != nil {
		return err
	}
	if q.QuestionType != TypeGeoLocation {
		return fmt.Errorf("question %d is not a geo-location question", quizNo)
	}

	if device != nil {
		s.Options.DeviceLocation = device
	}
	answer, _ := HandlerFor(TypeGeoLocation).Default(nil, s.Options)
	s.store(q, answer)
	return nil
}

// Next validates the current page and advances when it passes. On the last
// page it only validates.
func (s *Session) Next() error {
	if err := s.checkEditable(); err != nil {
		return err
	}

	if errs := s.validate(s.PageQuestions()); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if s.Page < s.TotalPages()-1 {
		s.Page++
	}
	return nil
}

// Previous moves back one page. On the first page it does nothing.
func (s *Session) Previous() error {
	if err := s.checkEditable(); err != nil {
		return err
	}

	if s.Page > 0 {
		s.Page--
	}
	return nil
}

// Validate checks every question and replaces the session's error set.
func (s *Session) Validate() error {
	if errs := s.validate(s.Questions); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// validate applies the mandatory rule to unlocked Question rows and stores the
// resulting errors, the way a page render would show them.
func (s *Session) validate(questions []Question) map[int]string {
	locked := s.currentLocks()
	errs := make(map[int]string)
	for _, q := range questions {
		if !q.Answerable() || !q.Mandatory || locked[q.QuizNo] {
			continue
		}
		answer, ok := s.Answers[q.QuizNo]
		if !ok || HandlerFor(q.QuestionType).IsEmpty(answer) {
			errs[q.QuizNo] = MessageRequired
		}
	}
	s.Errors = errs
	return errs
}

func (s *Session) store(q Question, answer Answer) {
	switch {
	case !HandlerFor(q.QuestionType).IsEmpty(answer):
		s.Answers[q.QuizNo] = answer
		delete(s.Errors, q.QuizNo)
	case q.QuestionType == TypeNumber:
		// a cleared number stays answered and submits as 0
		s.Answers[q.QuizNo] = answer
	default:
		delete(s.Answers, q.QuizNo)
	}
	s.applyLocks(s.Locked)
}

// applyLocks recomputes the lock set after an answer change. Questions that
// became locked lose their answer and error; questions that became unlocked
// get their default. Answers are cleared one level deep, but the stored lock
// set always matches LockedQuestions over the remaining answers.
func (s *Session) applyLocks(previous map[int]bool) {
	next := LockedQuestions(s.Questions, s.Answers)

	for quizNo := range next {
		if !previous[quizNo] {
			delete(s.Answers, quizNo)
			delete(s.Errors, quizNo)
		}
	}
	for quizNo := range previous {
		if next[quizNo] {
			continue
		}
		if q, ok := s.find(quizNo); ok {
			s.seedDefault(q)
		}
	}

	s.Locked = LockedQuestions(s.Questions, s.Answers)
}

// currentLocks evaluates the lock set from the answers held right now.
func (s *Session) currentLocks() map[int]bool {
	return LockedQuestions(s.Questions, s.Answers)
}

func (s *Session) seedDefault(q Question) {
	if _, ok := s.Answers[q.QuizNo]; ok {
		return
	}
	if answer, ok := HandlerFor(q.QuestionType).Default(s.Choices[q.QuizNo], s.Options); ok {
		s.Answers[q.QuizNo] = answer
	}
}

func (s *Session) checkEditable() error {
	switch s.State {
	case StateSubmitted:
		return ErrSessionSubmitted
	case StateSubmitting:
		return ErrSubmissionInProgress
	case StateFailed:
		return ErrSessionFailed
	}
	return nil
}

func (s *Session) answerable(quizNo int) (Question, error) {
	q, ok := s.find(quizNo)
	if !ok {
		return Question{}, ErrUnknownQuestion
	}
	if !q.Answerable() {
		return Question{}, ErrNotAnswerable
	}
	if s.Locked[quizNo] {
		return Question{}, ErrQuestionLocked
	}
	return q, nil
}

// find returns the answerable row for quizNo, or any row when none is answerable.
func (s *Session) find(quizNo int) (Question, bool) {
	var found Question
	ok := false
	for _, q := range s.Questions {
		if q.QuizNo != quizNo {
			continue
		}
		if q.Answerable() {
			return q, true
		}
		found, ok = q, true
	}
	return found, ok
}

// LockedQuizNos lists the locked questions in ascending order.
func (s *Session) LockedQuizNos() []int {
	quizNos := make([]int, 0, len(s.Locked))
	for quizNo := range s.Locked {
		quizNos = append(quizNos, quizNo)
	}
	sort.Ints(quizNos)
	return quizNos
}
