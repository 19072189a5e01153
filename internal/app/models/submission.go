package models

import (
	"survey-portal-service/internal/pkg/questionnaire"
	"time"
)

// SubmissionEntry is one ledger document: the outcome of sending one answer record.
type SubmissionEntry struct {
	SessionID  string                     `bson:"session_id" json:"session_id"`
	SurveyCode string                     `bson:"survey_code" json:"survey_code"`
	Email      string                     `bson:"email" json:"email"`
	RecordKey  string                     `bson:"record_key" json:"record_key"`
	Record     questionnaire.AnswerRecord `bson:"record" json:"record"`
	Status     string                     `bson:"status" json:"status"`
	Error      string                     `bson:"error,omitempty" json:"error,omitempty"`
	RecordedAt time.Time                  `bson:"recorded_at" json:"recorded_at"`
}

// SubmissionEvent is published once a session is fully submitted.
type SubmissionEvent struct {
	Event       string    `json:"event"`
	SessionID   string    `json:"session_id"`
	SurveyCode  string    `json:"survey_code"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	RecordsSent int       `json:"records_sent"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmissionReceipt is the archived copy of a submitted session.
type SubmissionReceipt struct {
	SessionID   string                       `json:"session_id"`
	SurveyCode  string                       `json:"survey_code"`
	Name        string                       `json:"name"`
	Email       string                       `json:"email"`
	Records     []questionnaire.AnswerRecord `json:"records"`
	SubmittedAt time.Time                    `json:"submitted_at"`
}
