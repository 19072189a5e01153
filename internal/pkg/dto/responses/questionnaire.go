package responses

import (
	"survey-portal-service/internal/pkg/questionnaire"
	"time"
)

type SubmissionRecord struct {
	SessionID  string                     `json:"session_id"`
	Record     questionnaire.AnswerRecord `json:"record"`
	Status     string                     `json:"status"`
	Error      string                     `json:"error,omitempty"`
	RecordedAt time.Time                  `json:"recorded_at"`
}

type SubmitQuestionnaire struct {
	Page        *questionnaire.PageView `json:"page"`
	RecordsSent int                     `json:"records_sent"`
	ReceiptPath string                  `json:"receipt_path,omitempty"`
}
