package utils

import (
	"survey-portal-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLoginRequest(t *testing.T) {
	t.Run("Email Sanitization", func(t *testing.T) {
		request := &requests.Login{
			Email:    "  JANE.DOE@EXAMPLE.COM  ",
			Password: " secret ",
		}

		SanitizeLoginRequest(request)

		assert.Equal(t, "jane.doe@example.com", request.Email, "email should be lowercase and trimmed")
		assert.Equal(t, " secret ", request.Password, "password should be left untouched")
	})

	t.Run("Already Clean Email", func(t *testing.T) {
		request := &requests.Login{Email: "user@domain.org"}

		SanitizeLoginRequest(request)

		assert.Equal(t, "user@domain.org", request.Email)
	})
}

func TestSanitizeSetAnswerRequest(t *testing.T) {
	t.Run("Text Sanitization", func(t *testing.T) {
		request := &requests.SetAnswer{Text: "  Nairobi  "}

		SanitizeSetAnswerRequest(request)

		assert.Equal(t, "Nairobi", request.Text, "text should be trimmed")
		assert.Nil(t, request.Values, "missing values should stay nil")
	})

	t.Run("Values Sanitization", func(t *testing.T) {
		request := &requests.SetAnswer{Values: []string{"  Red ", "Blue  ", "  "}}

		SanitizeSetAnswerRequest(request)

		assert.Equal(t, []string{"Red", "Blue", ""}, request.Values, "values should be trimmed in place")
	})

	t.Run("Empty Values Array", func(t *testing.T) {
		request := &requests.SetAnswer{Values: []string{}}

		SanitizeSetAnswerRequest(request)

		assert.Equal(t, []string{}, request.Values, "empty values array should remain empty")
	})
}

func TestSanitizeSurveyCode(t *testing.T) {
	assert.Equal(t, "srv-001", SanitizeSurveyCode("  srv-001 "))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("SRV-001", "required,survey_code"))
	assert.Error(t, ValidateVar("SRV 001;", "required,survey_code"))
	assert.Error(t, ValidateVar("", "required,survey_code"))
	assert.NoError(t, ValidateVar("3b241101-e2bb-4255-8caf-4136c566a962", "required,session_id"))
	assert.Error(t, ValidateVar("not-a-session", "required,session_id"))
}
