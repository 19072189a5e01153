package utils

import (
	"strings"
	"survey-portal-service/internal/pkg/dto/requests"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	result := make([]string, 0, len(input))
	for _, str := range input {
		result = append(result, strings.TrimSpace(str))
	}
	return result
}

func SanitizeLoginRequest(input *requests.Login) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

// SanitizeSetAnswerRequest trims the answer. Blank list entries are kept so
// the engine can report an Order sequence that lost an item.
func SanitizeSetAnswerRequest(input *requests.SetAnswer) {
	input.Text = strings.TrimSpace(input.Text)
	if input.Values != nil {
		input.Values = cleanWhiteSpaceFromEachStringOfAnArray(input.Values)
	}
}

func SanitizeSurveyCode(surveyCode string) string {
	return strings.TrimSpace(surveyCode)
}
