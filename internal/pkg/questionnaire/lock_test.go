package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockedQuestions(t *testing.T) {
	questions := []Question{
		{QuizNo: 1, QuestionCategory: CategoryQuestion, QuestionType: TypeSingleChoice, ActivatesQuestion: 3, ActivatesBasedOnAnswer: "Maize"},
		{QuizNo: 2, QuestionCategory: CategoryQuestion, QuestionType: TypeMultipleChoice, ActivatesQuestion: 3, ActivatesBasedOnAnswer: "Beans"},
		{QuizNo: 3, QuestionCategory: CategoryQuestion, QuestionType: TypeText},
		{QuizNo: 4, QuestionCategory: CategoryHeader, ActivatesQuestion: 5, ActivatesBasedOnAnswer: "x"},
		{QuizNo: 5, QuestionCategory: CategoryQuestion, QuestionType: TypeText},
	}

	tests := []struct {
		name    string
		answers map[int]Answer
		locked  map[int]bool
	}{
		{
			name:    "No answers locks every target",
			answers: map[int]Answer{},
			locked:  map[int]bool{3: true},
		},
		{
			name:    "Either activator unlocks",
			answers: map[int]Answer{1: {Text: "Rice"}, 2: {Values: []string{"Peas", "beans"}}},
			locked:  map[int]bool{},
		},
		{
			name:    "Answer match ignores case and padding",
			answers: map[int]Answer{1: {Text: "  maize "}},
			locked:  map[int]bool{},
		},
		{
			name:    "Non-matching answers keep the lock",
			answers: map[int]Answer{1: {Text: "Rice"}, 2: {Values: []string{"Peas"}}},
			locked:  map[int]bool{3: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.locked, LockedQuestions(questions, tt.answers))
		})
	}
}

func TestLockedQuestions_AnswerTriggerWins(t *testing.T) {
	questions := []Question{
		{QuizNo: 1, QuestionCategory: CategoryQuestion, QuestionType: TypeText, ActivatesQuestion: 2, ActivatesBasedOnAnswer: "ten", ActivatesBasedOnValue: triggerValue(10)},
		{QuizNo: 2, QuestionCategory: CategoryQuestion, QuestionType: TypeText},
	}

	assert.Equal(t, map[int]bool{2: true}, LockedQuestions(questions, map[int]Answer{1: {Text: "10"}}))
	assert.Empty(t, LockedQuestions(questions, map[int]Answer{1: {Text: "Ten"}}))
}
