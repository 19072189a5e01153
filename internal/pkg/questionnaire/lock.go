package questionnaire

import (
	"strconv"
	"strings"
)

// LockedQuestions returns the QuizNos hidden because none of their activators
// currently holds the triggering value. It only reads its arguments.
func LockedQuestions(questions []Question, answers map[int]Answer) map[int]bool {
	targets := make(map[int]bool)
	for _, q := range questions {
		if !q.activates() {
			continue
		}
		answer, answered := answers[q.QuizNo]
		unlocked := answered && triggers(q, answer)
		targets[q.ActivatesQuestion] = targets[q.ActivatesQuestion] || unlocked
	}

	locked := make(map[int]bool)
	for quizNo, unlocked := range targets {
		if !unlocked {
			locked[quizNo] = true
		}
	}
	return locked
}

// triggers evaluates the activator's predicate against its answer. The answer
// trigger wins when both are configured.
func triggers(activator Question, answer Answer) bool {
	if want := strings.TrimSpace(activator.ActivatesBasedOnAnswer); want != "" {
		if len(answer.Values) > 0 {
			for _, v := range answer.Values {
				if strings.EqualFold(strings.TrimSpace(v), want) {
					return true
				}
			}
			return false
		}
		return strings.EqualFold(strings.TrimSpace(answer.Text), want)
	}

	if activator.ActivatesBasedOnValue.Set {
		got, err := strconv.ParseFloat(strings.TrimSpace(answer.Text), 64)
		if err != nil {
			return false
		}
		return got == activator.ActivatesBasedOnValue.Value
	}

	return false
}
