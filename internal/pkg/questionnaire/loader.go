package questionnaire

import (
	"context"
	"sort"
)

// QuestionSource is the backend catalog the loader reads from.
type QuestionSource interface {
	FindQuestions(ctx context.Context) ([]Question, error)
	FindChoices(ctx context.Context) ([]Choice, error)
}

// Catalog is the loaded, filtered and sorted material for one survey.
type Catalog struct {
	SurveyCode string           `json:"survey_code"`
	Questions  []Question       `json:"questions"`
	Choices    map[int][]Choice `json:"choices,omitempty"`
}

// Load fetches the survey's questions and, when any of them needs one, the
// drill-down choice lists. Any failure is returned as a *LoadError.
func Load(ctx context.Context, source QuestionSource, surveyCode string) (*Catalog, error) {
	all, err := source.FindQuestions(ctx)
	if err != nil {
		return nil, &LoadError{SurveyCode: surveyCode, Err: err}
	}

	questions := FilterQuestions(all, surveyCode)
	if len(questions) == 0 {
		return nil, &LoadError{SurveyCode: surveyCode, Err: ErrNoQuestions}
	}

	catalog := &Catalog{
		SurveyCode: surveyCode,
		Questions:  questions,
	}

	if !anyNeedsChoices(questions) {
		return catalog, nil
	}

	choices, err := source.FindChoices(ctx)
	if err != nil {
		return nil, &LoadError{SurveyCode: surveyCode, Err: err}
	}
	catalog.Choices = PartitionChoices(choices, questions, surveyCode)

	return catalog, nil
}

// FilterQuestions keeps the survey's questions ordered by QuizNo, then category rank.
func FilterQuestions(all []Question, surveyCode string) []Question {
	questions := make([]Question, 0, len(all))
	for _, q := range all {
		if q.SurveyCode == surveyCode {
			questions = append(questions, q)
		}
	}

	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].QuizNo == questions[j].QuizNo {
			return questions[i].QuestionCategory.rank() < questions[j].QuestionCategory.rank()
		}
		return questions[i].QuizNo < questions[j].QuizNo
	})

	return questions
}

// PartitionChoices groups choices by owning QuizNo. A choice is kept when its
// question is loaded, its scope is empty or the survey code, and its project
// matches the question's.
func PartitionChoices(choices []Choice, questions []Question, surveyCode string) map[int][]Choice {
	projects := make(map[int]string, len(questions))
	for _, q := range questions {
		if _, ok := projects[q.QuizNo]; !ok || q.Answerable() {
			projects[q.QuizNo] = q.ProjectNo
		}
	}

	partitions := make(map[int][]Choice)
	for _, c := range choices {
		projectNo, ok := projects[c.QuizNo]
		if !ok {
			continue
		}
		if c.AuxiliaryIndex1 != "" && c.AuxiliaryIndex1 != surveyCode {
			continue
		}
		if c.ProjectNo != projectNo {
			continue
		}
		partitions[c.QuizNo] = append(partitions[c.QuizNo], c)
	}

	for quizNo := range partitions {
		partition := partitions[quizNo]
		sort.SliceStable(partition, func(i, j int) bool {
			return partition[i].AuxiliaryIndex2 < partition[j].AuxiliaryIndex2
		})
	}

	return partitions
}

func anyNeedsChoices(questions []Question) bool {
	for _, q := range questions {
		if q.NeedsChoices() {
			return true
		}
	}
	return false
}
