package questionnaire

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TypeHandler is the per-QuestionType contract: how the input renders, how a
// raw answer is normalized and checked, and how it serializes into records.
type TypeHandler interface {
	Input() string
	Normalize(q Question, choices []Choice, in Answer) (Answer, error)
	IsEmpty(a Answer) bool
	Default(choices []Choice, opts Options) (Answer, bool)
	Values(a Answer) []RecordValue
}

// RecordValue is the typed payload of one answer record.
type RecordValue struct {
	Bool   bool
	Text   string
	Number float64
}

var typeHandlers = map[Type]TypeHandler{
	TypeText:           &textHandler{},
	TypeNumber:         &numberHandler{},
	TypeDate:           &dateHandler{},
	TypeSingleChoice:   &singleChoiceHandler{},
	TypeMultipleChoice: &multipleChoiceHandler{},
	TypeYesNo:          &yesNoHandler{},
	TypeOrder:          &orderHandler{},
	TypeGeoLocation:    &geoLocationHandler{},
}

// HandlerFor returns the handler for t. Unknown types are treated as free text.
func HandlerFor(t Type) TypeHandler {
	if h, ok := typeHandlers[t]; ok {
		return h
	}
	return typeHandlers[TypeText]
}

type textHandler struct{}

func (h *textHandler) Input() string { return "text" }

func (h *textHandler) Normalize(_ Question, _ []Choice, in Answer) (Answer, error) {
	return Answer{Text: strings.TrimSpace(in.Text)}, nil
}

func (h *textHandler) IsEmpty(a Answer) bool { return a.Text == "" }

func (h *textHandler) Default([]Choice, Options) (Answer, bool) { return Answer{}, false }

func (h *textHandler) Values(a Answer) []RecordValue {
	return []RecordValue{{Text: a.Text}}
}

type numberHandler struct{}

func (h *numberHandler) Input() string { return "number" }

func (h *numberHandler) Normalize(_ Question, _ []Choice, in Answer) (Answer, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Answer{}, nil
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return Answer{}, fmt.Errorf("%q is not a number", text)
	}
	return Answer{Text: text}, nil
}

func (h *numberHandler) IsEmpty(a Answer) bool { return a.Text == "" }

func (h *numberHandler) Default([]Choice, Options) (Answer, bool) { return Answer{}, false }

// Values coerces the stored string; blank or malformed input submits 0.
func (h *numberHandler) Values(a Answer) []RecordValue {
	number, err := strconv.ParseFloat(a.Text, 64)
	if err != nil {
		number = 0
	}
	return []RecordValue{{Number: number}}
}

type dateHandler struct{}

func (h *dateHandler) Input() string { return "date" }

func (h *dateHandler) Normalize(_ Question, _ []Choice, in Answer) (Answer, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Answer{}, nil
	}
	if _, err := time.Parse(dateLayout, text); err != nil {
		return Answer{}, fmt.Errorf("%q is not a date in YYYY-MM-DD form", text)
	}
	return Answer{Text: text}, nil
}

func (h *dateHandler) IsEmpty(a Answer) bool { return a.Text == "" }

func (h *dateHandler) Default([]Choice, Options) (Answer, bool) { return Answer{}, false }

func (h *dateHandler) Values(a Answer) []RecordValue {
	return []RecordValue{{Text: a.Text}}
}

type singleChoiceHandler struct{}

func (h *singleChoiceHandler) Input() string { return "select" }

func (h *singleChoiceHandler) Normalize(_ Question, choices []Choice, in Answer) (Answer, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Answer{}, nil
	}
	if len(choices) > 0 && !hasChoice(choices, text) {
		return Answer{}, fmt.Errorf("%q is not one of the available options", text)
	}
	return Answer{Text: text}, nil
}

func (h *singleChoiceHandler) IsEmpty(a Answer) bool { return a.Text == "" }

func (h *singleChoiceHandler) Default([]Choice, Options) (Answer, bool) { return Answer{}, false }

func (h *singleChoiceHandler) Values(a Answer) []RecordValue {
	return []RecordValue{{Text: a.Text}}
}

type multipleChoiceHandler struct{}

func (h *multipleChoiceHandler) Input() string { return "checkbox" }

func (h *multipleChoiceHandler) Normalize(_ Question, choices []Choice, in Answer) (Answer, error) {
	seen := make(map[string]bool, len(in.Values))
	values := make([]string, 0, len(in.Values))
	for _, v := range in.Values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		if len(choices) > 0 && !hasChoice(choices, v) {
			return Answer{}, fmt.Errorf("%q is not one of the available options", v)
		}
		seen[v] = true
		values = append(values, v)
	}
	if len(values) == 0 {
		return Answer{}, nil
	}
	return Answer{Values: values}, nil
}

func (h *multipleChoiceHandler) IsEmpty(a Answer) bool { return len(a.Values) == 0 }

func (h *multipleChoiceHandler) Default([]Choice, Options) (Answer, bool) { return Answer{}, false }

// Values emits one record per selected choice.
func (h *multipleChoiceHandler) Values(a Answer) []RecordValue {
	values := make([]RecordValue, 0, len(a.Values))
	for _, v := range a.Values {
		values = append(values, RecordValue{Text: v})
	}
	return values
}

const (
	answerYes = "Yes"
	answerNo  = "No"
)

type yesNoHandler struct{}

func (h *yesNoHandler) Input() string { return "radio" }

func (h *yesNoHandler) Normalize(_ Question, _ []Choice, in Answer) (Answer, error) {
	text := strings.TrimSpace(in.Text)
	switch {
	case text == "":
		return Answer{}, nil
	case strings.EqualFold(text, answerYes):
		return Answer{Text: answerYes}, nil
	case strings.EqualFold(text, answerNo):
		return Answer{Text: answerNo}, nil
	}
	return Answer{}, fmt.Errorf("answer must be %q or %q", answerYes, answerNo)
}

func (h *yesNoHandler) IsEmpty(a Answer) bool { return a.Text == "" }

func (h *yesNoHandler) Default([]Choice, Options) (Answer, bool) { return Answer{}, false }

func (h *yesNoHandler) Values(a Answer) []RecordValue {
	return []RecordValue{{Bool: a.Text == answerYes}}
}

type orderHandler struct{}

func (h *orderHandler) Input() string { return "sortable" }

// Normalize accepts a full sequence. With a choice list present it must be a
// permutation of the choice texts.
func (h *orderHandler) Normalize(_ Question, choices []Choice, in Answer) (Answer, error) {
	values := make([]string, 0, len(in.Values))
	for _, v := range in.Values {
		values = append(values, strings.TrimSpace(v))
	}
	if len(values) == 0 {
		return Answer{}, nil
	}
	if len(choices) > 0 && !isPermutation(values, choices) {
		return Answer{}, fmt.Errorf("order must list every option exactly once")
	}
	return Answer{Values: values}, nil
}

func (h *orderHandler) IsEmpty(a Answer) bool { return len(a.Values) == 0 }

// Default starts the sequence in the choice order.
func (h *orderHandler) Default(choices []Choice, _ Options) (Answer, bool) {
	if len(choices) == 0 {
		return Answer{}, false
	}
	values := make([]string, 0, len(choices))
	for _, c := range choices {
		values = append(values, c.Choice)
	}
	return Answer{Values: values}, true
}

func (h *orderHandler) Values(a Answer) []RecordValue {
	return []RecordValue{{Text: a.Joined()}}
}

type geoLocationHandler struct{}

func (h *geoLocationHandler) Input() string { return "map" }

func (h *geoLocationHandler) Normalize(_ Question, _ []Choice, in Answer) (Answer, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Answer{}, nil
	}
	coordinate, err := ParseCoordinate(text)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: coordinate.String()}, nil
}

func (h *geoLocationHandler) IsEmpty(a Answer) bool { return a.Text == "" }

// Default is the device position when the client shared one, else the fallback.
func (h *geoLocationHandler) Default(_ []Choice, opts Options) (Answer, bool) {
	if opts.DeviceLocation != nil {
		return Answer{Text: opts.DeviceLocation.String()}, true
	}
	return Answer{Text: opts.FallbackLocation.String()}, true
}

func (h *geoLocationHandler) Values(a Answer) []RecordValue {
	return []RecordValue{{Text: a.Text}}
}

func hasChoice(choices []Choice, text string) bool {
	for _, c := range choices {
		if c.Choice == text {
			return true
		}
	}
	return false
}

func isPermutation(values []string, choices []Choice) bool {
	if len(values) != len(choices) {
		return false
	}
	remaining := make(map[string]int, len(choices))
	for _, c := range choices {
		remaining[c.Choice]++
	}
	for _, v := range values {
		if remaining[v] == 0 {
			return false
		}
		remaining[v]--
	}
	return true
}

// Reorder moves the element at index from to index to. Elements between the
// two positions shift by one. The input slice is left untouched.
func Reorder(values []string, from, to int) ([]string, error) {
	if from < 0 || from >= len(values) || to < 0 || to >= len(values) {
		return nil, fmt.Errorf("move %d -> %d out of range for %d items", from, to, len(values))
	}

	moved := make([]string, 0, len(values))
	moved = append(moved, values[:from]...)
	moved = append(moved, values[from+1:]...)

	item := values[from]
	moved = append(moved, "")
	copy(moved[to+1:], moved[to:])
	moved[to] = item

	return moved, nil
}
