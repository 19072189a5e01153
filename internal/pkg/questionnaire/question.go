package questionnaire

import (
	"fmt"
	"strconv"
	"strings"
)

type Category string

const (
	CategorySummary  Category = "Summary"
	CategoryHeader   Category = "Header"
	CategoryQuestion Category = "Question"
)

// rank orders rows sharing a QuizNo: Summary, then Header, then Question.
func (c Category) rank() int {
	switch c {
	case CategorySummary:
		return 1
	case CategoryHeader:
		return 2
	case CategoryQuestion:
		return 3
	default:
		return 4
	}
}

type Type string

const (
	TypeText           Type = "Text"
	TypeNumber         Type = "Number"
	TypeDate           Type = "Date"
	TypeSingleChoice   Type = "Single Choice"
	TypeMultipleChoice Type = "Multiple Choice"
	TypeYesNo          Type = "Yes/No"
	TypeOrder          Type = "Order"
	TypeGeoLocation    Type = "Geo-Location"
)

// ListDelimiter joins list answers into a single text value.
const ListDelimiter = ","

// Question mirrors a row of the backend Questions entity set.
type Question struct {
	QuizNo                 int          `json:"QuizNo"`
	SurveyCode             string       `json:"SurveyCode"`
	ProjectNo              string       `json:"ProjectNo"`
	Question               string       `json:"Question"`
	QuestionCategory       Category     `json:"QuestionCategory"`
	QuestionType           Type         `json:"QuestionType"`
	Mandatory              bool         `json:"Mandatory"`
	RequiresDrillDown      bool         `json:"RequiresDrillDown"`
	ActivatesQuestion      int          `json:"ActivatesQuestion,omitempty"`
	ActivatesBasedOnAnswer string       `json:"ActivatesBasedOnAnswer,omitempty"`
	ActivatesBasedOnValue  TriggerValue `json:"ActivatesBasedOnValue"`
}

// Answerable reports whether the row takes input. Summary and Header rows are display only.
func (q Question) Answerable() bool {
	return q.QuestionCategory == CategoryQuestion
}

// NeedsChoices reports whether the question is backed by a drill-down choice list.
func (q Question) NeedsChoices() bool {
	if !q.RequiresDrillDown {
		return false
	}
	switch q.QuestionType {
	case TypeSingleChoice, TypeMultipleChoice, TypeOrder:
		return true
	}
	return false
}

// activates reports whether the question controls another one.
func (q Question) activates() bool {
	return q.Answerable() && q.ActivatesQuestion != 0 && q.ActivatesQuestion != q.QuizNo
}

// Choice mirrors a row of the backend DrillDownAnswers entity set.
type Choice struct {
	QuizNo          int    `json:"QuizNo"`
	Choice          string `json:"Choice"`
	AuxiliaryIndex1 string `json:"AuxiliaryIndex1"`
	AuxiliaryIndex2 Number `json:"AuxiliaryIndex2"`
	ProjectNo       string `json:"ProjectNo"`
}

// Answer holds one question's current value. Scalar types use Text,
// Multiple Choice and Order use Values.
type Answer struct {
	Text   string   `json:"text,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Joined returns the delimiter-joined list, or Text for scalar answers.
func (a Answer) Joined() string {
	if len(a.Values) > 0 {
		return strings.Join(a.Values, ListDelimiter)
	}
	return a.Text
}

// Identity stamps answer records with the submitter.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// ParseCoordinate reads a "lat,lng" pair.
func ParseCoordinate(raw string) (Coordinate, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("expected \"lat,lng\", got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude %q", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude %q", parts[1])
	}
	if lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("latitude %v out of range", lat)
	}
	if lng < -180 || lng > 180 {
		return Coordinate{}, fmt.Errorf("longitude %v out of range", lng)
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// Number is a numeric backend field that may arrive as a JSON number or as a
// numeric string. Null and blank strings decode to 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	value, _, err := parseNumber(data)
	if err != nil {
		return err
	}
	*n = Number(value)
	return nil
}

// TriggerValue is an optional numeric trigger. Null, absent and blank values
// leave it unset.
type TriggerValue struct {
	Value float64
	Set   bool
}

func (v *TriggerValue) UnmarshalJSON(data []byte) error {
	value, set, err := parseNumber(data)
	if err != nil {
		return err
	}
	*v = TriggerValue{Value: value, Set: set}
	return nil
}

func (v TriggerValue) MarshalJSON() ([]byte, error) {
	if !v.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v.Value, 'f', -1, 64)), nil
}

func parseNumber(data []byte) (float64, bool, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return 0, false, nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s is not a number", data)
	}
	return value, true, nil
}
