package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorder(t *testing.T) {
	items := []string{"A", "B", "C", "D"}

	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{name: "Forward", from: 0, to: 2, want: []string{"B", "C", "A", "D"}},
		{name: "Backward", from: 3, to: 1, want: []string{"A", "D", "B", "C"}},
		{name: "Same position", from: 2, to: 2, want: []string{"A", "B", "C", "D"}},
		{name: "To the end", from: 0, to: 3, want: []string{"B", "C", "D", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reorder(items, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"A", "B", "C", "D"}, items, "input is not modified")
		})
	}

	_, err := Reorder(items, -1, 0)
	assert.Error(t, err)
	_, err = Reorder(items, 0, 4)
	assert.Error(t, err)
}

func TestHandlerFor_UnknownTypeIsText(t *testing.T) {
	handler := HandlerFor(Type("Signature"))
	assert.Equal(t, "text", handler.Input())

	answer, err := handler.Normalize(Question{}, nil, Answer{Text: " hello "})
	require.NoError(t, err)
	assert.Equal(t, "hello", answer.Text)
}

func TestHandlers_Normalize(t *testing.T) {
	choices := []Choice{{Choice: "Red"}, {Choice: "Blue"}}

	tests := []struct {
		name    string
		typ     Type
		in      Answer
		want    Answer
		wantErr bool
	}{
		{name: "Number", typ: TypeNumber, in: Answer{Text: " 12.5 "}, want: Answer{Text: "12.5"}},
		{name: "Number rejects text", typ: TypeNumber, in: Answer{Text: "twelve"}, wantErr: true},
		{name: "Date", typ: TypeDate, in: Answer{Text: "2024-02-29"}, want: Answer{Text: "2024-02-29"}},
		{name: "Date rejects other layouts", typ: TypeDate, in: Answer{Text: "29/02/2024"}, wantErr: true},
		{name: "Yes/No canonicalizes", typ: TypeYesNo, in: Answer{Text: "yes"}, want: Answer{Text: "Yes"}},
		{name: "Yes/No rejects other values", typ: TypeYesNo, in: Answer{Text: "maybe"}, wantErr: true},
		{name: "Single choice", typ: TypeSingleChoice, in: Answer{Text: "Blue"}, want: Answer{Text: "Blue"}},
		{name: "Single choice rejects unknown", typ: TypeSingleChoice, in: Answer{Text: "Green"}, wantErr: true},
		{name: "Blank clears", typ: TypeSingleChoice, in: Answer{Text: "  "}, want: Answer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HandlerFor(tt.typ).Normalize(Question{QuestionType: tt.typ}, choices, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandlers_Values(t *testing.T) {
	assert.Equal(t, []RecordValue{{Bool: false}}, HandlerFor(TypeYesNo).Values(Answer{Text: "No"}))
	assert.Equal(t, []RecordValue{{Number: 0}}, HandlerFor(TypeNumber).Values(Answer{Text: "n/a"}))
	assert.Equal(t, []RecordValue{{Text: "B,A"}}, HandlerFor(TypeOrder).Values(Answer{Values: []string{"B", "A"}}))
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("-1.286389,36.817223")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Lat: -1.286389, Lng: 36.817223}, c)

	for _, raw := range []string{"", "1", "a,b", "1,200", "-95,0"} {
		_, err := ParseCoordinate(raw)
		assert.Error(t, err, raw)
	}
}
