package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SURVEY_TEST_STRING", "  value ")
	t.Setenv("SURVEY_TEST_BLANK", "   ")
	t.Setenv("SURVEY_TEST_INT", "42")
	t.Setenv("SURVEY_TEST_BAD_INT", "forty")
	t.Setenv("SURVEY_TEST_BOOL", "true")
	t.Setenv("SURVEY_TEST_FLOAT", "-1.25")

	assert.Equal(t, "value", GetEnvString("SURVEY_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetEnvString("SURVEY_TEST_BLANK", "fallback"))
	assert.Equal(t, "fallback", GetEnvString("SURVEY_TEST_MISSING", "fallback"))
	assert.Equal(t, 42, GetEnvInt("SURVEY_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("SURVEY_TEST_BAD_INT", 1))
	assert.True(t, GetEnvBool("SURVEY_TEST_BOOL", false))
	assert.Equal(t, -1.25, GetEnvFloat("SURVEY_TEST_FLOAT", 0))
}

func TestGetEnvStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "Comma separated", value: "https://a.example, https://b.example", want: []string{"https://a.example", "https://b.example"}},
		{name: "Blank items dropped", value: "https://a.example,, ", want: []string{"https://a.example"}},
		{name: "Only separators", value: " , ", want: []string{"default"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SURVEY_TEST_SLICE", tt.value)
			assert.Equal(t, tt.want, GetEnvStringSlice("SURVEY_TEST_SLICE", []string{"default"}))
		})
	}
}
