package utils

import (
	"regexp"
	"survey-portal-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var (
	validate        *validator.Validate
	surveyCodeRegex = regexp.MustCompile(constvars.RegexSurveyCode)
	sessionIDRegex  = regexp.MustCompile(constvars.RegexSessionID)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("survey_code", validateSurveyCode)
	validate.RegisterValidation("session_id", validateSessionID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value, typically a URL param, against tag.
func ValidateVar(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

func validateSurveyCode(fl validator.FieldLevel) bool {
	return surveyCodeRegex.MatchString(fl.Field().String())
}

func validateSessionID(fl validator.FieldLevel) bool {
	return sessionIDRegex.MatchString(fl.Field().String())
}
