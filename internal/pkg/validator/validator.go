package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags and returns field→rule for every violation,
// nil when the value is valid. Services use it to enforce required fields
// independently of handler binding.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	violations := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		violations[fe.Field()] = fe.Tag()
	}
	return violations
}

// Describe flattens a violation map into a single human-readable message.
func Describe(violations map[string]string) string {
	parts := make([]string, 0, len(violations))
	for field, rule := range violations {
		parts = append(parts, fmt.Sprintf("%s (%s)", field, rule))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}
