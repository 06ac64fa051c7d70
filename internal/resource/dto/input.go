package dto

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError lists the rejected fields of a create or update payload.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid payload: " + strings.Join(parts, ", ")
}

// ValidatePayload checks payload against validator rules keyed by field. It
// runs before any backend call.
func ValidatePayload(payload map[string]any, rules map[string]any) error {
	if len(rules) == 0 {
		return nil
	}
	errs := validate.ValidateMap(payload, rules)
	if len(errs) == 0 {
		return nil
	}
	out := &ValidationError{Fields: make(map[string]string, len(errs))}
	for field, err := range errs {
		out.Fields[field] = describe(err)
	}
	return out
}

func describe(err any) string {
	e, ok := err.(error)
	if !ok {
		return fmt.Sprint(err)
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(e, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
	return e.Error()
}
