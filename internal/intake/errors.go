package intake

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid or missing submission field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is the validation failure reported back to the form, one
// entry per offending field. It is always returned before the workflow
// engine is invoked, so a failing submission writes nothing.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "invalid submission: " + strings.Join(msgs, "; ")
}

// HasField reports whether the list contains an error for the named field.
func (e FieldErrors) HasField(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}
