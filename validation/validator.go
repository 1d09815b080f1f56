package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/seqinput/errors"
)

// FieldError is one failed check, keyed by argument name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects failed checks over arguments that struct tags cannot
// express, such as bounds on option values and relations between fields.
type Validator struct {
	failed []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Min fails field when value is below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	return v.Custom(value >= minVal, field, fmt.Sprintf("must be at least %d", minVal))
}

// Custom fails field with message unless ok holds.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.failed = append(v.failed, FieldError{Field: field, Message: message})
	}
	return v
}

// Errors returns the failed checks in the order they ran.
func (v *Validator) Errors() []FieldError {
	return v.failed
}

// Validate returns nil when every check passed and otherwise one
// INVALID_ARGUMENT error listing them all.
func (v *Validator) Validate() *errors.AppError {
	if len(v.failed) == 0 {
		return nil
	}
	return fromFieldErrors(v.failed)
}

// fromFieldErrors joins failed checks into one error. A single failure also
// sets the "field" detail so callers can tell which argument was wrong.
func fromFieldErrors(failed []FieldError) *errors.AppError {
	messages := make([]string, len(failed))
	for i, e := range failed {
		messages[i] = e.Field + ": " + e.Message
	}
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": failed}
	if len(failed) == 1 {
		appErr.Details["field"] = failed[0].Field
	}
	return appErr
}
