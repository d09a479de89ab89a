package agreement

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPricingModel reports that no pricing model was selected. It is a
// top-level error of its own, not attached to any single field.
var ErrNoPricingModel = errors.New("no pricing model selected")

// FieldError describes a single invalid form field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects everything wrong with one submission: the
// per-field errors and, separately, a missing pricing model selection.
// All applicable fields are checked before it is returned.
type ValidationError struct {
	Fields           []FieldError
	PricingSelection error
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.PricingSelection != nil {
		parts = append(parts, e.PricingSelection.Error())
	}
	for _, fe := range e.Fields {
		parts = append(parts, fe.Error())
	}
	if len(parts) == 0 {
		return "validation error"
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrNoPricingModel) see through the collection
func (e *ValidationError) Is(target error) bool {
	return target == ErrNoPricingModel && e.PricingSelection != nil
}

// add records a field error
func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// err returns the collected error, or nil if the submission is clean
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 && e.PricingSelection == nil {
		return nil
	}
	return e
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
