// Package validator wraps go-playground/validator for declarative struct
// validation via `validate:"..."` tags, returning a flat multi-error chain
// rooted at ErrValidationFailed.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the first error in the chain whenever validation
// fails, so callers can detect failures with errors.Is regardless of how many
// fields were rejected.
var ErrValidationFailed = errors.New("struct validation failed")

var validate *gvalidator.Validate

func init() {
	validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf("'%s': value '%v' does not satisfy the '%s' constraint",
			fieldErr.Field(),
			fieldErr.Value(),
			fieldErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks the struct against its validation tags. It returns nil when
// every field passes, otherwise an error chain containing ErrValidationFailed
// plus one formatted entry per failing field.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
