package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/splitledger/internal/auth"
)

// Error categories. Use errors.Is to classify an error returned by a service.
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrAuthentication marks bad credentials at login.
	ErrAuthentication = auth.ErrInvalidCredentials
	// ErrAuthorization marks an operation that needs a signed-in member.
	ErrAuthorization = errors.New("authentication required")
	// ErrForbidden marks a signed-in member acting outside their groups.
	ErrForbidden = errors.New("not a member of this group")
	// ErrDanglingReference marks a stored ID that points at no record.
	ErrDanglingReference = errors.New("dangling reference")
)

// Error carries a caller-facing message for one of the error categories.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func validationError(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func danglingError(format string, args ...any) error {
	return &Error{Kind: ErrDanglingReference, Message: fmt.Sprintf(format, args...)}
}

// validate is shared by all services; validator.Validate caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct's validate tags and folds failures into one ErrValidation.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = describeFieldError(fe)
	}
	return validationError("%s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
