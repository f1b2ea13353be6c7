package graph

import (
	"errors"
	"log/slog"
	"math"

	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/service"
)

// Values of the "code" error extension.
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// resolverError is a service error as presented to GraphQL clients.
// graphql-go copies Extensions into the response's error entry.
type resolverError struct {
	message string
	code    string
}

func (e *resolverError) Error() string { return e.message }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func codeOf(err error) string {
	switch {
	case errors.Is(err, service.ErrValidation):
		return CodeBadUserInput
	case errors.Is(err, service.ErrAuthentication), errors.Is(err, service.ErrAuthorization):
		return CodeUnauthenticated
	case errors.Is(err, service.ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternal
	}
}

// wrapErr converts a service error for the response. Internal failures are
// logged and replaced by a generic message.
func wrapErr(field string, err error) error {
	code := codeOf(err)
	metrics.RecordResolverError(code)

	message := err.Error()
	if code == CodeInternal {
		slog.Error("Resolver failed", "field", field, "error", err)
		message = "internal server error"
	}
	return &resolverError{message: message, code: code}
}

// intValue narrows an amount to the GraphQL Int range. Sums over many
// expenses can exceed it even when every single cost fits.
func intValue(field string, v int64) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		metrics.RecordResolverError(CodeInternal)
		slog.Error("Amount outside Int range", "field", field, "value", v)
		return 0, &resolverError{
			message: field + " is outside the 32-bit Int range",
			code:    CodeInternal,
		}
	}
	return int32(v), nil
}
