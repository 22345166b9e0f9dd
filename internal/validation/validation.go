// Package validation contains the logic for validating
// request data.
//
// Two layers live here:
//   - the payload rule table (schema.go): closed per-operation schemas for
//     word and score payloads, checked before any store mutation
//   - request binding: path/query/body binding for HTTP handlers, with
//     `validator` struct tags turned into field errors the client can
//     understand
package validation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/deppfellow/flashcards/internal/errs"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with binding tags (`param:"id"`, `query:"sortOrder"`)
//     and validator tags (`validate:"required,min=1"`)
//   - Implement Validate() error that calls Struct(req)
type Validatable interface {
	Validate() error
}

// RawBodyRequest is a request whose JSON body is kept as a Payload instead
// of being bound onto struct fields. The payload is checked later against
// an operation schema, after the row it targets is known to exist.
type RawBodyRequest interface {
	Validatable
	SetBody(body Payload)
}

// CustomValidationError represents a validation issue that cannot be
// expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. Bind path params, query params and body (or the raw body for RawBodyRequest).
//  2. payload.Validate() applies struct rules.
//  3. Returns a 400 *errs.HTTPError with field-level errors if either step fails.
//
// payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if raw, ok := payload.(RawBodyRequest); ok {
		if err := bindRaw(c, raw); err != nil {
			return bindError(err)
		}
	} else if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		_, fieldErrors := extractValidationError(err)
		return errs.NewValidationFailedError(sortFieldErrors(fieldErrors))
	}

	return nil
}

func bindRaw(c echo.Context, raw RawBodyRequest) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, raw); err != nil {
		return err
	}

	var body Payload
	if err := binder.BindBody(c, &body); err != nil {
		return err
	}
	raw.SetBody(body)
	return nil
}

// bindError turns echo binding failures into our error shape.
func bindError(err error) error {
	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		return errs.NewValidationFailedError([]errs.FieldError{
			{Field: bindingErr.Field, Error: "has an invalid value"},
		})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code != http.StatusBadRequest {
			return echoErr
		}
		return errs.NewBadRequestError(fmt.Sprint(echoErr.Message), false, nil, nil)
	}

	return errs.NewBadRequestError("Invalid request", false, nil, nil)
}
