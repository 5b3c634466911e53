package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/deppfellow/toolbox-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with param and validator tags (`param:"n" validate:"required,integer"`)
// - Implement Validate() error that runs validation.ValidateStruct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// integerPattern accepts an optionally signed run of decimal digits.
var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// IsInteger reports whether s is an optionally signed base-10 integer literal.
func IsInteger(s string) bool {
	return integerPattern.MatchString(s)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their path parameter name so errors match the URL.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("param"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}
		return name
	})

	if err := v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		return IsInteger(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register integer validation: %v", err))
	}

	return v
}

// ValidateStruct runs the shared validator (with the custom "integer" tag) against s.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) Percent-encoded path params are decoded (see UnescapePathParams).
// 2) c.Bind(payload) populates the request struct from path params (and query/body if tagged).
// 3) payload.Validate() applies validation rules.
// 4) Returns *errs.HTTPError (422) with field-level errors if any step fails.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := UnescapePathParams(c); err != nil {
		return err
	}

	if err := c.Bind(payload); err != nil {
		return errs.NewUnprocessableEntityError(bindErrorMessage(err), bindFieldErrors(err))
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewUnprocessableEntityError(msg, fieldErrors)
	}

	return nil
}

// UnescapePathParams decodes the path param values of c in place.
//
// Echo matches routes against URL.RawPath whenever the client's encoding is
// not the canonical one (e.g. "caf%c3%a9", "a%2Fb", "%2B5"), and then hands
// the segments out still encoded. When RawPath is empty the values came from
// the decoded URL.Path and are left alone.
func UnescapePathParams(c echo.Context) error {
	if c.Request().URL.RawPath == "" {
		return nil
	}

	names := c.ParamNames()
	values := c.ParamValues()
	decoded := make([]string, len(values))

	for i, value := range values {
		v, err := url.PathUnescape(value)
		if err != nil {
			field := ""
			if i < len(names) {
				field = names[i]
			}
			return errs.NewUnprocessableEntityError("Invalid path parameter encoding", []errs.FieldError{
				{Field: field, Error: "is not a valid percent-encoded value"},
			})
		}
		decoded[i] = v
	}

	c.SetParamValues(decoded...)

	return nil
}

func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request parameters"
}

func bindFieldErrors(err error) []errs.FieldError {
	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		return []errs.FieldError{{Field: bindingErr.Field, Error: "has an invalid value"}}
	}
	return nil
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Anything else (e.g. validator.InvalidValidationError) has no field to blame.
		return "Validation failed", []errs.FieldError{}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "integer":
			msg = "must be a valid integer"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
