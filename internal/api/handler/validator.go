package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

const nifLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

var (
	nifPattern = regexp.MustCompile(`^\d{8}[A-Z]$`)
	cifPattern = regexp.MustCompile(`^[A-Z]\d{8}$`)
)

// FieldError is one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned by the validator and rendered as 422.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator with the ddmmyyyy, nif and cif tags
// registered.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("nif", func(fl validator.FieldLevel) bool {
		return validNIF(fl.Field().String())
	})
	_ = v.RegisterValidation("cif", func(fl validator.FieldLevel) bool {
		return cifPattern.MatchString(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := &ValidationError{Fields: make([]FieldError, 0, len(ve))}
			for _, fe := range ve {
				out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldError(fe)})
			}
			return out
		}
		return err
	}
	return nil
}

// validNIF checks the format and the control letter (number mod 23).
func validNIF(s string) bool {
	if !nifPattern.MatchString(s) {
		return false
	}
	n, err := strconv.Atoi(s[:8])
	if err != nil {
		return false
	}
	return nifLetters[n%23] == s[8]
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "numeric":
		return field + " must contain only digits"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "mongodb":
		return field + " must be a valid id"
	case "ddmmyyyy":
		return field + " must be a date in DD-MM-YYYY format"
	case "nif":
		return field + " must be a valid NIF"
	case "cif":
		return field + " must be a valid CIF"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
