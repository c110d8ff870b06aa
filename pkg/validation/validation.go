// Package validation collects field-level validation failures and renders
// go-playground/validator results into them.
package validation

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to the messages describing why it was rejected.
type Errors map[string][]string

// Add records msg against field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge copies every message from other into e.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the rejected field names in sorted order.
func (e Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

// Err returns e as an error, or nil when no field was rejected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Message summarizes the first rejected field for a response body.
func (e Errors) Message() string {
	fields := e.Fields()
	if len(fields) == 0 {
		return "The given data was invalid."
	}
	msg := e[fields[0]][0]
	if rest := len(fields) - 1; rest > 0 {
		msg = fmt.Sprintf("%s (and %d more error", msg, rest)
		if rest > 1 {
			msg += "s"
		}
		msg += ")"
	}
	return msg
}

// As extracts Errors from err.
func As(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates v against its `validate` tags. Field names follow the
// `json` tag.
func Struct(v any) Errors {
	errs := Errors{}

	err := instance().Struct(v)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("_", err.Error())
		return errs
	}

	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
