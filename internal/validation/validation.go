package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"name":      "Name is required",
	"price":     "Price must be greater than 0",
	"category":  "Category is required",
	"userId":    "User ID is required",
	"productId": "Product ID is required",
	"quantity":  "Quantity must be at least 1",
	"products":  "At least one product is required",
	"items":     "Items are required",
}

// FieldMessage returns the message for a json field name, if it has one.
func FieldMessage(field string) (string, bool) {
	m, ok := messages[field]
	return m, ok
}

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries every violated constraint of one payload.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, ", ")
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate returns nil or a *Error listing every violation.
func (v *Validator) Validate(i any) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Violations: make([]Violation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, Violation{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Field()]; ok {
		return m
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
