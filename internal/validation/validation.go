// Package validation checks `validate` struct tags and reports failures as
// domain validation errors keyed by JSON field path.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

const RequiredMessage = "this field is required"

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct validates s. It returns nil or a *domain.ValidationError; other
// errors mean s is not a struct and are returned as is.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return verr
}

// fieldPath drops the root struct name: "Order.tickets[0].row" -> "tickets[0].row".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return RequiredMessage
	case "email":
		return "enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
