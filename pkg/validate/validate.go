// Package validate runs struct-tag validation through go-playground/validator
// and reports failures as a map of json field name to a readable message.
//
//	type Input struct {
//	    Name  string `json:"name"  validate:"required,min=2,max=100"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//
//	if errs := validate.Struct(in); validate.HasErrors(errs) { ... }
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once   sync.Once
	engine *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(jsonFieldName)
	})
	return engine
}

// Struct validates v and returns fieldName → message. A nil map means valid.
func Struct(v interface{}) map[string]string {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = message(fe)
	}
	return out
}

// HasErrors reports whether errs contains at least one failure.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		tag = f.Tag.Get("form")
	}
	name := strings.Split(tag, ",")[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
