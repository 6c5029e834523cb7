package workflow

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"workflow-mapper/internal/diagnostic"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Report JSON field names.
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return v
}

// validateStruct checks the validate tags of a node config and reports the
// first failure as an invalid-config error.
func validateStruct(kind Kind, cfg any) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return diagnostic.InvalidConfig(string(kind), "", err.Error())
	}

	e := fieldErrs[0]
	field := e.Namespace()

	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	return diagnostic.InvalidConfig(string(kind), field, describe(e))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if", "required_unless":
		return "value is required"
	case "oneof":
		return fmt.Sprintf("value %v must be one of: %s", e.Value(), e.Param())
	case "email":
		return fmt.Sprintf("invalid email address %v", e.Value())
	case "unique":
		return "values must be unique"
	default:
		return fmt.Sprintf("value %v failed %q validation", e.Value(), e.ActualTag())
	}
}
