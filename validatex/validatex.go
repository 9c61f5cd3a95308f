// Package validatex validates structs through `validatex` field tags.
//
//	type Settings struct {
//		Bucket   string `validatex:"required"`
//		Provider string `validatex:"oneof=textract openai anthropic"`
//	}
package validatex

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Abraxas-365/imagetext/errx"
)

var (
	ErrNotStruct = errors.New("value must be a struct")

	validationErrors = errx.NewRegistry("VALIDATION")

	ErrInvalid     = validationErrors.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Validation failed")
	ErrUnknownRule = validationErrors.Register("UNKNOWN_RULE", errx.TypeInternal, http.StatusInternalServerError, "Unknown validation rule")
)

// Validatable lets a type add checks that tags cannot express
type Validatable interface {
	Validate() error
}

// FieldError describes one failed rule
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s failed %s", f.Field, f.Rule)
}

// Validate checks every tagged field of obj. The returned error is an
// *errx.Error with code ErrInvalid whose "fields" detail lists the failures.
func Validate(obj any) error {
	fields, err := structFields(obj)
	if err != nil {
		return err
	}

	var failures []FieldError
	for _, f := range fields {
		optional := !hasRule(f.Rules, "required") && isZero(f.Value)
		for _, rule := range f.Rules {
			fn, ok := getValidationFunc(rule.Name)
			if !ok {
				return validationErrors.New(ErrUnknownRule).
					WithDetail("field", f.Name).
					WithDetail("rule", rule.Name)
			}
			if optional {
				continue
			}
			if !fn(f.Value, rule.Param) {
				failures = append(failures, FieldError{Field: f.Name, Rule: rule.Name, Param: rule.Param})
			}
		}
	}

	if v, ok := obj.(Validatable); ok && len(failures) == 0 {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	if len(failures) == 0 {
		return nil
	}

	msgs := make([]string, len(failures))
	for i, f := range failures {
		msgs[i] = f.String()
	}
	return validationErrors.NewWithMessage(ErrInvalid, "Validation failed: "+strings.Join(msgs, "; ")).
		WithDetail("fields", failures)
}

func hasRule(rules []ruleInfo, name string) bool {
	for _, r := range rules {
		if r.Name == name {
			return true
		}
	}
	return false
}
