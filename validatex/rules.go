package validatex

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// ValidationFunc defines a function that validates a value
type ValidationFunc func(value any, param string) bool

var builtinValidationFuncs = map[string]ValidationFunc{
	"required": validateRequired,
	"url":      validateURL,
	"min":      validateMin,
	"max":      validateMax,
	"oneof":    validateOneOf,
}

var customValidationFuncs = map[string]ValidationFunc{}

// RegisterValidationFunc registers a custom validation function. It is not
// safe to call concurrently with Validate.
func RegisterValidationFunc(name string, fn ValidationFunc) {
	customValidationFuncs[name] = fn
}

func getValidationFunc(name string) (ValidationFunc, bool) {
	if fn, ok := customValidationFuncs[name]; ok {
		return fn, true
	}
	fn, ok := builtinValidationFuncs[name]
	return fn, ok
}

func validateRequired(value any, _ string) bool {
	return !isZero(value)
}

func validateURL(value any, _ string) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	u, err := url.ParseRequestURI(str)
	return err == nil && u.Host != ""
}

// validateMin compares numbers by value and strings, slices and maps by length
func validateMin(value any, param string) bool {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	n, ok := measure(value)
	return ok && n >= limit
}

func validateMax(value any, param string) bool {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	n, ok := measure(value)
	return ok && n <= limit
}

// validateOneOf accepts space separated alternatives: oneof=a b c
func validateOneOf(value any, param string) bool {
	allowed := strings.Fields(param)
	str := fmt.Sprintf("%v", value)
	for _, v := range allowed {
		if v == str {
			return true
		}
	}
	return false
}

func measure(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return float64(rv.Len()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
