package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Number converts a cell value to float64. Numeric kinds and numeric strings
// convert; everything else reports false.
func Number(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
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

// MinNum validates that a numeric value is greater than or equal to min.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %v", min),
			TranslationKey: "validate.min",
			TranslationValues: map[string]any{
				"field":     field,
				"threshold": min,
			},
		},
	}
}

// MaxNum validates that a numeric value is less than or equal to max.
func MaxNum[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %v", max),
			TranslationKey: "validate.max",
			TranslationValues: map[string]any{
				"field":     field,
				"threshold": max,
			},
		},
	}
}

// MinValue is MinNum over an untyped cell value. Values that are not numbers fail.
func MinValue(field string, value any, min float64) Rule {
	n, ok := Number(value)
	rule := MinNum(field, n, min)
	check := rule.Check
	rule.Check = func() bool { return ok && check() }
	return rule
}

// MaxValue is MaxNum over an untyped cell value. Values that are not numbers fail.
func MaxValue(field string, value any, max float64) Rule {
	n, ok := Number(value)
	rule := MaxNum(field, n, max)
	check := rule.Check
	rule.Check = func() bool { return ok && check() }
	return rule
}
