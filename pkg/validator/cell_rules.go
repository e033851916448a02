package validator

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Length reports the length of a cell value: runes for strings, elements for
// slices, arrays and maps. Nil and typed nil pointers have length 0. Numbers,
// bools and other kinds have no length and report ok=false.
func Length(value any) (n int, ok bool) {
	switch v := value.(type) {
	case nil:
		return 0, true
	case string:
		return utf8.RuneCountInString(v), true
	case []byte:
		return len(v), true
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return 0, true
		}
		return utf8.RuneCountInString(v.String()), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, true
		}
		return Length(rv.Elem().Interface())
	default:
		return 0, false
	}
}

// IsNull reports whether value is nil, a typed nil or the empty string.
// Zero numbers and false are not null.
func IsNull(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	case reflect.String:
		return rv.Len() == 0
	default:
		return false
	}
}

// IntThreshold converts a configured threshold to an int bound.
// Integers, whole floats and numeric strings are accepted.
func IntThreshold(threshold any) (int, error) {
	switch v := threshold.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, fmt.Errorf("%w: %v", ErrUnsupportedThreshold, threshold)
		}
		return int(v), nil
	case float32:
		return wholeFloat(float64(v), threshold)
	case float64:
		return wholeFloat(v, threshold)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnsupportedThreshold, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrUnsupportedThreshold, threshold, threshold)
	}
}

func wholeFloat(f float64, threshold any) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedThreshold, threshold)
	}
	return int(f), nil
}

// MinLength passes when the value has at least min elements (see Length).
// Values without a length pass.
func MinLength(field string, value any, min int) Rule {
	return Rule{
		Check: func() bool {
			n, ok := Length(value)
			return !ok || n >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey: "validate.minLength",
			TranslationValues: map[string]any{
				"field":     field,
				"threshold": min,
			},
		},
	}
}

// MaxLength passes when the value has at most max elements (see Length).
// Values without a length pass.
func MaxLength(field string, value any, max int) Rule {
	return Rule{
		Check: func() bool {
			n, ok := Length(value)
			return !ok || n <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validate.maxLength",
			TranslationValues: map[string]any{
				"field":     field,
				"threshold": max,
			},
		},
	}
}

// NotNull passes for every value IsNull rejects.
func NotNull(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			return !IsNull(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "a value is needed",
			TranslationKey: "validate.notNull",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
