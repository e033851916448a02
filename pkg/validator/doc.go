// Package validator provides small declarative rules for grid cell values.
//
// A Rule couples a boolean Check with translation-friendly error metadata.
// Apply evaluates rules and aggregates failures into ValidationErrors, which
// satisfies the error interface.
//
// Cell values are untyped, so the length and null rules accept any:
//
//	err := validator.Apply(
//	    validator.NotNull("age", value),
//	    validator.MinLength("age", value, 2),
//	)
//	for _, e := range validator.ExtractValidationErrors(err) {
//	    fmt.Println(e.TranslationKey) // validate.notNull, validate.minLength
//	}
//
// Length counts runes for strings and elements for slices, arrays and maps.
// Nil has length 0. Numbers and bools have no length, so the length rules
// let them pass. IsNull treats nil, typed nil pointers and the empty string as
// null; zero numbers and false are values.
//
// Thresholds read from configuration files arrive as ints, floats or strings.
// IntThreshold normalises them and returns ErrUnsupportedThreshold otherwise.
//
// Rules are stateless and safe for concurrent use.
package validator
