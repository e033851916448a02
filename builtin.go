package gridvalidate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/gridvalidate/pkg/async"
	"github.com/dmitrymomot/gridvalidate/pkg/logger"
	"github.com/dmitrymomot/gridvalidate/pkg/validator"
)

// Built-in validator types.
const (
	MinLength = "minLength"
	MaxLength = "maxLength"
	NotNull   = "notNull"
)

const thresholdPlaceholder = "THRESHOLD"

// BuiltinTypes lists the validator types CreateDefaultValidators understands.
func BuiltinTypes() []string {
	return []string{MaxLength, MinLength, NotNull}
}

// CreateDefaultValidators registers a built-in validator for every entry of
// every column's Validators map. Types are processed in sorted order per column.
func (s *Service) CreateDefaultValidators(grid *Grid) error {
	if grid == nil {
		return ErrNilGrid
	}

	var errs []error
	for _, col := range grid.Columns {
		if col == nil {
			continue
		}

		types := make([]string, 0, len(col.Validators))
		for t := range col.Validators {
			types = append(types, t)
		}
		slices.Sort(types)

		for _, t := range types {
			threshold := col.Validators[t]

			build, err := builtinRule(t, threshold)
			if err != nil {
				if errors.Is(err, ErrUnknownValidatorType) && !s.strictTypes {
					s.logger.Warn("unknown validator type skipped",
						logger.Column(col.Name), logger.ValidatorType(t))
					continue
				}
				errs = append(errs, fmt.Errorf("column %q: %w", col.Name, err))
				continue
			}

			sample := build(Check{Column: col, Threshold: threshold})
			s.AddColumnValidator(col, t, threshold, RuleValidator(build), s.RulePrinter(sample))
		}
	}

	return errors.Join(errs...)
}

func builtinRule(validatorType string, threshold any) (func(Check) validator.Rule, error) {
	switch validatorType {
	case MinLength, MaxLength:
		n, err := validator.IntThreshold(threshold)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidThreshold, validatorType, err)
		}
		if validatorType == MinLength {
			return func(c Check) validator.Rule {
				return validator.MinLength(c.Column.Name, c.NewValue, n)
			}, nil
		}
		return func(c Check) validator.Rule {
			return validator.MaxLength(c.Column.Name, c.NewValue, n)
		}, nil
	case NotNull:
		return func(c Check) validator.Rule {
			return validator.NotNull(c.Column.Name, c.NewValue)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownValidatorType, validatorType)
	}
}

// MessagePrinter returns a PrintErrorFunc that looks up validate.<validatorType>
// and replaces THRESHOLD with the threshold's string form.
func (s *Service) MessagePrinter(validatorType string) PrintErrorFunc {
	return s.keyPrinter("validate." + validatorType)
}

// RulePrinter is MessagePrinter for the translation key of rule's error.
func (s *Service) RulePrinter(rule validator.Rule) PrintErrorFunc {
	return s.keyPrinter(rule.Error.TranslationKey)
}

func (s *Service) keyPrinter(key string) PrintErrorFunc {
	return func(threshold any) string {
		return strings.ReplaceAll(s.localizer.SafeText(key), thresholdPlaceholder, fmt.Sprint(threshold))
	}
}

// AddColumnValidator registers a validator on col, replacing any entry of the
// same type. The previous entry is returned with replaced set to true.
func (s *Service) AddColumnValidator(col *ColumnDef, validatorType string, threshold any, validate ValidateFunc, printError PrintErrorFunc) (prev ValidatorEntry, replaced bool) {
	if col == nil {
		return ValidatorEntry{}, false
	}

	prev, replaced = s.registry(col).Upsert(validatorType, ValidatorEntry{
		Threshold:  threshold,
		Validate:   validate,
		PrintError: printError,
	})
	if replaced {
		s.logger.Debug("column validator replaced", logger.Column(col.Name), logger.ValidatorType(validatorType))
	}
	return prev, replaced
}

func (s *Service) registry(col *ColumnDef) *Registry {
	s.colMu.Lock()
	defer s.colMu.Unlock()

	if col.ColumnValidators == nil {
		col.ColumnValidators = NewRegistry()
	}
	return col.ColumnValidators
}

// RuleValidator adapts a rule from pkg/validator into a synchronous ValidateFunc.
// The cell passes when validator.Apply reports no failures.
func RuleValidator(build func(Check) validator.Rule) ValidateFunc {
	return Sync(func(c Check) bool {
		return validator.ExtractValidationErrors(validator.Apply(build(c))).IsEmpty()
	})
}

// Sync wraps a synchronous check; the returned future is already resolved.
func Sync(fn func(Check) bool) ValidateFunc {
	return func(_ context.Context, c Check) *async.Future[bool] {
		return async.Resolved(fn(c))
	}
}

// Async runs fn on its own goroutine. A returned error counts as a failure.
func Async(fn func(context.Context, Check) (bool, error)) ValidateFunc {
	return func(ctx context.Context, c Check) *async.Future[bool] {
		return async.Async(ctx, c, fn)
	}
}
