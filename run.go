package gridvalidate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/gridvalidate/pkg/async"
	"github.com/dmitrymomot/gridvalidate/pkg/logger"
)

// Run tracks the completions started by one RunValidators call.
type Run struct {
	ref        CellRef
	generation uint64
	pending    int
	group      errgroup.Group
	inlineErr  error
}

// Generation is the run's sequence number for its cell. Zero means no validator ran.
func (r *Run) Generation() uint64 {
	return r.generation
}

// Pending is the number of validators that had not completed when RunValidators returned.
func (r *Run) Pending() int {
	return r.pending
}

// Wait blocks until every outstanding completion has been applied or ctx is done.
// It returns the first validator error (rejection, panic or timeout). Those
// validators already count as failed when Wait returns.
func (r *Run) Wait(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- r.group.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
		return r.inlineErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunValidators re-evaluates every validator of col for a changed cell value.
//
// An unchanged value (see sameValue) leaves the cell state
// untouched. Otherwise the invalid flag is cleared and each registered
// validator, in registration order, has its error cleared and is invoked.
// Failures set the invalid flag and record the validator type; nothing in a
// run restores validity. Validators that complete synchronously are applied
// before RunValidators returns; the rest are applied as they complete unless a
// newer run for the same cell has started, in which case they are discarded.
func (s *Service) RunValidators(ctx context.Context, row *Row, col *ColumnDef, newValue, oldValue any) (*Run, error) {
	if col == nil || col.Name == "" {
		return nil, ErrColumnNameRequired
	}
	if row == nil {
		return nil, ErrRowRequired
	}

	ref, _ := cellRef(row, col)
	run := &Run{ref: ref}
	ctx = withCell(ctx, ref)

	if sameValue(newValue, oldValue) {
		s.logger.DebugContext(ctx, "value unchanged, validators skipped")
		return run, nil
	}

	validators := s.registry(col).snapshot()

	s.table.mu.Lock()
	s.table.setValid(ref)
	run.generation = s.table.begin(ref)
	s.table.mu.Unlock()
	s.metrics.run()

	check := Check{NewValue: newValue, OldValue: oldValue, Row: row, Column: col}
	for _, v := range validators {
		s.clearErrorIfCurrent(run, v.validatorType)

		check.Threshold = v.entry.Threshold
		s.invoke(ctx, run, v, check)
	}

	if run.pending == 0 {
		s.settle(run)
	} else {
		go func() {
			_ = run.group.Wait()
			s.settle(run)
		}()
	}

	return run, nil
}

func (s *Service) clearErrorIfCurrent(run *Run, validatorType string) {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	if s.table.current(run.ref, run.generation) {
		s.table.clearError(run.ref, validatorType)
	}
}

func (s *Service) settle(run *Run) {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	s.table.finish(run.ref, run.generation)
}

func (s *Service) invoke(ctx context.Context, run *Run, v registeredValidator, check Check) {
	if v.entry.Validate == nil {
		s.logger.WarnContext(ctx, "validator has no validate function, skipped",
			logger.ValidatorType(v.validatorType))
		return
	}

	vctx, cancel := ctx, context.CancelFunc(func() {})
	if s.asyncTimeout > 0 {
		vctx, cancel = context.WithTimeout(ctx, s.asyncTimeout)
	}

	fut := callValidate(vctx, v.entry.Validate, check)

	if fut.IsComplete() {
		passed, err := fut.Await()
		cancel()
		if err := s.complete(ctx, run, v.validatorType, passed, err); err != nil && run.inlineErr == nil {
			run.inlineErr = err
		}
		return
	}

	run.pending++
	start := time.Now()

	run.group.Go(func() error {
		defer cancel()

		passed, err := fut.AwaitContext(vctx)
		s.metrics.asyncDuration(v.validatorType, time.Since(start))

		if ctxErr := ctx.Err(); ctxErr != nil {
			s.logger.DebugContext(ctx, "validation canceled, completion discarded",
				logger.ValidatorType(v.validatorType), logger.Generation(run.generation))
			return ctxErr
		}
		if err != nil && errors.Is(vctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrValidatorTimeout, s.asyncTimeout)
		}

		return s.complete(ctx, run, v.validatorType, passed, err)
	})
}

// complete applies one validator outcome. An error counts as a failure.
func (s *Service) complete(ctx context.Context, run *Run, validatorType string, passed bool, err error) error {
	attrs := []any{
		logger.ValidatorType(validatorType),
		logger.Generation(run.generation),
	}

	outcome := outcomePass
	if err != nil {
		passed = false
		outcome = outcomeError
		s.logger.WarnContext(ctx, "validator failed with error", append(attrs, logger.Error(err))...)
	} else if !passed {
		outcome = outcomeFail
	}

	s.table.mu.Lock()
	if !s.table.current(run.ref, run.generation) {
		s.table.mu.Unlock()
		s.metrics.staleCompletion()
		s.logger.DebugContext(ctx, "stale validator completion discarded", attrs...)
		return nil
	}
	if !passed {
		s.table.setInvalid(run.ref)
		s.table.setError(run.ref, validatorType)
	}
	s.table.mu.Unlock()

	s.metrics.result(validatorType, outcome)
	s.logger.DebugContext(ctx, "validator completed", append(attrs, logger.Outcome(passed))...)

	if err != nil {
		return fmt.Errorf("validator %q: %w", validatorType, err)
	}
	return nil
}

func callValidate(ctx context.Context, fn ValidateFunc, check Check) (fut *async.Future[bool]) {
	defer func() {
		if r := recover(); r != nil {
			fut = async.Rejected[bool](fmt.Errorf("%w: %v", ErrValidatorPanicked, r))
		}
	}()

	fut = fn(ctx, check)
	if fut == nil {
		return async.Rejected[bool](ErrValidatorNilResult)
	}
	return fut
}

// sameValue reports whether a cell edit left the value unchanged. Slices,
// maps, pointers, channels and funcs compare by identity, so a new slice with
// the same elements counts as a change. Other values compare deeply.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.IsNil() == vb.IsNil()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		return reflect.DeepEqual(a, b)
	}
}
