package async

import "context"

// Future is the eventual result of a computation. It is completed exactly once,
// either by a goroutine started with Async or immediately by Resolved/Rejected.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// Resolved returns a future that is already complete with the given value.
// Synchronous checks use it so callers can treat every result as a future.
func Resolved[U any](value U) *Future[U] {
	f := newFuture[U]()
	f.result = value
	close(f.done)
	return f
}

// Rejected returns a future that is already complete with the given error.
func Rejected[U any](err error) *Future[U] {
	f := newFuture[U]()
	f.err = err
	close(f.done)
	return f
}

// Await blocks until the future completes and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the future completes or ctx is done.
// When ctx finishes first the context error is returned; the future itself keeps running.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once the future is complete.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the future has completed, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn in its own goroutine and returns a Future for its result.
// A context that is already canceled completes the future with ctx.Err() without calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}
