// Package async provides a small generic Future type used to unify synchronous
// and asynchronous computations behind one result type.
//
// A Future is obtained either from Async, which runs the supplied function in
// its own goroutine, or from Resolved and Rejected, which return futures that
// are already complete. Callers never need to know which kind they hold: Await
// and AwaitContext behave the same way for both, and
// IsComplete lets a caller apply already-available results inline without
// spawning a goroutine.
//
// # Usage
//
//	future := async.Async(ctx, "alice", func(ctx context.Context, name string) (bool, error) {
//	    return lookupUsername(ctx, name)
//	})
//
//	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
//	defer cancel()
//	taken, err := future.AwaitContext(ctx)
//	if errors.Is(err, context.DeadlineExceeded) {
//	    // the lookup is still running
//	}
//
//	ok := async.Resolved(true) // already complete
//
// # Error Handling
//
// Errors returned by the user callback are returned unchanged from Await.
// AwaitContext returns the context error when the wait is abandoned; it does
// not cancel the computation itself.
package async
