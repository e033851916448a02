package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrymomot/gridvalidate/pkg/async"
)

// TestAsyncFunctionality tests the basic functionality of the Async helper.
func TestAsyncFunctionality(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	futureString := async.Async(ctx, 42, func(ctx context.Context, num int) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return fmt.Sprintf("Number: %d", num), nil
	})

	futureBool := async.Async(ctx, "test", func(ctx context.Context, s string) (bool, error) {
		time.Sleep(10 * time.Millisecond)
		return len(s) > 0, nil
	})

	resultString, errString := futureString.Await()
	resultBool, errBool := futureBool.Await()

	if errString != nil || resultString != "Number: 42" {
		t.Errorf("Expected 'Number: 42', got '%s', error: %v", resultString, errString)
	}

	if errBool != nil || resultBool != true {
		t.Errorf("Expected true, got %v, error: %v", resultBool, errBool)
	}
}

func TestResolved(t *testing.T) {
	t.Parallel()

	f := async.Resolved(true)
	if !f.IsComplete() {
		t.Fatal("Expected resolved future to be complete immediately")
	}

	result, err := f.Await()
	if err != nil || result != true {
		t.Errorf("Expected true without error, got %v, error: %v", result, err)
	}
}

func TestRejected(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("lookup failed")
	f := async.Rejected[bool](expectedErr)
	if !f.IsComplete() {
		t.Fatal("Expected rejected future to be complete immediately")
	}

	result, err := f.Await()
	if !errors.Is(err, expectedErr) {
		t.Errorf("Expected error '%v', got: %v", expectedErr, err)
	}
	if result {
		t.Error("Expected zero result for rejected future")
	}
}

// TestAsyncPreCanceledContext checks that fn is never called with a dead context.
func TestAsyncPreCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	future := async.Async(ctx, 1, func(ctx context.Context, num int) (int, error) {
		called = true
		return num, nil
	})

	_, err := future.Await()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if called {
		t.Error("Expected fn not to be called for a canceled context")
	}
}

// TestAsyncContextCancellation tests that the Async helper handles context cancellation properly.
func TestAsyncContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	future := async.Async(ctx, 42, func(ctx context.Context, num int) (string, error) {
		select {
		case <-time.After(200 * time.Millisecond):
			return fmt.Sprintf("Number: %d", num), nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	result, err := future.Await()

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context deadline exceeded error, got: %v", err)
	}

	if result != "" {
		t.Errorf("Expected empty result due to cancellation, got: '%s'", result)
	}
}

// TestAsyncErrorPropagation tests that errors from the asynchronous function are propagated correctly.
func TestAsyncErrorPropagation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	expectedErr := errors.New("an error occurred in the async function")

	future := async.Async(ctx, 42, func(ctx context.Context, num int) (int, error) {
		return 0, expectedErr
	})

	result, err := future.Await()

	if !errors.Is(err, expectedErr) {
		t.Errorf("Expected error '%v', got: %v", expectedErr, err)
	}

	if result != 0 {
		t.Errorf("Expected result 0 due to error, got: %d", result)
	}
}

func TestAsyncConcurrentIncrement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var mu sync.Mutex
	counter := 0

	futures := make([]*async.Future[int], 0, 500)
	for range 500 {
		futures = append(futures, async.Async(ctx, 1, func(_ context.Context, delta int) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			counter += delta
			return counter, nil
		}))
	}

	for _, f := range futures {
		if _, err := f.Await(); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if counter != 500 {
		t.Errorf("Expected counter to be 500, got %d", counter)
	}
}

// TestIsComplete tests the IsComplete method of Future.
func TestIsComplete(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})

	future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (bool, error) {
		<-release
		return true, nil
	})

	if future.IsComplete() {
		t.Error("Expected future to not be complete before release")
	}

	close(release)
	<-future.Done()

	if !future.IsComplete() {
		t.Error("Expected future to be complete after Done is closed")
	}
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	defer close(release)

	future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (bool, error) {
		<-release
		return true, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := future.AwaitContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}

	resolved, err := async.Resolved(true).AwaitContext(context.Background())
	if err != nil || !resolved {
		t.Errorf("Expected true without error, got %v, error: %v", resolved, err)
	}
}
