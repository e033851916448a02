package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T for type-safe broadcasting.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel messages arrive on. It is closed when the
	// subscriber is closed.
	Receive() <-chan Message[T]

	// Close is idempotent.
	Close() error
}

// Broadcaster sends messages to multiple subscribers.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber for the lifetime of ctx.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to every active subscriber.
	Broadcast(ctx context.Context, msg Message[T]) error

	Close() error
}

type subscriber[T any] struct {
	ch       chan Message[T]
	quit     chan struct{}
	quitOnce sync.Once
	closed   bool
	mu       sync.RWMutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		ch:   make(chan Message[T], bufferSize),
		quit: make(chan struct{}),
	}
}

func (s *subscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	// Release blocked senders before taking the write lock.
	s.quitOnce.Do(func() { close(s.quit) })

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send blocks until the message is buffered, the subscriber is closed or ctx is done.
// The read lock is held while waiting so Close cannot close the channel under a sender.
func (s *subscriber[T]) send(ctx context.Context, msg Message[T], blocking bool) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, nil
	}

	if !blocking {
		select {
		case s.ch <- msg:
			return true, nil
		default:
			return false, nil
		}
	}

	select {
	case s.ch <- msg:
		return true, nil
	case <-s.quit:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
