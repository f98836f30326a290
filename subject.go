package goevents

import "sync"

// Subject is a hot stream that multicasts manually published events to its
// current subscribers. It implements Stream.
//
// A subject is terminal-once: events published after Error or Complete are
// dropped, and consumers subscribing after termination receive the terminal
// event immediately.
//
// Publishing from multiple goroutines is safe; delivery is serialized, so no
// subscriber is invoked concurrently. The subscriber state lock is separate
// from the delivery lock, so a consumer may release its own subscription from
// within delivery. A consumer must not publish back into the subject that is
// delivering to it.
type Subject[T any] struct {
	// delivery serializes publish calls end to end, including the consumer
	// callbacks; mu guards only the subscriber state and is never held while
	// a consumer runs.
	delivery  sync.Mutex
	mu        sync.Mutex
	nextID    int
	consumers map[int]Consumer[T]
	terminal  *Event[T]
}

// NewSubject returns a subject with no subscribers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{consumers: map[int]Consumer[T]{}}
}

// Next publishes a Next event carrying value.
func (s *Subject[T]) Next(value T) {
	s.publish(Next(value))
}

// Error publishes a terminal Error event carrying err.
func (s *Subject[T]) Error(err error) {
	s.publish(Error[T](err))
}

// Complete publishes a terminal Completed event.
func (s *Subject[T]) Complete() {
	s.publish(Completed[T]())
}

func (s *Subject[T]) publish(event Event[T]) {
	s.delivery.Lock()
	defer s.delivery.Unlock()

	s.mu.Lock()

	if s.terminal != nil {
		s.mu.Unlock()
		return
	}

	consumers := make([]Consumer[T], 0, len(s.consumers))
	for _, consume := range s.consumers {
		consumers = append(consumers, consume)
	}

	if event.IsTerminal() {
		terminal := event
		s.terminal = &terminal
		s.consumers = map[int]Consumer[T]{}
	}

	s.mu.Unlock()

	for _, consume := range consumers {
		consume(event)
	}
}

// Subscribe implements Stream.
// If the subject has already terminated, consume immediately receives the
// terminal event.
func (s *Subject[T]) Subscribe(consume Consumer[T]) Subscription {
	s.mu.Lock()

	if s.terminal != nil {
		terminal := *s.terminal
		s.mu.Unlock()

		consume(terminal)

		return NopSubscription()
	}

	id := s.nextID
	s.nextID++
	s.consumers[id] = consume

	s.mu.Unlock()

	return Releaser(func() {
		s.mu.Lock()
		delete(s.consumers, id)
		s.mu.Unlock()
	})
}
