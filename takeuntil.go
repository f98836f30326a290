package goevents

import (
	"sync"
	"sync/atomic"
)

// MatchFunc reports whether element elem matches a condition.
// Returning a non-nil error terminates the stream with an Error event.
type MatchFunc[T any] func(elem T) (bool, error)

// TakeUntilBehavior selects whether the element that first matches a
// TakeUntilMatch condition is forwarded before the stream completes.
type TakeUntilBehavior int

const (
	// TakeUntilExclusive drops the matching element; downstream receives only Completed.
	TakeUntilExclusive TakeUntilBehavior = iota

	// TakeUntilInclusive forwards the matching element, then Completed.
	TakeUntilInclusive
)

// TakeUntil returns a stream that forwards the events of source until other
// delivers its first event.
// A Next from other completes the new stream; an Error from other is forwarded
// as the new stream's error. If other completes without ever delivering a
// value, source passes through unaltered to its own terminal event.
//
// source and other may deliver events concurrently on independent goroutines;
// the new stream serializes both into a single downstream sequence with at
// most one terminal event.
func TakeUntil[T any, U any](source Stream[T], other Stream[U]) Stream[T] {
	return StreamFunc[T](func(consume Consumer[T]) Subscription {
		sink := &takeUntilSink[T]{
			downstream: consume,
			owned:      CombineSubscriptions(),
		}

		// The other stream is subscribed first, so a synchronously firing
		// other gates source before source delivers anything.
		otherSub := &singleSubscription{}
		sink.owned.Add(otherSub)

		otherSub.set(other.Subscribe(func(event Event[U]) {
			switch {
			case event.IsError():
				sink.receive(Error[T](event.Err()))

			case event.IsCompleted():
				// The other stream ended without firing; it is irrelevant
				// from here on. Only its own subscription is released.
				otherSub.Release()

			default:
				sink.receive(Completed[T]())
			}
		}))

		sink.owned.Add(source.Subscribe(sink.receive))

		return Releaser(sink.cancel)
	})
}

// takeUntilSink is the per-subscription state of TakeUntil. Both upstreams
// funnel their events through a single queue guarded by the sink mutex; one
// frame at a time drains the queue, invoking the downstream consumer with
// the mutex released. A consumer that synchronously feeds either upstream
// from inside its callback re-enters the sink on the same goroutine; the
// re-entered call only appends to the queue and returns, leaving delivery
// to the outer frame, so the sink never deadlocks on itself.
type takeUntilSink[T any] struct {
	mu         sync.Mutex
	queue      []Event[T]
	draining   bool
	stopped    bool
	downstream Consumer[T]
	owned      *CompositeSubscription
}

// receive appends event to the delivery queue and, unless a frame further up
// the call stack is already doing so, drains the queue downstream.
// The first terminal event stops the sink and releases every owned
// subscription; events arriving after it are dropped.
func (s *takeUntilSink[T]) receive(event Event[T]) {
	s.mu.Lock()

	if s.stopped {
		s.mu.Unlock()
		return
	}

	if event.IsTerminal() {
		// No further event may be queued behind a terminal one.
		s.stopped = true
	}

	s.queue = append(s.queue, event)

	if s.draining {
		s.mu.Unlock()
		return
	}

	s.draining = true

	terminated := false

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]

		s.mu.Unlock()

		s.downstream(next)

		if next.IsTerminal() {
			terminated = true
		}

		s.mu.Lock()
	}

	s.draining = false

	s.mu.Unlock()

	if terminated {
		s.owned.Release()
	}
}

// cancel implements the handle returned by Subscribe. Queued events are
// dropped, so only an event already handed to the consumer when Release
// lands can still finish delivering. The sink mutex is never held while the
// consumer runs, so releasing from inside the consumer cannot deadlock.
func (s *takeUntilSink[T]) cancel() {
	s.mu.Lock()
	s.stopped = true
	s.queue = nil
	s.mu.Unlock()

	s.owned.Release()
}

// TakeUntilMatch returns a stream that forwards the elements of source until
// match first returns true.
// With TakeUntilInclusive, the matching element is forwarded before the
// Completed event; with TakeUntilExclusive, it is dropped. If match returns an
// error, the stream terminates with that error and the offending element is
// not forwarded.
func TakeUntilMatch[T any](source Stream[T], match MatchFunc[T], behavior TakeUntilBehavior) Stream[T] {
	return StreamFunc[T](func(consume Consumer[T]) Subscription {
		sink := &takeUntilMatchSink[T]{
			match:      match,
			behavior:   behavior,
			downstream: consume,
			sub:        &singleSubscription{},
		}

		sink.sub.set(source.Subscribe(sink.receive))

		return Releaser(sink.cancel)
	})
}

// takeUntilMatchSink is the per-subscription state of TakeUntilMatch.
// There is only one upstream, whose delivery is already serialized per the
// Stream contract, so a flag suffices where takeUntilSink needs a mutex.
type takeUntilMatchSink[T any] struct {
	match      MatchFunc[T]
	behavior   TakeUntilBehavior
	downstream Consumer[T]
	sub        *singleSubscription
	stopped    atomic.Bool
}

// receive handles events from the source stream.
func (s *takeUntilMatchSink[T]) receive(event Event[T]) {
	if s.stopped.Load() {
		return
	}

	if event.IsTerminal() {
		s.stop(event)
		return
	}

	matched, err := s.match(event.Value())
	if err != nil {
		s.stop(Error[T](err))
		return
	}

	if !matched {
		s.downstream(event)
		return
	}

	if s.behavior == TakeUntilInclusive {
		s.downstream(event)
	}

	s.stop(Completed[T]())
}

// stop delivers terminal downstream and releases the upstream subscription.
func (s *takeUntilMatchSink[T]) stop(terminal Event[T]) {
	s.stopped.Store(true)

	s.downstream(terminal)
	s.sub.Release()
}

// cancel implements the handle returned by Subscribe.
func (s *takeUntilMatchSink[T]) cancel() {
	s.stopped.Store(true)
	s.sub.Release()
}
