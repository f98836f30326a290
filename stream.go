package goevents

// Consumer receives the events delivered by a stream.
type Consumer[T any] func(event Event[T])

// Stream is a push-based source of events, subscribable by any number of consumers.
type Stream[T any] interface {
	// Subscribe registers consume to receive the stream's events and returns
	// a handle that cancels the subscription.
	// Events may be delivered on any goroutine, including synchronously
	// before Subscribe returns, but never concurrently for a single
	// subscription.
	Subscribe(consume Consumer[T]) Subscription
}

// StreamFunc adapts a function to the Stream interface.
type StreamFunc[T any] func(consume Consumer[T]) Subscription

// Subscribe implements Stream.
func (f StreamFunc[T]) Subscribe(consume Consumer[T]) Subscription {
	return f(consume)
}

// Just returns a stream that, for each subscription, synchronously delivers
// the given values in order, then completes.
func Just[T any](values ...T) Stream[T] {
	return StreamFunc[T](func(consume Consumer[T]) Subscription {
		for _, value := range values {
			consume(Next(value))
		}

		consume(Completed[T]())

		return NopSubscription()
	})
}

// Empty returns a stream that completes immediately, without delivering any value.
func Empty[T any]() Stream[T] {
	return StreamFunc[T](func(consume Consumer[T]) Subscription {
		consume(Completed[T]())

		return NopSubscription()
	})
}

// Throw returns a stream that immediately delivers err, without delivering any value.
func Throw[T any](err error) Stream[T] {
	return StreamFunc[T](func(consume Consumer[T]) Subscription {
		consume(Error[T](err))

		return NopSubscription()
	})
}

// Never returns a stream that never delivers any event.
func Never[T any]() Stream[T] {
	return StreamFunc[T](func(_ Consumer[T]) Subscription {
		return NopSubscription()
	})
}
