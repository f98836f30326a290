// Package goevents provides push-based event streams and operators that gate them.
//
// A Stream delivers Events to a Consumer registered via Subscribe: any number of
// Next events carrying values, terminated by at most one Error or Completed event.
// Subscribe returns a Subscription handle whose Release stops further delivery
// and frees the resources of that subscription. Release is idempotent.
//
// Streams may deliver events on any goroutine, including synchronously on the
// subscribing goroutine, but never deliver concurrently for a single
// subscription. Subject upholds this for publishers on multiple goroutines by
// serializing delivery itself.
//
// The gating operators stop forwarding a source stream's events early:
// TakeUntil forwards events until a second stream delivers its first event or
// error, and TakeUntilMatch forwards elements until a predicate first matches,
// either including or excluding the matching element. Both guarantee that the
// downstream consumer receives at most one terminal event, and that every
// upstream subscription is released exactly once, no matter which side
// triggers termination or whether the subscription handle is released first.
package goevents
