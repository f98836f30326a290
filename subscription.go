package goevents

import (
	"sync"
	"sync/atomic"
)

// Subscription is the cancelation capability returned by subscribing a
// consumer to a stream.
type Subscription interface {
	// Release cancels the subscription, stopping further event delivery and
	// freeing its resources.
	// Release is idempotent and safe to call from any goroutine.
	Release()
}

// Releaser returns a subscription that calls release on the first Release
// call. Further Release calls, from any goroutine, are no-ops.
func Releaser(release func()) Subscription {
	return &releaser{release: release}
}

type releaser struct {
	released atomic.Bool
	release  func()
}

// Release implements Subscription.
func (r *releaser) Release() {
	if r.released.Swap(true) {
		return
	}

	r.release()
}

// NopSubscription returns a subscription whose Release does nothing.
// It is used by streams that finish delivering during Subscribe and therefore
// hold no resources.
func NopSubscription() Subscription {
	return nopSubscription{}
}

type nopSubscription struct{}

// Release implements Subscription.
func (nopSubscription) Release() {}

// CompositeSubscription owns a set of child subscriptions and releases them
// together.
type CompositeSubscription struct {
	mu       sync.Mutex
	released bool
	children []Subscription
}

// CombineSubscriptions returns a composite subscription owning subs.
func CombineSubscriptions(subs ...Subscription) *CompositeSubscription {
	return &CompositeSubscription{children: append([]Subscription{}, subs...)}
}

// Add adds sub to the composite.
// If the composite has already been released, sub is released immediately.
func (c *CompositeSubscription) Add(sub Subscription) {
	c.mu.Lock()

	if c.released {
		c.mu.Unlock()
		sub.Release()
		return
	}

	c.children = append(c.children, sub)

	c.mu.Unlock()
}

// Release releases all child subscriptions, each exactly once.
// Further Release calls, from any goroutine, are no-ops.
func (c *CompositeSubscription) Release() {
	c.mu.Lock()

	if c.released {
		c.mu.Unlock()
		return
	}

	c.released = true
	children := c.children
	c.children = nil

	c.mu.Unlock()

	for _, sub := range children {
		sub.Release()
	}
}

// singleSubscription holds at most one child subscription, assigned after
// creation via set.
// Releasing before the child is assigned releases the child as soon as it is
// assigned, which makes it safe to subscribe a source that delivers
// synchronously during Subscribe.
type singleSubscription struct {
	mu       sync.Mutex
	released bool
	child    Subscription
}

func (s *singleSubscription) set(sub Subscription) {
	s.mu.Lock()

	if s.released {
		s.mu.Unlock()
		sub.Release()
		return
	}

	s.child = sub

	s.mu.Unlock()
}

// Release implements Subscription.
func (s *singleSubscription) Release() {
	s.mu.Lock()

	if s.released {
		s.mu.Unlock()
		return
	}

	s.released = true
	child := s.child
	s.child = nil

	s.mu.Unlock()

	if child != nil {
		child.Release()
	}
}
