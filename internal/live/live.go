// Package live implements the subscription primitive behind every live
// query: a Feed broadcasts full snapshots to any number of Subscriptions,
// each of which delivers them in publish order on its own channel.
// Publishing never blocks on a slow consumer; each subscription buffers
// pending snapshots and a pump goroutine drains them. Cancelling a
// subscription stops delivery and releases the pump.
package live

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrClosed is reported by subscriptions whose feed was shut down.
var ErrClosed = errors.New("live: feed closed")

// Subscription is one consumer of a feed. Updates() yields an initial
// snapshot followed by one snapshot per publish, in order, until Cancel
// or feed shutdown closes the channel. After the channel closes, Err()
// reports why: nil for a plain cancel, otherwise the upstream failure.
type Subscription[T any] struct {
	id     string
	ch     chan T
	wake   chan struct{}
	done   chan struct{}
	stop   sync.Once
	detach func(id string)

	mu    sync.Mutex
	queue []T
	err   error
}

func newSubscription[T any](detach func(string)) *Subscription[T] {
	s := &Subscription[T]{
		id:     uuid.NewString(),
		ch:     make(chan T),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		detach: detach,
	}
	go s.pump()
	return s
}

// Updates returns the delivery channel. It is closed on Cancel and on
// feed shutdown.
func (s *Subscription[T]) Updates() <-chan T { return s.ch }

// Done is closed when the subscription stops delivering, from either side.
func (s *Subscription[T]) Done() <-chan struct{} { return s.done }

// Cancel stops delivery and releases the subscription's resources.
// Idempotent. Outstanding writes to the underlying store are unaffected.
func (s *Subscription[T]) Cancel() {
	s.stop.Do(func() {
		if s.detach != nil {
			s.detach(s.id)
		}
		close(s.done)
	})
}

// Err reports the failure that terminated the subscription, or nil after
// a plain Cancel. Only meaningful once Updates() is closed.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription[T]) fail(err error) {
	if err != nil {
		s.mu.Lock()
		if s.err == nil {
			s.err = err
		}
		s.mu.Unlock()
	}
	s.Cancel()
}

func (s *Subscription[T]) push(v T) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription[T]) pump() {
	defer close(s.ch)
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			next := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			select {
			case s.ch <- next:
			case <-s.done:
				return
			}
		}
	}
}

// Feed broadcasts snapshots of one table (or one derived view) to its
// subscribers. The publisher is expected to call Publish while holding
// whatever lock serializes mutations, so every subscription observes
// snapshots in commit order.
type Feed[T any] struct {
	name string
	log  zerolog.Logger

	mu     sync.Mutex
	subs   map[string]*Subscription[T]
	closed bool
	err    error
}

func NewFeed[T any](name string, log zerolog.Logger) *Feed[T] {
	return &Feed[T]{
		name: name,
		log:  log.With().Str("feed", name).Logger(),
		subs: make(map[string]*Subscription[T]),
	}
}

// Subscribe registers a consumer and queues initial as its first
// emission. The subscription is also cancelled when ctx is done.
// Subscribing to a closed feed yields an immediately terminated
// subscription with Err() == ErrClosed (or the feed's failure).
func (f *Feed[T]) Subscribe(ctx context.Context, initial T) *Subscription[T] {
	f.mu.Lock()
	if f.closed {
		err := f.err
		f.mu.Unlock()
		s := newSubscription[T](nil)
		if err == nil {
			err = ErrClosed
		}
		s.fail(err)
		return s
	}
	s := newSubscription[T](f.detach)
	f.subs[s.id] = s
	f.mu.Unlock()

	s.push(initial)
	f.log.Debug().Str("subscription", s.id).Msg("subscribed")

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				s.Cancel()
			case <-s.done:
			}
		}()
	}
	return s
}

// Publish queues v on every live subscription. Never blocks on consumers.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		s.push(v)
	}
}

// Fail terminates every subscription with err. Subscribers see their
// channel close and Err() return err; the feed accepts no new consumers.
func (f *Feed[T]) Fail(err error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.err = err
	subs := f.subs
	f.subs = make(map[string]*Subscription[T])
	f.mu.Unlock()

	if err != nil {
		f.log.Error().Err(err).Msg("feed failed")
	}
	for _, s := range subs {
		s.fail(err)
	}
}

// Close terminates every subscription without an error.
func (f *Feed[T]) Close() {
	f.Fail(nil)
}

// Failed returns a subscription that is already terminated with err,
// for reporting a failure discovered while setting the subscription up.
func Failed[T any](err error) *Subscription[T] {
	s := newSubscription[T](nil)
	s.fail(err)
	return s
}

func (f *Feed[T]) detach(id string) {
	f.mu.Lock()
	delete(f.subs, id)
	f.mu.Unlock()
	f.log.Debug().Str("subscription", id).Msg("unsubscribed")
}
