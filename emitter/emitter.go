// Package emitter is a synchronous publish/subscribe facility keyed by
// channel names.
//
// Listeners are identified by the Subscription handle returned on
// subscription and may optionally be bound to an owner, so that every
// listener of one owner can be dropped at once. Dispatch runs in the
// caller's goroutine; an Emitter is not safe for concurrent use.
package emitter

import (
	"reflect"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Listener receives the arguments passed to Emit.
type Listener func(args ...interface{})

// Subscription is a handle of a registered listener.
type Subscription struct {
	id      uuid.UUID
	channel string
	owner   interface{}
	fn      Listener
}

// ID returns a unique id of the subscription. It tags the debug log records
// of the subscription; handles themselves are matched by pointer.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Channel returns the channel the listener is registered on.
func (s *Subscription) Channel() string {
	return s.channel
}

// Owner returns the owner the listener is bound to (nil if none).
func (s *Subscription) Owner() interface{} {
	return s.owner
}

type option func(*Emitter)

// WithLogger sets a logger for subscription bookkeeping.
func WithLogger(log *zap.Logger) option {
	return func(e *Emitter) {
		if log != nil {
			e.log = log
		}
	}
}

// Emitter dispatches events to the listeners of named channels.
type Emitter struct {
	channels map[string][]*Subscription
	log      *zap.Logger
}

// New creates an Emitter with no channels.
func New(opts ...option) *Emitter {
	e := &Emitter{
		channels: make(map[string][]*Subscription),
		log:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// On registers a listener on a channel.
func (e *Emitter) On(channel string, fn Listener) *Subscription {
	return e.OnWith(channel, nil, fn)
}

// OnWith registers a listener on a channel bound to an owner.
func (e *Emitter) OnWith(channel string, owner interface{}, fn Listener) *Subscription {
	sub := &Subscription{
		id:      uuid.New(),
		channel: channel,
		owner:   owner,
		fn:      fn,
	}

	e.channels[channel] = append(e.channels[channel], sub)

	e.log.Debug("listener added",
		zap.String("channel", channel),
		zap.Stringer("id", sub.id),
		zap.Int("listeners", len(e.channels[channel])),
	)

	return sub
}

// Off removes a single listener. It returns false if the subscription is
// not registered on the channel.
func (e *Emitter) Off(channel string, sub *Subscription) bool {
	if sub == nil || sub.channel != channel {
		return false
	}

	removed := e.remove(channel, func(s *Subscription) bool {
		return s == sub
	})

	return removed > 0
}

// OffOwner removes every listener of a channel bound to the owner and
// returns how many were removed. Owners of uncomparable types never match.
func (e *Emitter) OffOwner(channel string, owner interface{}) int {
	if owner == nil || !reflect.TypeOf(owner).Comparable() {
		return 0
	}

	return e.remove(channel, func(s *Subscription) bool {
		return sameOwner(s.owner, owner)
	})
}

// sameOwner compares owners with ==. A comparable struct may still hold an
// uncomparable value in an interface field, so a panicking == means no match.
func sameOwner(a, b interface{}) (same bool) {
	if a == nil || reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	defer func() {
		if recover() != nil {
			same = false
		}
	}()

	return a == b
}

func (e *Emitter) remove(channel string, match func(*Subscription) bool) int {
	subs, ok := e.channels[channel]
	if !ok {
		return 0
	}

	// copy on write: an ongoing Emit keeps iterating over its own snapshot
	kept := make([]*Subscription, 0, len(subs))

	for _, s := range subs {
		if !match(s) {
			kept = append(kept, s)
		}
	}

	removed := len(subs) - len(kept)

	if len(kept) == 0 {
		delete(e.channels, channel)
	} else {
		e.channels[channel] = kept
	}

	if removed > 0 {
		e.log.Debug("listeners removed",
			zap.String("channel", channel),
			zap.Int("removed", removed),
			zap.Int("listeners", len(kept)),
		)
	}

	return removed
}

// Emit synchronously calls every listener of the channel in subscription
// order. Listeners added or removed during dispatch take effect on the next
// Emit. It returns whether the channel had any listeners.
func (e *Emitter) Emit(channel string, args ...interface{}) bool {
	subs := e.channels[channel]
	if len(subs) == 0 {
		return false
	}

	for _, s := range subs {
		s.fn(args...)
	}

	return true
}

// ListenerCount returns the number of listeners on a channel.
func (e *Emitter) ListenerCount(channel string) int {
	return len(e.channels[channel])
}

// Channels returns the names of all channels having listeners, sorted.
func (e *Emitter) Channels() []string {
	names := make([]string, 0, len(e.channels))

	for name := range e.channels {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
