package pyramis

import (
	"github.com/aglyzov/go-pyramis/emitter"
	"github.com/aglyzov/go-pyramis/keypath"
)

// WatchFunc observes changes at or below a watched key. key is relative to
// the watched key (RootKey for the watched key itself), val is the new value
// (nil when deleted) and prev is the replaced value (nil when none).
type WatchFunc func(key string, val, prev interface{})

// Watch registers fn on an exact key. fn is called synchronously, from
// within Set and Delete, for every change of the key or any of its
// descendants. Use RootKey to observe the whole store.
//
// A watcher must not mutate the store it observes.
func (s *Store) Watch(key string, fn WatchFunc) *emitter.Subscription {
	return s.ee.On(s.channel(key), listener(fn))
}

// WatchWith is like Watch but binds the watcher to an owner, so that
// UnwatchOwner can drop all watchers of the owner at once.
func (s *Store) WatchWith(key string, owner interface{}, fn WatchFunc) *emitter.Subscription {
	return s.ee.OnWith(s.channel(key), owner, listener(fn))
}

// WatchAndEnum registers fn like Watch and then immediately calls it once
// per value currently stored at or below the key (with a nil prev), so no
// change can fall between the catch-up and the live updates.
func (s *Store) WatchAndEnum(key string, fn WatchFunc) *emitter.Subscription {
	sub := s.Watch(key, fn)

	s.Enum(key, func(k string, val interface{}) {
		fn(k, val, nil)
	})

	return sub
}

// Unwatch removes a watcher registered on the key.
func (s *Store) Unwatch(key string, sub *emitter.Subscription) bool {
	return s.ee.Off(s.channel(key), sub)
}

// UnwatchOwner removes every watcher of the key bound to the owner and
// returns their number.
func (s *Store) UnwatchOwner(key string, owner interface{}) int {
	return s.ee.OffOwner(s.channel(key), owner)
}

// Watchers returns the number of watchers registered on the key.
func (s *Store) Watchers(key string) int {
	return s.ee.ListenerCount(s.channel(key))
}

// channel names the emitter channel of a key: "a." and "a" are the same key.
func (s *Store) channel(key string) string {
	return keypath.Clean(key, s.sep)
}

func listener(fn WatchFunc) emitter.Listener {
	return func(args ...interface{}) {
		fn(args[0].(string), args[1], args[2])
	}
}
