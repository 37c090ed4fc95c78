package weft

// State is a bound state cell: the one place mutable data lives in a
// view hierarchy. Views read the value while building their bodies;
// anything that mutates it marks every subscriber dirty, which an App
// turns into a scheduled re-render.
//
// Mutations within one run-loop tick coalesce: the last write to a cell
// wins, and all writes made before the tick drains are visible in the
// next frame. State is single-threaded like the rest of the core —
// mutate it from the run loop (key handlers, app callbacks), not from
// arbitrary goroutines.
type State[T any] struct {
	value     T
	listeners []func()
}

// NewState creates a state cell holding v.
func NewState[T any](v T) *State[T] {
	return &State[T]{value: v}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *State[T]) Set(v T) {
	s.value = v
	s.notify()
}

// Update applies fn to the value and notifies subscribers.
func (s *State[T]) Update(fn func(T) T) {
	s.value = fn(s.value)
	s.notify()
}

// Subscribe registers a dirty callback and returns an unsubscribe
// function.
func (s *State[T]) Subscribe(fn func()) func() {
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.listeners[idx] = nil
	}
}

func (s *State[T]) notify() {
	for _, fn := range s.listeners {
		if fn != nil {
			fn()
		}
	}
}

// StateCell is the untyped face of a State, used to attach cells to an
// App without caring about the value type.
type StateCell interface {
	Subscribe(fn func()) func()
}
