// Package signal provides the reactive values used to feed a component: writable
// signals, derived values and effects that re-run once per scheduler tick.
//
// Nothing in this package is safe for concurrent use. Values are meant to be read
// and written from the goroutine that drives the UI (typically an event loop).
package signal

// Readable is implemented by every reactive value that can be observed.
type Readable[T any] interface {
	Watchable
	Get() T
}

// Watchable is the untyped side of a reactive value: something a Handler can
// be attached to in order to learn that the value changed.
type Watchable interface {
	Watch(h *Handler)
	Unwatch(h *Handler)
}

// Handler is a wrapper type around a callback run after a watched value changed.
// Handlers are compared by pointer when removed.
type Handler struct {
	Fn func()
}

func NewHandler(fn func()) *Handler {
	return &Handler{fn}
}

func (h *Handler) Handle() {
	if h.Fn != nil {
		h.Fn()
	}
}

type handlers struct {
	list []*Handler
}

func (hs *handlers) Add(h *Handler) {
	for _, v := range hs.list {
		if v == h {
			return
		}
	}
	hs.list = append(hs.list, h)
}

func (hs *handlers) Remove(h *Handler) {
	index := -1
	for k, v := range hs.list {
		if v != h {
			continue
		}
		index = k
		break
	}
	if index >= 0 {
		hs.list = append(hs.list[:index:index], hs.list[index+1:]...)
	}
}

func (hs *handlers) Notify() {
	// handlers may unwatch while being notified
	list := append([]*Handler(nil), hs.list...)
	for _, h := range list {
		h.Handle()
	}
}

func (hs *handlers) Len() int { return len(hs.list) }

// Signal holds a value and notifies its watchers each time it is Set.
type Signal[T any] struct {
	value    T
	watchers handlers
}

// New returns a Signal initialized to v.
func New[T any](v T) *Signal[T] {
	return &Signal[T]{value: v}
}

func (s *Signal[T]) Get() T { return s.value }

// Set replaces the value and notifies watchers. Values are not compared: setting
// the same value twice notifies twice, the way an input binding would.
func (s *Signal[T]) Set(v T) {
	s.value = v
	s.watchers.Notify()
}

// Update sets the value to fn applied to the current one.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

func (s *Signal[T]) Watch(h *Handler)   { s.watchers.Add(h) }
func (s *Signal[T]) Unwatch(h *Handler) { s.watchers.Remove(h) }

// Watchers returns how many handlers currently watch the signal.
func (s *Signal[T]) Watchers() int { return s.watchers.Len() }

// Const returns a Readable that never changes.
func Const[T any](v T) Readable[T] {
	return constant[T]{v}
}

type constant[T any] struct{ v T }

func (c constant[T]) Get() T           { return c.v }
func (c constant[T]) Watch(*Handler)   {}
func (c constant[T]) Unwatch(*Handler) {}
