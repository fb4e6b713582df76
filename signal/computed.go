package signal

// Computed is a value derived from other reactive values. It is recomputed
// lazily, on the first Get following a change of any of its sources.
type Computed[T any] struct {
	fn       func() T
	sources  []Watchable
	value    T
	dirty    bool
	watchers handlers
	onChange *Handler
}

// Derive returns a Computed evaluating fn whenever one of sources changed.
// fn should only read the sources it declares.
func Derive[T any](fn func() T, sources ...Watchable) *Computed[T] {
	c := &Computed[T]{fn: fn, sources: sources, dirty: true}
	c.onChange = NewHandler(func() {
		c.dirty = true
		c.watchers.Notify()
	})
	for _, s := range sources {
		s.Watch(c.onChange)
	}
	return c
}

func (c *Computed[T]) Get() T {
	if c.dirty {
		c.value = c.fn()
		c.dirty = false
	}
	return c.value
}

func (c *Computed[T]) Watch(h *Handler)   { c.watchers.Add(h) }
func (c *Computed[T]) Unwatch(h *Handler) { c.watchers.Remove(h) }

// Dispose detaches the Computed from its sources. It keeps returning the last
// computed value afterwards.
func (c *Computed[T]) Dispose() {
	for _, s := range c.sources {
		s.Unwatch(c.onChange)
	}
	c.sources = nil
}
