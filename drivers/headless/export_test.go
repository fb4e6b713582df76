package headless

// Views returns how many element views the runtime holds. It must be called on
// the loop.
func (r *Runtime) Views() int { return len(r.elements) }
