package signal

// Scheduler decides when an effect runs after its dependencies changed.
// A tick is whatever unit of work the Scheduler batches together.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Schedule(fn func()) { f(fn) }

// Immediate runs effects synchronously, every change being its own tick.
var Immediate Scheduler = SchedulerFunc(func(fn func()) { fn() })

// Queue is a Scheduler collecting work until Flush is called. Each Flush is
// one tick. It is mostly useful for tests and for hosts with an explicit
// change detection pass.
type Queue struct {
	pending []func()
}

func (q *Queue) Schedule(fn func()) {
	q.pending = append(q.pending, fn)
}

// Flush runs the queued work, including work queued while flushing.
func (q *Queue) Flush() {
	for len(q.pending) > 0 {
		fns := q.pending
		q.pending = nil
		for _, fn := range fns {
			fn()
		}
	}
}

// Len returns the amount of queued work.
func (q *Queue) Len() int { return len(q.pending) }

// Effect runs a side effect once per tick in which at least one of its
// dependencies changed. The first run is scheduled on creation.
type Effect struct {
	fn        func()
	deps      []Watchable
	scheduler Scheduler
	scheduled bool
	stopped   bool
	onChange  *Handler
}

// NewEffect creates an Effect running fn through s.
func NewEffect(s Scheduler, fn func(), deps ...Watchable) *Effect {
	if s == nil {
		s = Immediate
	}
	e := &Effect{fn: fn, deps: deps, scheduler: s}
	e.onChange = NewHandler(e.schedule)
	for _, d := range deps {
		d.Watch(e.onChange)
	}
	e.schedule()
	return e
}

func (e *Effect) schedule() {
	if e.stopped || e.scheduled {
		return
	}
	e.scheduled = true
	e.scheduler.Schedule(e.run)
}

func (e *Effect) run() {
	e.scheduled = false
	if e.stopped {
		return
	}
	e.fn()
}

// Stop detaches the effect. A run already scheduled becomes a no-op.
func (e *Effect) Stop() {
	if e.stopped {
		return
	}
	e.stopped = true
	for _, d := range e.deps {
		d.Unwatch(e.onChange)
	}
}

// Stopped reports whether Stop was called.
func (e *Effect) Stopped() bool { return e.stopped }
