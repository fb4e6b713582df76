// Package headless hosts a FilePond compatible widget script inside goja, with
// the widget bound to elements of the headless DOM of package dom.
//
// Everything happens on the goroutine of a goja_nodejs event loop: the script,
// its timers and promises, the events it dispatches and therefore the component
// mounted on top of it. Code outside of the loop enters it through Do.
//
//	rt, _ := headless.New()
//	defer rt.Close()
//	_ = rt.Load("filepond.js", src)
//	_ = rt.Do(func(*goja.Runtime) error {
//		c := filepond.New(host, input, rt, filepond.Detect(rt), filepond.WithScheduler(rt.Scheduler()))
//		return c.Mount()
//	})
package headless

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"
	"go.uber.org/zap"

	"github.com/atdiar/zui-filepond/dom"
	filepond "github.com/atdiar/zui-filepond"
	"github.com/atdiar/zui-filepond/signal"
)

// DefaultTimeout bounds how long Do waits for the loop.
const DefaultTimeout = 5 * time.Second

var (
	ErrStopped = errors.New("event loop is not running")
	ErrTimeout = errors.New("timed out waiting for the event loop")
)

// Runtime is a goja runtime, with its event loop, hosting one widget library.
// It implements filepond.Library. Apart from New, Do, Load, Scheduler and
// Close, its methods must be called on the loop.
type Runtime struct {
	loop    *eventloop.EventLoop
	vm      *goja.Runtime
	library *goja.Object
	settle  goja.Callable

	elements map[*dom.Element]*goja.Object

	logger  *zap.Logger
	timeout time.Duration
}

// Option configures a Runtime.
type Option func(*Runtime)

func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithTimeout sets how long Do waits. Zero waits forever.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) { r.timeout = d }
}

// New starts an event loop and prepares its runtime for widget scripts.
func New(options ...Option) (*Runtime, error) {
	r := &Runtime{
		elements: make(map[*dom.Element]*goja.Object),
		logger:   zap.NewNop(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range options {
		opt(r)
	}
	r.logger = r.logger.Named("headless")

	r.loop = eventloop.NewEventLoop(eventloop.EnableConsole(false))
	r.loop.Start()

	err := r.Do(func(vm *goja.Runtime) error {
		r.vm = vm
		return r.install(vm)
	})
	if err != nil {
		r.loop.Stop()
		return nil, fmt.Errorf("initializing runtime: %w", err)
	}
	return r, nil
}

// Do runs fn on the loop and waits for it to return. It must not be called
// from the loop itself.
func (r *Runtime) Do(fn func(vm *goja.Runtime) error) error {
	errc := make(chan error, 1)
	ok := r.loop.RunOnLoop(func(vm *goja.Runtime) {
		errc <- protect(vm, fn)
	})
	if !ok {
		return ErrStopped
	}
	if r.timeout <= 0 {
		return <-errc
	}
	timer := time.NewTimer(r.timeout)
	defer timer.Stop()
	select {
	case err := <-errc:
		return err
	case <-timer.C:
		return ErrTimeout
	}
}

func protect(vm *goja.Runtime, fn func(vm *goja.Runtime) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = fmt.Errorf("panic on event loop: %w", e)
				return
			}
			err = fmt.Errorf("panic on event loop: %v", p)
		}
	}()
	return fn(vm)
}

// Post queues fn on the loop without waiting. It is safe to call from any
// goroutine, the loop included.
func (r *Runtime) Post(fn func()) bool {
	return r.loop.RunOnLoop(func(*goja.Runtime) { fn() })
}

// Scheduler returns a scheduler running effects as a later loop job, so that
// every change made during one job is seen by a single run.
func (r *Runtime) Scheduler() signal.Scheduler {
	return signal.SchedulerFunc(func(fn func()) {
		if !r.Post(fn) {
			r.logger.Debug("dropping effect scheduled on a stopped loop")
		}
	})
}

// Close stops the event loop. Pending jobs are discarded.
func (r *Runtime) Close() error {
	r.loop.Stop()
	return nil
}

// Load evaluates a widget script. The script must define a global FilePond
// object with supported and create functions.
func (r *Runtime) Load(name, src string) error {
	return r.Do(func(vm *goja.Runtime) error {
		if _, err := vm.RunScript(name, src); err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
		lib := vm.Get("FilePond")
		if lib == nil || goja.IsUndefined(lib) || goja.IsNull(lib) {
			return fmt.Errorf("%w: %s does not define FilePond", filepond.ErrNoLibrary, name)
		}
		r.library = lib.ToObject(vm)
		r.logger.Debug("widget library loaded", zap.String("script", name))
		return nil
	})
}

// Supported calls FilePond.supported(). A missing library or probe is
// reported as unsupported.
func (r *Runtime) Supported() bool {
	if r.library == nil {
		return false
	}
	probe, ok := goja.AssertFunction(r.library.Get("supported"))
	if !ok {
		return false
	}
	v, err := probe(r.library)
	if err != nil {
		r.logger.Warn("support probe failed", zap.Error(err))
		return false
	}
	return v.ToBoolean()
}

// Create calls FilePond.create(element, options) with the JavaScript view of
// input, which must be a *dom.Element.
func (r *Runtime) Create(input filepond.Input, opts filepond.Options) (filepond.Instance, error) {
	el, ok := input.(*dom.Element)
	if !ok {
		return nil, filepond.ErrForeignElement
	}
	if r.library == nil {
		return nil, filepond.ErrNoLibrary
	}
	create, ok := goja.AssertFunction(r.library.Get("create"))
	if !ok {
		return nil, fmt.Errorf("%w: FilePond.create", filepond.ErrUnsupported)
	}
	v, err := create(r.library, r.element(el), r.toJS(opts))
	if err != nil {
		return nil, err
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, errors.New("FilePond.create returned no instance")
	}
	obj := v.ToObject(r.vm)
	for _, name := range []string{"setOptions", "destroy"} {
		if _, ok := goja.AssertFunction(obj.Get(name)); !ok {
			return nil, fmt.Errorf("%w: instance has no %s", filepond.ErrUnsupported, name)
		}
	}
	return &instance{rt: r, obj: obj, element: el}, nil
}

// Element returns the JavaScript view of el, creating it on first use.
func (r *Runtime) Element(el *dom.Element) *goja.Object {
	return r.element(el)
}
