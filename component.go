package filepond

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atdiar/zui-filepond/signal"
)

// State is the lifecycle state of a Component.
type State int

const (
	Unmounted State = iota
	Mounting
	Active
	Destroying
	Destroyed
)

func (s State) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Mounting:
		return "mounting"
	case Active:
		return "active"
	case Destroying:
		return "destroying"
	case Destroyed:
		return "destroyed"
	}
	return "invalid"
}

// Component embeds one widget instance in a host element. It turns its reactive
// inputs into widget configuration and the widget DOM events into output
// channels.
//
// A Component is not safe for concurrent use: it must be driven from the
// goroutine that runs the UI, the same one the widget dispatches events on.
type Component struct {
	ID string

	host    Host
	input   Input
	lib     Library
	support Support

	options   signal.Readable[Options]
	files     signal.Readable[Files]
	scheduler signal.Scheduler
	config    *signal.Computed[Options]
	reactor   *signal.Effect

	state    State
	instance Instance
	methods  Methods
	bridge   *bridge
	outputs  *Outputs

	logger *zap.Logger
}

// Option configures a Component.
type Option func(*Component)

// WithOptions binds the option bag input.
func WithOptions(opts signal.Readable[Options]) Option {
	return func(c *Component) { c.options = opts }
}

// WithFiles binds the file set input.
func WithFiles(files signal.Readable[Files]) Option {
	return func(c *Component) { c.files = files }
}

// WithScheduler sets the scheduler deciding when input changes reach the
// widget. It defaults to signal.Immediate, one tick per change.
func WithScheduler(s signal.Scheduler) Option {
	return func(c *Component) { c.scheduler = s }
}

// WithLogger sets the component logger. It defaults to Logger().
func WithLogger(l *zap.Logger) Option {
	return func(c *Component) { c.logger = l }
}

// New creates an unmounted Component for host. input is the fallback file
// input the widget gets created on. lib is only used when support says so and
// may be nil otherwise.
func New(host Host, input Input, lib Library, support Support, options ...Option) *Component {
	c := &Component{
		ID:        uuid.NewString(),
		host:      host,
		input:     input,
		lib:       lib,
		support:   support,
		scheduler: signal.Immediate,
		outputs:   newOutputs(),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.options == nil {
		c.options = signal.Const(Options{})
	}
	if c.files == nil {
		c.files = signal.Const[Files](nil)
	}
	if c.logger == nil {
		c.logger = Logger()
	}
	c.logger = c.logger.Named("filepond").With(zap.String("component", c.ID))

	c.config = desiredConfig(c.options, c.files)
	c.reactor = signal.NewEffect(c.scheduler, c.pushConfig, c.config)
	return c
}

// State returns the current lifecycle state.
func (c *Component) State() State { return c.state }

// Supported reports whether the component was created for an environment able
// to host the widget.
func (c *Component) Supported() bool { return c.support.Supported() }

// Config returns the configuration the widget should currently have.
func (c *Component) Config() Options { return c.config.Get() }

// Mount runs once the host is rendered. The fallback input always receives
// its attributes; the widget is only created when the environment supports
// it. Errors of the widget creation are returned as is, wrapped in ErrCreate.
//
// An output handler may call Unmount while the widget is being created. The
// new widget is then destroyed as soon as Create returns.
func (c *Component) Mount() error {
	if c.state != Unmounted {
		return ErrMounted
	}
	if c.input == nil {
		return ErrNoInput
	}
	c.state = Mounting
	defer func() {
		if c.state == Mounting {
			c.state = Active
		}
	}()

	copied := synthesizeAttributes(c.host, c.input, c.options.Get())
	c.logger.Debug("fallback input prepared", zap.Strings("attributes", copied))

	if !c.support.Supported() {
		c.logger.Debug("widget unsupported, running on the fallback input")
		return nil
	}
	if c.lib == nil {
		return ErrNoLibrary
	}

	c.bridge = subscribe(c.host, c.handleEvent)

	instance, err := c.lib.Create(c.input, c.config.Get())
	if err != nil {
		c.unsubscribe()
		return fmt.Errorf("%w: %w", ErrCreate, err)
	}
	if c.state != Mounting {
		c.logger.Debug("unmounted during creation, destroying the new widget")
		if err := instance.Destroy(); err != nil {
			return fmt.Errorf("%w: %w", ErrDestroy, err)
		}
		return nil
	}
	c.instance = instance
	c.methods = delegate{instance}
	c.logger.Debug("widget created")
	return nil
}

// Unmount tears the component down: widget events stop reaching the outputs,
// then the widget is destroyed. It is a no-op when there is no widget, and
// calling it again never destroys twice.
func (c *Component) Unmount() error {
	switch c.state {
	case Destroying, Destroyed:
		return nil
	}
	c.reactor.Stop()
	c.config.Dispose()

	if c.instance == nil {
		c.unsubscribe()
		c.state = Destroyed
		return nil
	}
	c.state = Destroying
	defer func() { c.state = Destroyed }()

	c.unsubscribe()
	instance := c.instance
	c.instance = nil
	c.methods = nil
	if err := instance.Destroy(); err != nil {
		return fmt.Errorf("%w: %w", ErrDestroy, err)
	}
	c.logger.Debug("widget destroyed")
	return nil
}

func (c *Component) unsubscribe() {
	if c.bridge != nil {
		c.bridge.unsubscribe()
		c.bridge = nil
	}
}

// delegate hides everything of an Instance but its Methods, so that the
// managed operations cannot be reached by a type assertion.
type delegate struct {
	Methods
}

// Methods returns the widget operations delegated by the component. It
// reports false when no widget exists: before mounting, after unmounting, or
// when the environment is unsupported.
func (c *Component) Methods() (Methods, bool) {
	return c.methods, c.methods != nil
}

// On registers fn on the output channel ch. The returned function unregisters
// it.
func (c *Component) On(ch Channel, fn func(Detail)) (cancel func(), err error) {
	h := NewOutputHandler(fn)
	if err := c.outputs.Add(ch, h); err != nil {
		return nil, fmt.Errorf("%w: %q", err, ch)
	}
	return func() { c.outputs.Remove(ch, h) }, nil
}

// Outputs gives access to the output channels handlers.
func (c *Component) Outputs() *Outputs { return c.outputs }

// pushConfig is the option reactor: it runs once per tick in which an input
// changed and hands the merged configuration to the widget, if any.
func (c *Component) pushConfig() {
	config := c.config.Get()
	if c.instance == nil {
		return
	}
	if err := c.instance.SetOptions(config); err != nil {
		c.logger.Warn("widget rejected options", zap.Error(err))
	}
}

// handleEvent is the single handler shared by every widget event.
func (c *Component) handleEvent(eventType string, detail any) {
	if c.bridge == nil || c.state >= Destroying {
		// delivered after teardown started
		c.logger.Debug("dropping late widget event", zap.String("event", eventType))
		return
	}
	ch, ok := ChannelFor(eventType)
	if !ok {
		return
	}
	c.outputs.emit(ch, detailOf(detail))
}
