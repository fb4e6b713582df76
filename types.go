package filepond

import "maps"

// Options is the option bag handed to the widget. Recognized keys are defined
// by the widget, not by this package.
type Options map[string]any

// Clone returns a shallow copy of o. A nil Options clones to an empty one.
func (o Options) Clone() Options {
	c := make(Options, len(o)+1)
	maps.Copy(c, o)
	return c
}

// Files is the desired file set: sources (URLs, server ids) or
// {source, options} objects, as understood by the widget.
type Files []any

// Detail is the payload of a widget event as seen on an output channel.
type Detail map[string]any

// detailOf returns a shallow copy of an event detail. Anything that is not an
// object yields an empty Detail.
func detailOf(v any) Detail {
	switch d := v.(type) {
	case map[string]any:
		return maps.Clone(d)
	case Detail:
		return maps.Clone(d)
	default:
		return Detail{}
	}
}

// Status is the state of the widget as a whole.
type Status int

const (
	StatusEmpty Status = iota
	StatusIdle
	StatusError
	StatusBusy
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "EMPTY"
	case StatusIdle:
		return "IDLE"
	case StatusError:
		return "ERROR"
	case StatusBusy:
		return "BUSY"
	case StatusReady:
		return "READY"
	}
	return "UNKNOWN"
}

// FileStatus is the state of one file item.
type FileStatus int

const (
	FileInit                  FileStatus = 1
	FileIdle                  FileStatus = 2
	FileProcessing            FileStatus = 3
	FileProcessingComplete    FileStatus = 5
	FileProcessingError       FileStatus = 6
	FileLoading               FileStatus = 7
	FileLoadError             FileStatus = 8
	FileProcessingQueued      FileStatus = 9
	FileProcessingRevertError FileStatus = 10
)

// FileOrigin tells where a file item comes from.
type FileOrigin int

const (
	OriginInput FileOrigin = 1
	OriginLimbo FileOrigin = 2
	OriginLocal FileOrigin = 3
)

// File is a snapshot of a widget file item.
type File struct {
	ID       string
	ServerID string
	Filename string
	Type     string
	Size     int64
	Status   FileStatus
	Origin   FileOrigin
}

// Future is the eventual result of an asynchronous widget operation.
// Exactly one of resolve or reject is called, on the goroutine driving the widget.
type Future interface {
	Then(resolve func(value any), reject func(err error))
}

// Rejected returns a Future that fails with err.
func Rejected(err error) Future { return rejected{err} }

type rejected struct{ err error }

func (r rejected) Then(_ func(any), reject func(error)) {
	if reject != nil {
		reject(r.err)
	}
}

// Host is the element the component is mounted on. Widget events bubble up to
// it.
type Host interface {
	// Attr returns the value of an attribute explicitly set on the host.
	Attr(name string) (string, bool)
	// Listen subscribes fn to DOM events of the given type. The returned
	// function removes that very subscription.
	Listen(eventType string, fn func(eventType string, detail any)) (remove func())
}

// Input is the plain file input the widget enhances. It stays usable on its
// own when the widget cannot be created.
type Input interface {
	SetAttribute(name, value string)
}

// Library is the widget library: a capability probe and an instance factory.
type Library interface {
	Supported() bool
	Create(input Input, opts Options) (Instance, error)
}

// Instance is a live widget bound to one input element.
type Instance interface {
	Methods
	SetOptions(opts Options) error
	Destroy() error
}

// Methods is the part of the widget surface a component delegates to its
// users. The operations a component manages itself (options, listeners,
// placement and destruction) are deliberately absent.
type Methods interface {
	AddFile(source any, opts Options) Future
	AddFiles(sources []any, opts Options) Future
	RemoveFile(query any, opts Options) error
	RemoveFiles(queries []any, opts Options) error
	ProcessFile(query any) Future
	ProcessFiles(queries ...any) Future
	PrepareFile(query any) Future
	PrepareFiles(queries ...any) Future
	GetFile(query any) (File, bool, error)
	GetFiles() ([]File, error)
	MoveFile(query any, index int) error
	Sort(compare func(a, b File) int) error
	Browse() error
	Status() (Status, error)
}

// managedMethods lists the widget operations never exposed through Methods.
var managedMethods = []string{
	"setOptions",
	"on",
	"off",
	"onOnce",
	"appendTo",
	"insertAfter",
	"insertBefore",
	"isAttachedTo",
	"replaceElement",
	"restoreElement",
	"destroy",
}

// ManagedMethods returns the names of the widget operations a component keeps
// to itself.
func ManagedMethods() []string {
	return append([]string(nil), managedMethods...)
}
