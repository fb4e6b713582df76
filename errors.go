package filepond

import "errors"

var (
	ErrMounted        = errors.New("component already mounted")
	ErrUnknownChannel = errors.New("unknown output channel")
	ErrNoInput        = errors.New("component has no fallback input")
	ErrNoLibrary      = errors.New("no widget library")
	ErrUnsupported    = errors.New("operation not supported by the widget")
	ErrCreate         = errors.New("widget creation failed")
	ErrDestroy        = errors.New("widget destruction failed")
	ErrForeignElement = errors.New("element does not belong to this driver")
)
