package filepond

// Support records whether the environment can host the widget. It is computed
// once, at startup, with Detect and handed to every component.
type Support struct {
	ok bool
}

// Detect probes lib once. A nil library is never supported.
func Detect(lib Library) Support {
	if lib == nil {
		return Support{}
	}
	return Support{lib.Supported()}
}

// Supported returns the probe result.
func (s Support) Supported() bool { return s.ok }

// Unsupported is the Support of environments that can only render the
// fallback input.
var Unsupported = Support{}
