// Package filepond embeds the FilePond upload widget in a host element.
//
// A Component bridges two worlds. Reactive inputs (an option bag and a file
// set, see package signal) are merged and pushed into the widget instance once
// per tick. The DOM custom events the widget dispatches on its host
// ("FilePond:addfile", ...) are re-emitted on output channels ("onaddfile",
// ...) with a copy of their detail.
//
// Mounting always prepares the plain file input the widget enhances, copying
// the host attributes (or options) listed by FallbackAttributes, so that the
// page keeps a working input when the environment cannot host the widget.
// Whether it can is probed once at startup with Detect.
//
//	support := filepond.Detect(lib)
//	c := filepond.New(host, input, lib, support, filepond.WithOptions(opts))
//	cancel, _ := c.On(filepond.OnAddFile, func(d filepond.Detail) { ... })
//	defer cancel()
//	if err := c.Mount(); err != nil { ... }
//	defer c.Unmount()
//	if pond, ok := c.Methods(); ok {
//		pond.Browse()
//	}
//
// The widget itself is provided by a driver: drivers/browser for WebAssembly
// builds running in a browser, drivers/headless for a script hosted in goja.
package filepond
