package filepond

import "github.com/atdiar/zui-filepond/signal"

// DesiredConfig merges the option bag and the file set into the configuration
// the widget should have. The files always override any "files" option.
func DesiredConfig(opts Options, files Files) Options {
	c := opts.Clone()
	if files == nil {
		c["files"] = nil
	} else {
		c["files"] = []any(files)
	}
	return c
}

// desiredConfig keeps DesiredConfig up to date with the two inputs.
func desiredConfig(opts signal.Readable[Options], files signal.Readable[Files]) *signal.Computed[Options] {
	return signal.Derive(func() Options {
		return DesiredConfig(opts.Get(), files.Get())
	}, opts, files)
}
