package cmd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	filepond "github.com/atdiar/zui-filepond"
	"github.com/atdiar/zui-filepond/dom"
)

// loadOptions reads a YAML option bag. Its files entry, when present, is the
// desired file set and is returned apart from the other options.
func loadOptions(path string) (filepond.Options, filepond.Files, error) {
	if path == "" {
		return filepond.Options{}, nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	// decoded as a plain map so that nested mappings stay map[string]any
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	opts := filepond.Options(doc)
	if opts == nil {
		opts = filepond.Options{}
	}
	raw, ok := opts["files"]
	delete(opts, "files")
	if !ok || raw == nil {
		return opts, nil, nil
	}
	l, ok := raw.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("%s: files must be a list", path)
	}
	return opts, filepond.Files(l), nil
}

// hostMarkup builds a detached <file-pond> host holding a file input. Host
// attributes are given as name=value pairs; a bare name is an empty attribute.
func hostMarkup(pairs []string) (host, input *dom.Element, err error) {
	host = dom.NewElement("file-pond")
	for _, p := range pairs {
		name, value, _ := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, nil, fmt.Errorf("invalid attribute %q", p)
		}
		host.SetAttribute(name, value)
	}
	input = dom.NewElement("input", dom.Attr("type", "file"))
	host.AppendChild(input)
	return host, input, nil
}
