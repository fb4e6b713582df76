package filepond

import (
	"errors"

	"github.com/atdiar/zui-filepond/dom"
)

// fakeLibrary creates fakeInstances on dom elements.
type fakeLibrary struct {
	supported bool
	createErr error
	probes    int
	created   []*fakeInstance
	// onCreate runs before Create returns, like a widget dispatching its
	// first events synchronously.
	onCreate func(*fakeInstance)
}

func (l *fakeLibrary) Supported() bool {
	l.probes++
	return l.supported
}

func (l *fakeLibrary) Create(input Input, opts Options) (Instance, error) {
	if l.createErr != nil {
		return nil, l.createErr
	}
	el, ok := input.(*dom.Element)
	if !ok {
		return nil, ErrForeignElement
	}
	inst := &fakeInstance{element: el, initial: opts, files: map[string]File{}}
	l.created = append(l.created, inst)
	if l.onCreate != nil {
		l.onCreate(inst)
	}
	return inst, nil
}

type call struct {
	name string
	args []any
}

type fakeInstance struct {
	element    *dom.Element
	initial    Options
	setOptions []Options
	destroyed  int
	destroyErr error
	calls      []call
	files      map[string]File
	order      []string
}

func (p *fakeInstance) record(name string, args ...any) {
	p.calls = append(p.calls, call{name, args})
}

func (p *fakeInstance) fire(event string, detail map[string]any) {
	p.element.DispatchEvent(Namespace+":"+event, detail, true)
}

func (p *fakeInstance) SetOptions(opts Options) error {
	p.setOptions = append(p.setOptions, opts)
	return nil
}

func (p *fakeInstance) Destroy() error {
	p.destroyed++
	return p.destroyErr
}

type resolved struct{ v any }

func (r resolved) Then(resolve func(any), _ func(error)) { resolve(r.v) }

func (p *fakeInstance) AddFile(source any, opts Options) Future {
	p.record("addFile", source, opts)
	id, ok := source.(string)
	if !ok {
		return Rejected(errors.New("bad source"))
	}
	f := File{ID: id, Filename: id, Status: FileIdle, Origin: OriginInput}
	p.files[id] = f
	p.order = append(p.order, id)
	p.fire("addfile", map[string]any{"id": id})
	return resolved{f}
}

func (p *fakeInstance) AddFiles(sources []any, opts Options) Future {
	p.record("addFiles", sources, opts)
	var added []File
	for _, s := range sources {
		p.AddFile(s, opts).Then(func(v any) { added = append(added, v.(File)) }, nil)
	}
	return resolved{added}
}

func (p *fakeInstance) RemoveFile(query any, opts Options) error {
	p.record("removeFile", query, opts)
	id, _ := query.(string)
	if _, ok := p.files[id]; !ok {
		return errors.New("no such file")
	}
	delete(p.files, id)
	return nil
}

func (p *fakeInstance) RemoveFiles(queries []any, opts Options) error {
	p.record("removeFiles", queries, opts)
	return nil
}

func (p *fakeInstance) ProcessFile(query any) Future {
	p.record("processFile", query)
	return resolved{query}
}

func (p *fakeInstance) ProcessFiles(queries ...any) Future {
	p.record("processFiles", queries...)
	return resolved{len(queries)}
}

func (p *fakeInstance) PrepareFile(query any) Future {
	p.record("prepareFile", query)
	return resolved{query}
}

func (p *fakeInstance) PrepareFiles(queries ...any) Future {
	p.record("prepareFiles", queries...)
	return resolved{len(queries)}
}

func (p *fakeInstance) GetFile(query any) (File, bool, error) {
	p.record("getFile", query)
	id, _ := query.(string)
	f, ok := p.files[id]
	return f, ok, nil
}

func (p *fakeInstance) GetFiles() ([]File, error) {
	p.record("getFiles")
	l := make([]File, 0, len(p.order))
	for _, id := range p.order {
		if f, ok := p.files[id]; ok {
			l = append(l, f)
		}
	}
	return l, nil
}

func (p *fakeInstance) MoveFile(query any, index int) error {
	p.record("moveFile", query, index)
	return nil
}

func (p *fakeInstance) Sort(compare func(a, b File) int) error {
	p.record("sort")
	return nil
}

func (p *fakeInstance) Browse() error {
	p.record("browse")
	return nil
}

func (p *fakeInstance) Status() (Status, error) {
	p.record("status")
	if len(p.files) == 0 {
		return StatusEmpty, nil
	}
	return StatusIdle, nil
}

// laggingHost keeps delivering events after their subscription was removed,
// the way a widget dispatching asynchronously can.
type laggingHost struct {
	*dom.Element
}

func (h laggingHost) Listen(eventType string, fn func(string, any)) func() {
	h.Element.Listen(eventType, fn)
	return func() {}
}
