package filepond

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atdiar/zui-filepond/dom"
	"github.com/atdiar/zui-filepond/signal"
)

func newHost(t *testing.T, markup string) (*dom.Element, *dom.Element) {
	t.Helper()
	host, err := dom.ParseString(markup)
	require.NoError(t, err)
	input := host.QuerySelector("input")
	require.NotNil(t, input)
	return host, input
}

const plainHost = `<file-pond><input type="file"></file-pond>`

func TestComponentCreates(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	c := New(host, input, lib, Detect(lib))
	require.NotNil(t, c)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, Unmounted, c.State())
	require.NoError(t, c.Mount())
	assert.Equal(t, Active, c.State())
	assert.Len(t, lib.created, 1)
	assert.Equal(t, 1, lib.probes)
}

func TestUnsupportedEnvironment(t *testing.T) {
	host, input := newHost(t, `<file-pond name="docs" disabled=""><input type="file"></file-pond>`)
	lib := &fakeLibrary{supported: false}
	opts := signal.New(Options{"required": true, "class": "pond", "name": "ignored", "disabled": true})
	c := New(host, input, lib, Detect(lib), WithOptions(opts))

	require.NoError(t, c.Mount())
	assert.Equal(t, Active, c.State())
	assert.Empty(t, lib.created)
	_, ok := c.Methods()
	assert.False(t, ok)
	for _, r := range routes {
		assert.Zero(t, host.ListenerCount(r.event), r.event)
	}

	name, _ := input.Attr("name")
	assert.Equal(t, "docs", name)
	required, _ := input.Attr("required")
	assert.Equal(t, "true", required)
	class, _ := input.Attr("class")
	assert.Equal(t, "pond", class)
	// an empty host attribute wins over the option, and is then skipped
	assert.False(t, input.HasAttribute("disabled"))

	// options changes never reach a widget that does not exist
	opts.Set(Options{"required": false})
	require.NoError(t, c.Unmount())
	require.NoError(t, c.Unmount())
	assert.Equal(t, Destroyed, c.State())
}

func TestUnmountWithoutMount(t *testing.T) {
	host, input := newHost(t, plainHost)
	c := New(host, input, nil, Unsupported)
	assert.NotPanics(t, func() {
		assert.NoError(t, c.Unmount())
	})
	assert.Equal(t, Destroyed, c.State())
	assert.ErrorIs(t, c.Mount(), ErrMounted)
}

func TestSynthesizeAttributes(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		options Options
		want    map[string]string
		absent  []string
	}{
		{
			name:    "host attributes",
			markup:  `<file-pond id="p" accept="image/png" multiple><input type="file"></file-pond>`,
			options: Options{},
			want:    map[string]string{"id": "p", "accept": "image/png"},
			absent:  []string{"multiple", "name"},
		},
		{
			name:    "options fallback",
			markup:  plainHost,
			options: Options{"multiple": true, "capture": "camera", "name": "filepond", "id": 0},
			want:    map[string]string{"multiple": "true", "capture": "camera", "name": "filepond"},
			absent:  []string{"id"},
		},
		{
			name:    "no nested option lookup",
			markup:  plainHost,
			options: Options{"acceptedFileTypes": []string{"image/png"}},
			absent:  []string{"accept"},
		},
		{
			name:    "top level accept option",
			markup:  plainHost,
			options: Options{"accept": []string{"image/png", "image/jpeg"}},
			want:    map[string]string{"accept": "image/png,image/jpeg"},
		},
		{
			name:    "attributes outside the allow list",
			markup:  `<file-pond title="x" style="y"><input type="file"></file-pond>`,
			options: Options{"labelIdle": "Drop"},
			absent:  []string{"title", "style", "labelIdle"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, input := newHost(t, tt.markup)
			before := tt.options.Clone()
			synthesizeAttributes(host, input, tt.options)
			for k, v := range tt.want {
				got, ok := input.Attr(k)
				assert.True(t, ok, k)
				assert.Equal(t, v, got, k)
			}
			for _, k := range tt.absent {
				assert.False(t, input.HasAttribute(k), k)
			}
			assert.Equal(t, before, tt.options)
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{"", false},
		{"0", true},
		{false, false},
		{true, true},
		{0, false},
		{int64(3), true},
		{uint8(0), false},
		{0.0, false},
		{[]string{}, true},
		{Options{}, true},
		{(*File)(nil), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truthy(tt.v), "%#v", tt.v)
	}
	assert.Equal(t, "1.5", attributeString(1.5))
	assert.Equal(t, "42", attributeString(42))
	assert.Equal(t, "[object Object]", attributeString(map[string]any{"a": 1}))
	assert.Equal(t, "READY", attributeString(StatusReady))
}

func TestEventTable(t *testing.T) {
	require.Len(t, routes, eventCount)
	channels := Channels()
	require.Len(t, channels, eventCount)
	seen := map[Channel]bool{}
	for _, ch := range channels {
		assert.False(t, seen[ch], "duplicate %s", ch)
		seen[ch] = true

		evt, ok := EventFor(ch)
		require.True(t, ok)
		assert.Equal(t, Namespace+":"+strings.TrimPrefix(string(ch), "on"), evt)
		back, ok := ChannelFor(evt)
		require.True(t, ok)
		assert.Equal(t, ch, back)
		assert.True(t, ch.Valid())
	}
	_, ok := ChannelFor("FilePond:unknown")
	assert.False(t, ok)
	assert.False(t, Channel("onclick").Valid())
}

func TestEventBridge(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	c := New(host, input, lib, Detect(lib))

	got := map[Channel][]Detail{}
	for _, ch := range Channels() {
		ch := ch
		cancel, err := c.On(ch, func(d Detail) { got[ch] = append(got[ch], d) })
		require.NoError(t, err)
		defer cancel()
	}
	require.NoError(t, c.Mount())

	for _, r := range routes {
		assert.Equal(t, 1, host.ListenerCount(r.event), r.event)
	}

	for _, r := range routes {
		detail := map[string]any{"event": r.event}
		input.DispatchEvent(r.event, detail, true)
		detail["event"] = "mutated"
	}
	for _, r := range routes {
		require.Len(t, got[r.channel], 1, r.channel)
		assert.Equal(t, Detail{"event": r.event}, got[r.channel][0])
	}

	// events outside the vocabulary are not listened to
	input.DispatchEvent("FilePond:unknown", nil, true)
	// nil detail is emitted as an empty payload
	input.DispatchEvent("FilePond:init", nil, true)
	assert.Equal(t, Detail{}, got[OnInit][1])
}

func TestAddFileStartScenario(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	c := New(host, input, lib, Detect(lib))
	var got []Detail
	_, err := c.On(OnAddFileStart, func(d Detail) { got = append(got, d) })
	require.NoError(t, err)
	require.NoError(t, c.Mount())

	lib.created[0].fire("addfilestart", map[string]any{"id": "f1"})
	assert.Equal(t, []Detail{{"id": "f1"}}, got)
}

func TestOnUnknownChannel(t *testing.T) {
	host, input := newHost(t, plainHost)
	c := New(host, input, nil, Unsupported)
	_, err := c.On("onclick", func(Detail) {})
	assert.ErrorIs(t, err, ErrUnknownChannel)

	var calls int
	cancel, err := c.On(OnInit, func(Detail) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 1, c.Outputs().Len(OnInit))
	cancel()
	assert.Equal(t, 0, c.Outputs().Len(OnInit))
	assert.Zero(t, calls)
}

func TestUnmount(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	c := New(host, input, lib, Detect(lib))
	require.NoError(t, c.Mount())
	inst := lib.created[0]

	require.NoError(t, c.Unmount())
	assert.Equal(t, Destroyed, c.State())
	assert.Equal(t, 1, inst.destroyed)
	for _, r := range routes {
		assert.Zero(t, host.ListenerCount(r.event), r.event)
	}
	_, ok := c.Methods()
	assert.False(t, ok)

	require.NoError(t, c.Unmount())
	assert.Equal(t, 1, inst.destroyed)
}

func TestLateEventsAreDropped(t *testing.T) {
	el, input := newHost(t, plainHost)
	host := laggingHost{el}
	lib := &fakeLibrary{supported: true}
	c := New(host, input, lib, Detect(lib))
	var calls int
	_, err := c.On(OnRemoveFile, func(Detail) { calls++ })
	require.NoError(t, err)
	require.NoError(t, c.Mount())

	input.DispatchEvent("FilePond:removefile", nil, true)
	require.Equal(t, 1, calls)

	require.NoError(t, c.Unmount())
	assert.NotPanics(t, func() {
		input.DispatchEvent("FilePond:removefile", map[string]any{"id": "late"}, true)
	})
	assert.Equal(t, 1, calls)
}

func TestCreateFailure(t *testing.T) {
	host, input := newHost(t, `<file-pond accept="image/*"><input type="file"></file-pond>`)
	boom := errors.New("boom")
	lib := &fakeLibrary{supported: true, createErr: boom}
	c := New(host, input, lib, Detect(lib))

	err := c.Mount()
	assert.ErrorIs(t, err, ErrCreate)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Active, c.State())
	_, ok := c.Methods()
	assert.False(t, ok)
	for _, r := range routes {
		assert.Zero(t, host.ListenerCount(r.event), r.event)
	}
	accept, _ := input.Attr("accept")
	assert.Equal(t, "image/*", accept)

	require.NoError(t, c.Unmount())
	assert.Equal(t, Destroyed, c.State())
}

func TestDestroyFailure(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	c := New(host, input, lib, Detect(lib))
	require.NoError(t, c.Mount())
	boom := errors.New("boom")
	lib.created[0].destroyErr = boom

	err := c.Unmount()
	assert.ErrorIs(t, err, ErrDestroy)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Destroyed, c.State())
	require.NoError(t, c.Unmount())
	assert.Equal(t, 1, lib.created[0].destroyed)
}

func TestMountErrors(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}

	c := New(host, nil, lib, Detect(lib))
	assert.ErrorIs(t, c.Mount(), ErrNoInput)

	c = New(host, input, nil, Support{ok: true})
	assert.ErrorIs(t, c.Mount(), ErrNoLibrary)

	c = New(host, input, lib, Detect(lib))
	require.NoError(t, c.Mount())
	assert.ErrorIs(t, c.Mount(), ErrMounted)
	assert.Len(t, lib.created, 1)
}

func TestOptionReactor(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	var tick signal.Queue
	opts := signal.New(Options{"maxFiles": 3})
	files := signal.New(Files{"a.png"})
	c := New(host, input, lib, Detect(lib),
		WithOptions(opts), WithFiles(files), WithScheduler(&tick))

	// before the widget exists, changes are dropped
	opts.Set(Options{"maxFiles": 4})
	tick.Flush()

	require.NoError(t, c.Mount())
	inst := lib.created[0]
	assert.Equal(t, Options{"maxFiles": 4, "files": []any{"a.png"}}, inst.initial)
	assert.Empty(t, inst.setOptions)

	opts.Set(Options{"maxFiles": 5, "files": []any{"ignored"}})
	files.Set(Files{"b.png", "c.png"})
	assert.Empty(t, inst.setOptions)
	tick.Flush()
	require.Len(t, inst.setOptions, 1)
	assert.Equal(t, Options{"maxFiles": 5, "files": []any{"b.png", "c.png"}}, inst.setOptions[0])
	assert.Equal(t, Options{"maxFiles": 5, "files": []any{"ignored"}}, opts.Get())

	tick.Flush()
	assert.Len(t, inst.setOptions, 1)

	files.Set(nil)
	tick.Flush()
	require.Len(t, inst.setOptions, 2)
	assert.Equal(t, Options{"maxFiles": 5, "files": nil}, inst.setOptions[1])

	require.NoError(t, c.Unmount())
	opts.Set(Options{})
	tick.Flush()
	assert.Len(t, inst.setOptions, 2)
	assert.Zero(t, opts.Watchers())
}

func TestOptionReactorImmediate(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	opts := signal.New(Options{})
	c := New(host, input, lib, Detect(lib), WithOptions(opts))
	require.NoError(t, c.Mount())

	opts.Set(Options{"allowMultiple": true})
	inst := lib.created[0]
	require.Len(t, inst.setOptions, 1)
	assert.Equal(t, Options{"allowMultiple": true, "files": nil}, inst.setOptions[0])
	assert.Equal(t, inst.setOptions[0], c.Config())
}

func TestMethodsDelegation(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	c := New(host, input, lib, Detect(lib))
	_, ok := c.Methods()
	assert.False(t, ok)

	var added []Detail
	_, err := c.On(OnAddFile, func(d Detail) { added = append(added, d) })
	require.NoError(t, err)
	require.NoError(t, c.Mount())
	pond, ok := c.Methods()
	require.True(t, ok)
	inst := lib.created[0]

	var file any
	pond.AddFile("a.png", nil).Then(func(v any) { file = v }, func(err error) { t.Fatal(err) })
	assert.Equal(t, File{ID: "a.png", Filename: "a.png", Status: FileIdle, Origin: OriginInput}, file)
	assert.Equal(t, []Detail{{"id": "a.png"}}, added)

	var rejectedWith error
	pond.AddFile(42, nil).Then(func(any) { t.Fatal("resolved") }, func(err error) { rejectedWith = err })
	assert.Error(t, rejectedWith)

	viaAdapter, err := pond.GetFiles()
	require.NoError(t, err)
	direct, err := inst.GetFiles()
	require.NoError(t, err)
	assert.Equal(t, direct, viaAdapter)

	status, err := pond.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, status)
	require.NoError(t, pond.Browse())
	assert.Error(t, pond.RemoveFile("missing", nil))
	require.NoError(t, pond.RemoveFile("a.png", nil))
	_, found, err := pond.GetFile("a.png")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Contains(t, inst.calls, call{"browse", nil})
}

func TestManagedMethodsAreNotDelegated(t *testing.T) {
	managed := map[string]bool{}
	for _, name := range ManagedMethods() {
		managed[name] = true
	}
	methods := reflect.TypeOf((*Methods)(nil)).Elem()
	require.Positive(t, methods.NumMethod())
	for i := 0; i < methods.NumMethod(); i++ {
		name := []rune(methods.Method(i).Name)
		name[0] = unicode.ToLower(name[0])
		assert.False(t, managed[string(name)], string(name))
	}
	instance := reflect.TypeOf((*Instance)(nil)).Elem()
	for _, name := range []string{"SetOptions", "Destroy"} {
		_, ok := instance.MethodByName(name)
		assert.True(t, ok, name)
		_, ok = methods.MethodByName(name)
		assert.False(t, ok, name)
	}
}

func TestDetect(t *testing.T) {
	assert.False(t, Detect(nil).Supported())
	assert.False(t, Unsupported.Supported())
	lib := &fakeLibrary{supported: true}
	s := Detect(lib)
	assert.True(t, s.Supported())
	assert.True(t, s.Supported())
	assert.Equal(t, 1, lib.probes)
}

func TestDesiredConfig(t *testing.T) {
	opts := Options{"a": 1}
	got := DesiredConfig(opts, Files{"x"})
	assert.Equal(t, Options{"a": 1, "files": []any{"x"}}, got)
	assert.Equal(t, Options{"a": 1}, opts)
	assert.Equal(t, Options{"files": nil}, DesiredConfig(nil, nil))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "invalid", State(42).String())
	assert.Equal(t, "BUSY", StatusBusy.String())
}

func TestMethodsHideManagedOperations(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	c := New(host, input, lib, Detect(lib))
	require.NoError(t, c.Mount())

	pond, ok := c.Methods()
	require.True(t, ok)
	_, isInstance := pond.(Instance)
	assert.False(t, isInstance)
	_, canDestroy := pond.(interface{ Destroy() error })
	assert.False(t, canDestroy)
	_, canSetOptions := pond.(interface{ SetOptions(Options) error })
	assert.False(t, canSetOptions)

	require.NoError(t, c.Unmount())
	assert.Equal(t, 1, lib.created[0].destroyed)
}

func TestUnmountDuringCreate(t *testing.T) {
	host, input := newHost(t, plainHost)
	lib := &fakeLibrary{supported: true}
	lib.onCreate = func(p *fakeInstance) { p.fire("init", nil) }
	c := New(host, input, lib, Detect(lib))

	var unmountErr error
	var inits int
	_, err := c.On(OnInit, func(Detail) {
		inits++
		unmountErr = c.Unmount()
	})
	require.NoError(t, err)

	require.NoError(t, c.Mount())
	require.NoError(t, unmountErr)
	assert.Equal(t, 1, inits)
	assert.Equal(t, Destroyed, c.State())
	_, ok := c.Methods()
	assert.False(t, ok)
	require.Len(t, lib.created, 1)
	assert.Equal(t, 1, lib.created[0].destroyed)
	for _, r := range routes {
		assert.Zero(t, host.ListenerCount(r.event), r.event)
	}

	require.NoError(t, c.Unmount())
	assert.Equal(t, 1, lib.created[0].destroyed)
	assert.ErrorIs(t, c.Mount(), ErrMounted)
}

func TestUnmountFromCreate(t *testing.T) {
	host, input := newHost(t, plainHost)
	var c *Component
	lib := &fakeLibrary{supported: true}
	lib.onCreate = func(*fakeInstance) { require.NoError(t, c.Unmount()) }
	c = New(host, input, lib, Detect(lib))

	require.NoError(t, c.Mount())
	assert.Equal(t, Destroyed, c.State())
	assert.Equal(t, 1, lib.created[0].destroyed)
}
