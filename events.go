package filepond

// Namespace prefixes every DOM event type the widget dispatches.
const Namespace = "FilePond"

// Channel names an output of the component. There is one channel per widget
// event.
type Channel string

const (
	OnInit                Channel = "oninit"
	OnWarning             Channel = "onwarning"
	OnError               Channel = "onerror"
	OnInitFile            Channel = "oninitfile"
	OnAddFileStart        Channel = "onaddfilestart"
	OnAddFileProgress     Channel = "onaddfileprogress"
	OnAddFile             Channel = "onaddfile"
	OnProcessFileStart    Channel = "onprocessfilestart"
	OnProcessFileProgress Channel = "onprocessfileprogress"
	OnProcessFileAbort    Channel = "onprocessfileabort"
	OnProcessFileRevert   Channel = "onprocessfilerevert"
	OnProcessFile         Channel = "onprocessfile"
	OnProcessFiles        Channel = "onprocessfiles"
	OnRemoveFile          Channel = "onremovefile"
	OnPrepareFile         Channel = "onpreparefile"
	OnUpdateFiles         Channel = "onupdatefiles"
	OnActivateFile        Channel = "onactivatefile"
	OnReorderFiles        Channel = "onreorderfiles"
)

// eventCount is the size of the widget event vocabulary.
const eventCount = 18

type route struct {
	event   string
	channel Channel
}

var routes = [...]route{
	{Namespace + ":init", OnInit},
	{Namespace + ":warning", OnWarning},
	{Namespace + ":error", OnError},
	{Namespace + ":initfile", OnInitFile},
	{Namespace + ":addfilestart", OnAddFileStart},
	{Namespace + ":addfileprogress", OnAddFileProgress},
	{Namespace + ":addfile", OnAddFile},
	{Namespace + ":processfilestart", OnProcessFileStart},
	{Namespace + ":processfileprogress", OnProcessFileProgress},
	{Namespace + ":processfileabort", OnProcessFileAbort},
	{Namespace + ":processfilerevert", OnProcessFileRevert},
	{Namespace + ":processfile", OnProcessFile},
	{Namespace + ":processfiles", OnProcessFiles},
	{Namespace + ":removefile", OnRemoveFile},
	{Namespace + ":preparefile", OnPrepareFile},
	{Namespace + ":updatefiles", OnUpdateFiles},
	{Namespace + ":activatefile", OnActivateFile},
	{Namespace + ":reorderfiles", OnReorderFiles},
}

// Fails to compile when the table and the vocabulary size disagree.
var _ = [1]struct{}{}[len(routes)-eventCount]

var (
	channelByEvent = make(map[string]Channel, eventCount)
	eventByChannel = make(map[Channel]string, eventCount)
)

func init() {
	for _, r := range routes {
		if _, dup := channelByEvent[r.event]; dup {
			panic("filepond: duplicate event " + r.event)
		}
		if _, dup := eventByChannel[r.channel]; dup {
			panic("filepond: duplicate channel " + string(r.channel))
		}
		channelByEvent[r.event] = r.channel
		eventByChannel[r.channel] = r.event
	}
}

// Channels returns the output channels, in vocabulary order.
func Channels() []Channel {
	l := make([]Channel, 0, len(routes))
	for _, r := range routes {
		l = append(l, r.channel)
	}
	return l
}

// ChannelFor returns the channel fed by the given DOM event type.
func ChannelFor(eventType string) (Channel, bool) {
	ch, ok := channelByEvent[eventType]
	return ch, ok
}

// EventFor returns the DOM event type feeding ch.
func EventFor(ch Channel) (string, bool) {
	evt, ok := eventByChannel[ch]
	return evt, ok
}

// Valid reports whether ch belongs to the vocabulary.
func (ch Channel) Valid() bool {
	_, ok := eventByChannel[ch]
	return ok
}

// bridge holds the host subscriptions of one mount.
type bridge struct {
	removers []func()
}

func subscribe(host Host, handle func(eventType string, detail any)) *bridge {
	b := &bridge{removers: make([]func(), 0, len(routes))}
	for _, r := range routes {
		b.removers = append(b.removers, host.Listen(r.event, handle))
	}
	return b
}

func (b *bridge) unsubscribe() {
	for _, remove := range b.removers {
		remove()
	}
	b.removers = nil
}
