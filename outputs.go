package filepond

// OutputHandler is a callback registered on an output channel. Handlers are
// removed by pointer identity.
type OutputHandler struct {
	Fn func(Detail)
}

func NewOutputHandler(fn func(Detail)) *OutputHandler {
	return &OutputHandler{fn}
}

// Outputs holds the handlers of every output channel of a component.
type Outputs struct {
	list map[Channel][]*OutputHandler
}

func newOutputs() *Outputs {
	return &Outputs{make(map[Channel][]*OutputHandler, eventCount)}
}

// Add registers h on ch.
func (o *Outputs) Add(ch Channel, h *OutputHandler) error {
	if !ch.Valid() {
		return ErrUnknownChannel
	}
	o.list[ch] = append(o.list[ch], h)
	return nil
}

// Remove unregisters h from ch.
func (o *Outputs) Remove(ch Channel, h *OutputHandler) {
	hs := o.list[ch]
	for i, v := range hs {
		if v != h {
			continue
		}
		o.list[ch] = append(hs[:i:i], hs[i+1:]...)
		return
	}
}

// Len returns the number of handlers registered on ch.
func (o *Outputs) Len(ch Channel) int {
	return len(o.list[ch])
}

func (o *Outputs) emit(ch Channel, d Detail) {
	hs := append([]*OutputHandler(nil), o.list[ch]...)
	for _, h := range hs {
		h.Fn(d)
	}
}
