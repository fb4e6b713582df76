package dom

import (
	eventloop "github.com/joeycumines/go-eventloop"
)

// Listen registers fn for events of the given type dispatched on e or, for
// bubbling events, on one of its descendants. The returned function removes
// exactly that registration; calling it more than once is harmless.
func (e *Element) Listen(eventType string, fn func(eventType string, detail any)) (remove func()) {
	id := e.target.AddEventListener(eventType, func(evt *eventloop.Event) {
		fn(evt.Type, evt.Detail())
	})
	return func() {
		e.target.RemoveEventListenerByID(eventType, id)
	}
}

// ListenerCount returns the number of listeners registered on e for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return e.target.ListenerCount(eventType)
}

// DispatchEvent dispatches a custom event carrying detail on e. If bubbles is
// true the event then propagates to each ancestor until a listener stops it.
// It returns false if a listener canceled the event.
func (e *Element) DispatchEvent(eventType string, detail any, bubbles bool) bool {
	ce := eventloop.NewCustomEventWithOptions(eventType, detail, bubbles, false)
	evt := ce.EventPtr()
	notCanceled := true
	for el := e; el != nil; el = el.parent {
		if !el.target.DispatchEvent(evt) {
			notCanceled = false
		}
		if !bubbles || evt.IsPropagationStopped() {
			break
		}
	}
	return notCanceled
}
