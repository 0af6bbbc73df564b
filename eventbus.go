package metaecs

import "reflect"

// EventBus delivers metasystem lifecycle events to subscribers synchronously,
// in subscription order. The zero value is ready to use.
type EventBus struct {
	handlers map[reflect.Type][]any
}

// Subscribe registers handler for events of type T and returns a function
// that removes it again.
func Subscribe[T any](bus *EventBus, handler func(T)) (unsubscribe func()) {
	t := reflect.TypeFor[T]()
	if bus.handlers == nil {
		bus.handlers = make(map[reflect.Type][]any)
	}
	entry := &handler
	bus.handlers[t] = append(bus.handlers[t], entry)
	return func() {
		hs := bus.handlers[t]
		for i, h := range hs {
			if h == any(entry) {
				bus.handlers[t] = append(hs[:i:i], hs[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every handler subscribed to T with event. Publishing to a nil
// bus, or a type nobody subscribed to, does nothing.
func Publish[T any](bus *EventBus, event T) {
	if bus == nil || len(bus.handlers) == 0 {
		return
	}
	for _, h := range bus.handlers[reflect.TypeFor[T]()] {
		(*h.(*func(T)))(event)
	}
}

// Subscribed reports whether any handler is registered for T.
func Subscribed[T any](bus *EventBus) bool {
	return bus != nil && len(bus.handlers[reflect.TypeFor[T]()]) > 0
}
