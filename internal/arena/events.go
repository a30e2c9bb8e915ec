package arena

import "github.com/go-gl/mathgl/mgl64"

type EventType int

const (
	EventJump EventType = iota
	EventLanding
	EventReset
)

type Event struct {
	Type     EventType
	Position mgl64.Vec3
	// Speed is the impact speed for landings and the horizontal speed
	// otherwise.
	Speed float64
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the ticking goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
