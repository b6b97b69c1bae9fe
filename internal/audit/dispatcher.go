package audit

import "log"

type Event struct {
	ProviderID string
	Action     string
	Entity     string
	EntityID   *string
	Metadata   any
}

// Dispatcher hands events to a single worker. When the buffer is full the
// event is dropped; audit must never fail a request.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

// NewDispatcher starts the worker. A buffer of zero or less makes Dispatch
// write synchronously.
func NewDispatcher(logger *Logger, buffer int) *Dispatcher {
	d := &Dispatcher{logger: logger}
	if buffer > 0 {
		d.queue = make(chan Event, buffer)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.write(ev)
	}
}

func (d *Dispatcher) write(ev Event) {
	if err := d.logger.Log(ev.ProviderID, ev.Action, ev.Entity, ev.EntityID, ev.Metadata); err != nil {
		log.Println("audit error:", err)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if d.queue == nil {
		d.write(ev)
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}
