package market

import (
	"sync"
	"time"

	"github.com/gridmarket/go-compute-market/models"
)

// EventHub fans task status changes out to websocket subscribers. Publish
// never blocks; a slow subscriber just misses events.
type EventHub struct {
	lk   sync.Mutex
	subs map[chan models.TaskEvent]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{
		subs: make(map[chan models.TaskEvent]struct{}),
	}
}

func (h *EventHub) Subscribe() chan models.TaskEvent {
	ch := make(chan models.TaskEvent, 16)
	h.lk.Lock()
	h.subs[ch] = struct{}{}
	h.lk.Unlock()
	return ch
}

func (h *EventHub) Unsubscribe(ch chan models.TaskEvent) {
	h.lk.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.lk.Unlock()
}

func (h *EventHub) Publish(taskId, status string) {
	event := models.TaskEvent{
		TaskId:    taskId,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	h.lk.Lock()
	defer h.lk.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
