package httpapi

import (
	"fmt"
	"net/http"
	"sync"
)

// eventHub fans storage change notifications out to connected event
// streams. The storage callback fires on the mutating goroutine, so
// sends must never block it.
type eventHub struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[chan string]struct{})}
}

// subscribe returns a buffered channel of collection names. The caller
// must call unsubscribe when done.
func (h *eventHub) subscribe() chan string {
	ch := make(chan string, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *eventHub) unsubscribe(ch chan string) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// broadcast delivers the collection name to every subscriber. Slow
// consumers with a full buffer miss the event rather than stall writes.
func (h *eventHub) broadcast(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- collection:
		default:
		}
	}
}

// handleEvents streams storage change notifications as server-sent
// events so dashboards can refresh without polling.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := h.events.subscribe()
	defer h.events.unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case collection := <-ch:
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", collection)
			flusher.Flush()
		}
	}
}
