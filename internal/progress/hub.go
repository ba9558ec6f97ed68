// Package progress broadcasts render progress to websocket clients.
//
// A Hub keeps only the latest event per client: a slow client skips
// intermediate updates instead of delaying the render.
package progress

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// writeTimeout bounds a single websocket write.
const writeTimeout = 5 * time.Second

// Event is one progress update, sent to clients as JSON.
type Event struct {
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Stage string `json:"stage,omitempty"`
}

// finished reports whether the event marks completion.
func (e Event) finished() bool {
	return e.Total > 0 && e.Done >= e.Total
}

type subscriber struct {
	events chan Event
}

// Hub fans progress events out to websocket clients.
// It implements http.Handler; each request is upgraded to a websocket that
// receives the most recent event first and every later one it can keep
// up with.
//
// Thread safety: Hub is safe for concurrent use.
type Hub struct {
	log     *slog.Logger
	origins []string

	mu        sync.Mutex
	subs      map[*subscriber]struct{}
	last      Event
	published bool
	closed    bool
}

// NewHub returns an open hub. A nil logger discards log output.
// origins lists the accepted cross-origin host patterns; see
// websocket.AcceptOptions.OriginPatterns.
func NewHub(log *slog.Logger, origins ...string) *Hub {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		log:     log,
		origins: origins,
		subs:    make(map[*subscriber]struct{}),
	}
}

// Publish sends e to every connected client, replacing any event a client
// has not picked up yet. Publish never blocks on clients.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.last = e
	h.published = true
	for s := range h.subs {
		offer(s.events, e)
	}
}

// Report publishes a render stage event. It has the shape of
// orbitrace.ProgressFunc.
func (h *Hub) Report(done, total int) {
	h.Publish(Event{Done: done, Total: total, Stage: "accumulate"})
}

// offer puts e into a one-slot channel, dropping a stale event.
// The caller holds the hub lock, so it is the only sender.
func offer(ch chan Event, e Event) {
	select {
	case ch <- e:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- e
}

// clients returns the number of connected clients.
func (h *Hub) clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects all clients after they have received the last event.
// Close is safe to call multiple times.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.log.Info("progress: hub closed",
		"clients", len(h.subs),
		"finished", h.published && h.last.finished())
	for s := range h.subs {
		close(s.events)
		delete(h.subs, s)
	}
}

func (h *Hub) subscribe() *subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	s := &subscriber{events: make(chan Event, 1)}
	if h.published {
		s.events <- h.last
	}
	h.subs[s] = struct{}{}
	return s
}

func (h *Hub) unsubscribe(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, s)
}

// ServeHTTP upgrades the request to a websocket and streams events.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.log.Debug("progress: accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer func() { _ = c.CloseNow() }()

	s := h.subscribe()
	if s == nil {
		_ = c.Close(websocket.StatusGoingAway, "render finished")
		return
	}
	defer h.unsubscribe(s)

	h.log.Debug("progress: client connected", "remote", r.RemoteAddr)

	// Clients never send; CloseRead handles control frames and cancels
	// ctx when the peer goes away.
	ctx := c.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			h.log.Debug("progress: client gone", "remote", r.RemoteAddr)
			return
		case e, ok := <-s.events:
			if !ok {
				_ = c.Close(websocket.StatusNormalClosure, "render finished")
				return
			}
			if err := write(ctx, c, e); err != nil {
				h.log.Debug("progress: write failed", "remote", r.RemoteAddr, "err", err)
				return
			}
		}
	}
}

func write(ctx context.Context, c *websocket.Conn, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, c, e)
}

// NewServer returns an HTTP server exposing h at /progress.
func NewServer(addr string, h *Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/progress", h)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
