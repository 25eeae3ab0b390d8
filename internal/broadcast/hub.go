package broadcast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"focusportal/internal/domain/models"
)

const (
	subscriptionBuffer = 256
	writeWait          = 10 * time.Second
)

type topicEvent struct {
	topic string
	event models.Event
}

// Hub fans broadcast events out to in-process subscriptions and to
// attached websocket clients, keyed by topic. Websocket writes happen
// only on the Run goroutine, which keeps a single writer per
// connection.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	conns  map[string]map[*websocket.Conn]bool
	events chan topicEvent

	register   chan topicConn
	unregister chan topicConn

	logger *slog.Logger
}

type topicConn struct {
	topic string
	conn  *websocket.Conn
}

// NewHub creates a hub. Call Run in a goroutine before publishing.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:       make(map[string]map[*Subscription]struct{}),
		conns:      make(map[string]map[*websocket.Conn]bool),
		events:     make(chan topicEvent, subscriptionBuffer),
		register:   make(chan topicConn),
		unregister: make(chan topicConn),
		logger:     logger,
	}
}

// Run dispatches published events and websocket membership changes
// until the hub's event channel is closed.
func (h *Hub) Run() {
	for {
		select {
		case tc := <-h.register:
			h.mu.Lock()
			if h.conns[tc.topic] == nil {
				h.conns[tc.topic] = make(map[*websocket.Conn]bool)
			}
			h.conns[tc.topic][tc.conn] = true
			h.mu.Unlock()

		case tc := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[tc.topic]; ok {
				if _, ok := conns[tc.conn]; ok {
					delete(conns, tc.conn)
					tc.conn.Close()
				}
			}
			h.mu.Unlock()

		case te := <-h.events:
			h.dispatch(te.topic, te.event)
		}
	}
}

func (h *Hub) dispatch(topic string, event models.Event) {
	h.mu.RLock()
	subs := h.subs[topic]
	for sub := range subs {
		select {
		case sub.ch <- event:
		default:
			// Subscriber is not keeping up; drop rather than block.
			h.logger.Debug("dropped event for slow subscriber", "topic", topic, "event", event.Name)
		}
	}

	var dead []*websocket.Conn
	for conn := range h.conns[topic] {
		// A stalled client must not hold up dispatch for every other
		// topic; the deadline turns it into a write error so the
		// connection is pruned below.
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("websocket write failed", "topic", topic, "error", err)
			dead = append(dead, conn)
		}
	}
	h.mu.RUnlock()

	// Drop dead connections inline; DetachConn would block the Run
	// goroutine on its own unregister channel.
	if len(dead) > 0 {
		h.mu.Lock()
		for _, conn := range dead {
			if conns, ok := h.conns[topic]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					conn.Close()
				}
			}
		}
		h.mu.Unlock()
	}
}

// Publish implements Broker. It never blocks; if the hub's event
// buffer is full the event is dropped.
func (h *Hub) Publish(topic string, event models.Event) {
	select {
	case h.events <- topicEvent{topic: topic, event: event}:
	default:
		h.logger.Warn("event buffer full, dropping broadcast", "topic", topic, "event", event.Name)
	}
}

// Subscribe implements Broker.
func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan models.Event, subscriptionBuffer)
	sub := &Subscription{C: ch, topic: topic, ch: ch, hub: h}

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if subs, ok := h.subs[sub.topic]; ok {
		if _, ok := subs[sub]; ok {
			delete(subs, sub)
			close(sub.ch)
		}
	}
	h.mu.Unlock()
}

// AttachConn adds a websocket client to a topic.
func (h *Hub) AttachConn(topic string, conn *websocket.Conn) {
	h.register <- topicConn{topic: topic, conn: conn}
}

// DetachConn removes a websocket client and closes the connection.
func (h *Hub) DetachConn(topic string, conn *websocket.Conn) {
	h.unregister <- topicConn{topic: topic, conn: conn}
}
