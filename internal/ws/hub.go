package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StreamEvent is a replayed event from the persistent feed.
type StreamEvent struct {
	Channel   string
	Sequence  int64
	Event     map[string]interface{}
	Timestamp time.Time
}

// FeedProvider supplies sequence tracking and replay for reconnecting
// dashboards.
type FeedProvider interface {
	GetLastSequence(channel, connectionID string) (int64, error)
	AcknowledgeSequence(channel, connectionID string, sequence int64) error
	ReplayEvents(channel string, sinceSeq int64, limit int64) ([]StreamEvent, error)
}

// Hub fans resource-change events out to connected admin dashboards. Every
// connection is pinned to its owner's channel; there is no cross-user
// subscription.
type Hub struct {
	mu      sync.RWMutex
	conns   map[*Conn]bool
	subs    map[string]map[*Conn]bool // channel -> connections
	publish chan Event
	log     *zap.Logger
	feed    FeedProvider
}

// Conn is one dashboard connection.
type Conn struct {
	ws     *websocket.Conn
	send   chan []byte
	hub    *Hub
	userID int64
}

// Event is a message bound for a channel.
type Event struct {
	Channel string
	Message map[string]interface{}
}

// UserChannel names the event channel owned by a user.
func UserChannel(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// NewHub creates a hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		conns:   make(map[*Conn]bool),
		subs:    make(map[string]map[*Conn]bool),
		publish: make(chan Event, 256),
		log:     log,
	}
}

// SetFeedProvider wires the replay source.
func (h *Hub) SetFeedProvider(provider FeedProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.feed = provider
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for event := range h.publish {
		h.mu.RLock()
		conns := h.subs[event.Channel]
		h.mu.RUnlock()

		if conns != nil {
			msg, _ := json.Marshal(event.Message)
			for conn := range conns {
				select {
				case conn.send <- msg:
				default:
					h.unregister(conn)
				}
			}
		}
	}
}

// Register adds a connection and pins it to its owner's channel.
func (h *Hub) Register(conn *Conn) {
	channel := UserChannel(conn.userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[*Conn]bool)
	}
	h.subs[channel][conn] = true
}

func (h *Hub) unregister(conn *Conn) {
	channel := UserChannel(conn.userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(conn.send)
		if subs := h.subs[channel]; subs != nil {
			delete(subs, conn)
			if len(subs) == 0 {
				delete(h.subs, channel)
			}
		}
	}
}

// Publish sends an event to all connections on a channel.
func (h *Hub) Publish(channel string, message map[string]interface{}) {
	select {
	case h.publish <- Event{Channel: channel, Message: message}:
	default:
		h.log.Warn("Hub publish channel full, dropping event", zap.String("channel", channel))
	}
}

// NewConn wraps a websocket for the given user.
func NewConn(ws *websocket.Conn, hub *Hub, userID int64) *Conn {
	return &Conn{
		ws:     ws,
		send:   make(chan []byte, 256),
		hub:    hub,
		userID: userID,
	}
}

// ReadPump handles reading from the WebSocket connection
func (c *Conn) ReadPump() {
	defer func() {
		c.hub.unregister(c)
		c.ws.Close()
	}()

	c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		var msg map[string]interface{}
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.log.Warn("Failed to parse message", zap.Error(err))
			continue
		}

		c.handleMessage(msg)
	}
}

// WritePump handles writing to the WebSocket connection
func (c *Conn) WritePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.ws.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Conn) handleMessage(msg map[string]interface{}) {
	msgType, _ := msg["type"].(string)

	switch msgType {
	case "ack":
		seq, _ := msg["seq"].(float64)
		if seq > 0 {
			c.hub.Acknowledge(c, int64(seq))
		}
	case "resume":
		since, _ := msg["since"].(float64)
		if since >= 0 {
			c.hub.Resume(c, int64(since))
		}
	case "ping":
		c.sendAck("pong")
	default:
		c.hub.log.Warn("Unknown message type", zap.String("type", msgType))
	}
}

func (c *Conn) sendAck(msgType string) {
	msg, _ := json.Marshal(map[string]interface{}{"type": "ack", "ack": msgType})
	select {
	case c.send <- msg:
	default:
	}
}

// Acknowledge records the highest sequence the dashboard has processed.
func (h *Hub) Acknowledge(conn *Conn, sequence int64) {
	if h.feed == nil {
		return
	}
	channel := UserChannel(conn.userID)
	connectionID := fmt.Sprintf("%d", conn.userID)
	if err := h.feed.AcknowledgeSequence(channel, connectionID, sequence); err != nil {
		h.log.Warn("Failed to acknowledge sequence",
			zap.String("channel", channel),
			zap.Int64("sequence", sequence),
			zap.Error(err),
		)
	}
}

// Resume replays events the connection missed since the given sequence.
func (h *Hub) Resume(conn *Conn, sinceSeq int64) {
	if h.feed == nil {
		h.log.Warn("Feed provider not set, cannot resume")
		return
	}

	channel := UserChannel(conn.userID)
	events, err := h.feed.ReplayEvents(channel, sinceSeq, 100)
	if err != nil {
		h.log.Error("Failed to replay events",
			zap.String("channel", channel),
			zap.Int64("since", sinceSeq),
			zap.Error(err),
		)
		return
	}

	for _, event := range events {
		msg := map[string]interface{}{
			"type":    "event",
			"channel": event.Channel,
			"seq":     event.Sequence,
			"data":    event.Event,
		}
		msgBytes, _ := json.Marshal(msg)
		select {
		case conn.send <- msgBytes:
		default:
			h.log.Warn("Failed to send replayed event, connection buffer full")
			return
		}
	}

	h.log.Info("Resumed events",
		zap.String("channel", channel),
		zap.Int64("since", sinceSeq),
		zap.Int("count", len(events)),
	)
}
