package sse

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event is one message on the stream. IDs are decimal sequence numbers
// assigned by the hub, so clients can resume with Last-Event-ID.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`

	seq uint64
}

// Client is a connected stream. EventChannel is closed when the client is
// unregistered or the hub stops.
type Client struct {
	ID           string
	EventChannel chan Event

	types  map[string]bool // nil accepts every type
	resume uint64
}

func (c *Client) wants(eventType string) bool {
	return c.types == nil || c.types[eventType]
}

// HubOptions tunes buffering. Zero fields use the package defaults.
type HubOptions struct {
	BroadcastBuffer int
	ClientBuffer    int
	ReplaySize      int
}

func (o HubOptions) withDefaults() HubOptions {
	if o.BroadcastBuffer <= 0 {
		o.BroadcastBuffer = BroadcastBufferSize
	}
	if o.ClientBuffer <= 0 {
		o.ClientBuffer = ClientEventBuffer
	}
	if o.ReplaySize <= 0 {
		o.ReplaySize = ReplayBufferSize
	}
	return o
}

// Hub fans events out to every registered client
type Hub struct {
	opts HubOptions

	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	dropped    atomic.Int64

	mu      sync.RWMutex
	clients map[string]*Client

	// owned by run
	seq    uint64
	recent []Event
}

// NewHub creates a hub; call Start before registering clients
func NewHub(opts HubOptions) *Hub {
	opts = opts.withDefaults()
	return &Hub{
		opts:       opts,
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, opts.BroadcastBuffer),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
		recent:     make([]Event, 0, opts.ReplaySize),
	}
}

// Start launches the broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel. It is safe to call
// more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, c := range h.clients {
			close(c.EventChannel)
			delete(h.clients, id)
		}
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			h.mu.Unlock()
			h.replay(c)

		case id := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[id]; ok {
				close(c.EventChannel)
				delete(h.clients, id)
			}
			h.mu.Unlock()

		case e := <-h.broadcast:
			h.seq++
			e.seq = h.seq
			e.ID = strconv.FormatUint(h.seq, 10)
			h.remember(e)

			h.mu.RLock()
			for _, c := range h.clients {
				if c.wants(e.Type) {
					h.deliver(c, e)
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// deliver never blocks: a slow client misses events instead of stalling
// the hub
func (h *Hub) deliver(c *Client, e Event) {
	select {
	case c.EventChannel <- e:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hub) remember(e Event) {
	if len(h.recent) == h.opts.ReplaySize {
		copy(h.recent, h.recent[1:])
		h.recent = h.recent[:len(h.recent)-1]
	}
	h.recent = append(h.recent, e)
}

func (h *Hub) replay(c *Client) {
	if c.resume == 0 {
		return
	}
	for _, e := range h.recent {
		if e.seq > c.resume && c.wants(e.Type) {
			h.deliver(c, e)
		}
	}
}

// Register adds a client. eventTypes limits the stream to those types;
// empty means all. A non-empty lastEventID replays buffered events newer
// than it.
func (h *Hub) Register(eventTypes []string, lastEventID string) *Client {
	c := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, h.opts.ClientBuffer),
	}
	if len(eventTypes) > 0 {
		c.types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			c.types[strings.TrimSpace(t)] = true
		}
	}
	if seq, err := strconv.ParseUint(lastEventID, 10, 64); err == nil {
		c.resume = seq
	}

	select {
	case h.register <- c:
	case <-h.shutdown:
		close(c.EventChannel)
	}
	return c
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client
func (h *Hub) Broadcast(eventType string, payload any) {
	e := Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- e:
	default:
		h.dropped.Add(1)
		slog.Warn(LogMsgEventDropped, "type", eventType)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many deliveries were skipped because a buffer was full
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// FormatSSEMessage renders e in text/event-stream framing. Events without
// an ID, such as keepalives, omit the id line so they do not move the
// client's resume point.
func FormatSSEMessage(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if e.ID != "" {
		b.WriteString("id: " + e.ID + "\n")
	}
	b.WriteString("event: " + e.Type + "\n")
	b.WriteString("data: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String()), nil
}
