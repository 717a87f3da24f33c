// Package realtime pushes live dashboards to owner devices over websockets.
//
// Every connected client keeps its own analytics.Filter. Whenever a client
// connects, changes its filter, or any collection changes, the hub loads one
// fresh snapshot and recomputes the dashboard for the affected clients.
// Nothing is cached between pushes.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"salonpos/internal/analytics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	TypeDashboard = "dashboard"
	TypeError     = "error"

	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second
	pushTimeout  = 15 * time.Second
	sendBuffer   = 16
	maxFrameSize = 4096
)

// EngineSource builds an analytics engine over a fresh snapshot.
type EngineSource interface {
	Engine(ctx context.Context) (*analytics.Engine, error)
}

// Message is the envelope written to clients.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Coleccion string    `json:"coleccion,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

type Hub struct {
	source     EngineSource
	upgrader   websocket.Upgrader
	register   chan *Client
	unregister chan *Client
	notify     chan string
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub(source EngineSource) *Hub {
	return &Hub{
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// LAN devices connect from arbitrary origins; the route is behind JWT auth
			CheckOrigin: func(*http.Request) bool { return true },
		},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		notify:     make(chan string, 1),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// Run owns the client set until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				c.close()
			}
			h.mu.Unlock()
			log.Info().Msg("realtime: hub stopped")
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			log.Debug().Str("client", c.id).Int("clients", n).Msg("realtime: client registered")
			go h.push("", c)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.close()
			}
			h.mu.Unlock()
			log.Debug().Str("client", c.id).Msg("realtime: client unregistered")

		case coleccion := <-h.notify:
			go h.push(coleccion, h.snapshotClients()...)
		}
	}
}

// Notify schedules a refresh of every client. Bursts collapse into a single
// pending refresh.
func (h *Hub) Notify(coleccion string) {
	select {
	case h.notify <- coleccion:
	default:
	}
}

// Publish lets the hub stand in for the change feed when redis is absent.
func (h *Hub) Publish(_ context.Context, coleccion string) { h.Notify(coleccion) }

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) snapshotClients() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

// push computes one dashboard per client from a single snapshot.
func (h *Hub) push(coleccion string, clients ...*Client) {
	if len(clients) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	engine, err := h.source.Engine(ctx)
	if err != nil {
		log.Error().Err(err).Msg("realtime: snapshot failed")
		for _, c := range clients {
			c.enqueue(Message{Type: TypeError, Timestamp: time.Now(), Error: "No se pudo cargar el tablero"})
		}
		return
	}
	for _, c := range clients {
		d := engine.Dashboard(c.Filter())
		c.enqueue(Message{Type: TypeDashboard, Timestamp: time.Now(), Coleccion: coleccion, Data: d})
	}
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("realtime: upgrade failed")
		return
	}
	c := &Client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// ── Client ───────────────────────────────────────────────────────────────────

type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	mu     sync.Mutex
	filter analytics.Filter
	send   chan []byte
	closed bool
}

func (c *Client) Filter() analytics.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Client) setFilter(f analytics.Filter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

// enqueue drops the message when the client is not draining its buffer; the
// next change will bring it up to date.
func (c *Client) enqueue(m Message) {
	b, err := json.Marshal(m)
	if err != nil {
		log.Error().Err(err).Msg("realtime: marshal message")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
		log.Warn().Str("client", c.id).Msg("realtime: send buffer full, dropping update")
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump accepts filter updates. Each text frame is a JSON analytics.Filter.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client", c.id).Msg("realtime: read failed")
			}
			return
		}
		var f analytics.Filter
		if err := json.Unmarshal(raw, &f); err != nil {
			c.enqueue(Message{Type: TypeError, Timestamp: time.Now(), Error: "Filtro invalido"})
			continue
		}
		c.setFilter(f)
		go c.hub.push("", c)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
