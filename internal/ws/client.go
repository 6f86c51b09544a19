package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"canvaspilot.io/canvaspilot/internal/config"
	"canvaspilot.io/canvaspilot/internal/pkg/logger"
)

// Client is one websocket connection. Identity is per-frame, not
// per-connection: every command carries its own bearer token, so handle is
// only the last authenticated sender, kept for log lines.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
	handle string

	projects map[int64]struct{}

	writeTimeout time.Duration
	pongTimeout  time.Duration
}

// trySend queues a payload without blocking. Reports false when the client
// is gone or cannot keep up. The mutex orders it against closeSend, which
// may run concurrently from the read pump while a broadcast is in flight.
func (c *Client) trySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// setHandle records the last authenticated sender. The read pump writes it
// per frame while broadcast-pool goroutines read it for log lines.
func (c *Client) setHandle(handle string) {
	c.mu.Lock()
	c.handle = handle
	c.mu.Unlock()
}

func (c *Client) handleName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump consumes frames until the connection dies, dispatching each one.
func (c *Client) readPump(d *Dispatcher) {
	defer func() {
		c.hub.Drop(c)
		c.closeSend()
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.pongTimeout))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		d.Dispatch(c, raw)
	}
}

// writePump drains the send queue and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.pongTimeout * 9 / 10)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Handler returns the gin handler that upgrades GET /ws connections.
func Handler(d *Dispatcher, cfg config.WSConfig) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		// Browser origins are already filtered by the CORS layer.
		CheckOrigin: func(*http.Request) bool { return true },
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			hub:          d.hub,
			conn:         conn,
			send:         make(chan []byte, cfg.SendQueueSize),
			projects:     make(map[int64]struct{}),
			writeTimeout: cfg.WriteTimeout,
			pongTimeout:  cfg.PongTimeout,
		}

		go client.writePump()
		go client.readPump(d)
	}
}
