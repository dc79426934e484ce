package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second

	sendBufferSize = 128
)

var errConnectionClosed = errors.New("realtime: connection closed")

// Connection wraps a websocket and serializes outbound writes through a
// buffered channel. One Connection exists per live session; it is safe for
// concurrent use.
type Connection struct {
	ID     string
	UserID string

	ws     *websocket.Conn
	send   chan []byte
	once   sync.Once
	closed chan struct{}
}

// NewConnection constructs a Connection for the given authenticated user.
func NewConnection(userID string, ws *websocket.Conn) *Connection {
	return &Connection{
		ID:     uuid.NewString(),
		UserID: userID,
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		closed: make(chan struct{}),
	}
}

// Start launches the write loop. Call exactly once per connection.
func (c *Connection) Start() {
	go c.writeLoop()
}

// Send enqueues payload for delivery. A full buffer means the client cannot
// keep up; the connection is closed to keep backpressure bounded.
// Racing a concurrent Close at worst enqueues a payload the exiting write
// loop never drains; the send channel itself is never closed.
func (c *Connection) Send(payload []byte) error {
	if c.Closed() {
		return errConnectionClosed
	}
	select {
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return errors.New("realtime: send buffer exceeded")
	}
}

// Close terminates the connection and stops the write loop. Idempotent.
// Shutdown is signaled through the closed channel only so that a concurrent
// Send can never hit a closed send channel.
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.closed)
		if c.ws != nil {
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
			_ = c.ws.Close()
		}
	})
}

// Closed reports whether Close has been called.
func (c *Connection) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed:
			return
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.writePing(); err != nil {
				return
			}
		}
	}
}

func (c *Connection) writeMessage(payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) writePing() error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}
