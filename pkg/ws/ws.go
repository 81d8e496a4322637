// Package ws serves one WebSocket session per connection using
// gorilla/websocket.
//
//	conn, err := ws.Upgrade(w, r)
//	if err != nil { return }
//	conn.Serve(r.Context(), func(msg []byte) {
//	    conn.SendJSON(reply(msg))
//	})
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/megamart/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

// ErrClosed is returned when sending on a closed connection.
var ErrClosed = errors.New("ws: connection closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Conn is one client connection. Writes go through a buffered queue drained
// by a single writer goroutine, so Send is safe from any goroutine.
type Conn struct {
	ID string

	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// Upgrade switches the request to the WebSocket protocol. On failure the
// upgrader has already answered the client.
func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("ws: upgrade failed", "error", err)
		return nil, fmt.Errorf("ws: upgrade: %w", err)
	}
	return &Conn{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}, nil
}

// Serve pumps inbound messages to onMessage until the client disconnects,
// ctx ends or Close is called. onMessage runs on the reading goroutine.
// A normal close returns nil.
func (c *Conn) Serve(ctx context.Context, onMessage func(msg []byte)) error {
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump()
	}()

	stop := context.AfterFunc(ctx, c.Close)
	defer stop()

	err := c.readPump(onMessage)
	c.Close()
	<-writerDone
	return err
}

// Send queues a text frame. The frame is dropped when the client is too far
// behind.
func (c *Conn) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrClosed
	default:
		logger.Warn("ws: send buffer full, dropping frame", "conn", c.ID)
		return nil
	}
}

func (c *Conn) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ws: marshal: %w", err)
	}
	return c.Send(data)
}

// Close flushes queued frames, sends a close frame and ends Serve.
func (c *Conn) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Conn) Done() <-chan struct{} { return c.done }

func (c *Conn) readPump(onMessage func([]byte)) error {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}
			return fmt.Errorf("ws: read: %w", err)
		}
		onMessage(msg)
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			c.flush()
			c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")) //nolint:errcheck
			return
		}
	}
}

func (c *Conn) flush() {
	for {
		select {
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Conn) write(kind int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
	return c.conn.WriteMessage(kind, data)
}
