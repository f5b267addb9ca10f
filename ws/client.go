package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"openchat/domain/event"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var errSlowConsumer = fmt.Errorf("send buffer full, event dropped")

// Client is one live connection. It implements contract.EventSink: Consume
// serializes the event into the buffered send channel and the write pump
// drains it, so delivery never blocks the caller on network I/O. The
// channel preserves per-connection FIFO order.
type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	log       *slog.Logger
	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn, log *slog.Logger, sendBuffer int) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log:  log,
		done: make(chan struct{}),
	}
}

// Consume queues a domain event for this connection. A slow consumer whose
// buffer is full loses the event; the at-most-once contract allows that and
// the client reconciles from the persistent store on reconnect.
func (c *Client) Consume(ctx context.Context, e event.DomainEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(Frame{Event: e.Name(), Data: data})
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case c.send <- frame:
		return nil
	default:
		return errSlowConsumer
	}
}

// sendError pushes a structured error frame back to this connection only.
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(errorPayload{Message: message})
	frame, _ := json.Marshal(Frame{Event: "error", Data: data})
	select {
	case <-c.done:
	case c.send <- frame:
	default:
	}
}

// close makes subsequent Consume calls no-ops and stops the write pump.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// writePump drains the send channel onto the connection and keeps the
// connection alive with periodic pings. Exactly one writePump runs per
// connection; gorilla allows a single concurrent writer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.log.Debug("write failed, dropping connection", "error", err)
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
