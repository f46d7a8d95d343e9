package client

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mo-shahab/duel-pong/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// MaxFrameSize caps inbound frames. Client events are tiny.
	MaxFrameSize = 4096

	DefaultQueueSize = 256
)

var (
	ErrClosed    = errors.New("client closed")
	ErrQueueFull = errors.New("send queue full")
)

// Client is one websocket connection. Outbound frames go through a bounded
// queue drained by WritePump, so Send never blocks the caller.
type Client struct {
	id        string
	conn      *websocket.Conn
	sendQueue chan frame
	format    atomic.Int32

	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

func New(conn *websocket.Conn, queueSize int, logger *slog.Logger) *Client {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	id := uuid.NewString()
	return &Client{
		id:        id,
		conn:      conn,
		sendQueue: make(chan frame, queueSize),
		done:      make(chan struct{}),
		logger:    logger.With("conn", id),
	}
}

func (c *Client) ID() string { return c.id }

// Format is the frame encoding used for replies. It follows whatever the
// client last sent and starts out binary.
func (c *Client) Format() protocol.Format {
	return protocol.Format(c.format.Load())
}

func (c *Client) SetFormat(f protocol.Format) {
	c.format.Store(int32(f))
}

// Send encodes m and queues it. A slow client loses messages rather than
// stalling the room that is sending to it.
func (c *Client) Send(m protocol.Message) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	f := c.Format()
	b, err := protocol.Encode(m, f)
	if err != nil {
		return err
	}

	select {
	case c.sendQueue <- frame{kind: opcode(f), data: b}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops the write pump and closes the socket. Safe to call more than
// once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// ReadLoop reads frames until the socket fails and passes each to handle
// with the format it arrived in. Control frames are handled by gorilla.
func (c *Client) ReadLoop(handle func(data []byte, f protocol.Format)) {
	c.conn.SetReadLimit(MaxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		f := protocol.Binary
		if kind == websocket.TextMessage {
			f = protocol.Text
		}
		handle(data, f)
	}
}

// WritePump drains the send queue and keeps the connection alive with pings.
// It owns every write to the socket and closes it on exit.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case fr := <-c.sendQueue:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(fr.kind, fr.data); err != nil {
				c.logger.Warn("write failed", "error", err)
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

type frame struct {
	kind int
	data []byte
}

func opcode(f protocol.Format) int {
	if f == protocol.Text {
		return websocket.TextMessage
	}
	return websocket.BinaryMessage
}
