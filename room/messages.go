package room

import (
	"github.com/mo-shahab/duel-pong/game"
	"github.com/mo-shahab/duel-pong/protocol"
)

// Conn is the room's view of a client connection. Send must not block: the
// room goroutine calls it on every tick.
type Conn interface {
	ID() string
	Send(protocol.Message) error
}

// Inbox commands. Everything a room does happens on its own goroutine in
// response to one of these or to one of its timers.

// join takes the second seat; the result comes back on reply.
type join struct {
	conn  Conn
	name  string
	reply chan<- joinResult
}

type joinResult struct {
	slot game.Slot
	err  error
}

type paddleMove struct {
	connID string
	x      float64
}

type readyVote struct {
	connID string
}

type rematchVote struct {
	connID string
}
