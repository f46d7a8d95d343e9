package room

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mo-shahab/duel-pong/game"
	"github.com/mo-shahab/duel-pong/leaderboard"
	"github.com/mo-shahab/duel-pong/protocol"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

const (
	CodeLength = 6

	defaultHostName  = "Player 1"
	defaultGuestName = "Player 2"
)

type entry struct {
	session *Session
	conns   []string
}

// Manager is the room registry: it creates rooms, remembers which room each
// connection sits in, routes events there, and tears rooms down when a
// player goes away. Independent managers share nothing.
type Manager struct {
	mu       sync.RWMutex
	rooms    map[string]*entry
	connRoom map[string]string

	board   *leaderboard.Board
	newCode func() string
	opts    Options
	logger  *slog.Logger
}

type Option func(*Manager)

// WithCodeSource replaces the room code generator. Codes it returns that are
// already in use are discarded.
func WithCodeSource(f func() string) Option {
	return func(m *Manager) { m.newCode = f }
}

func WithOptions(o Options) Option {
	return func(m *Manager) { m.opts = o }
}

func WithLeaderboard(b *leaderboard.Board) Option {
	return func(m *Manager) { m.board = b }
}

func NewManager(logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		rooms:    make(map[string]*entry),
		connRoom: make(map[string]string),
		newCode:  generateCode,
		opts:     DefaultOptions(),
		logger:   logger,
	}
	for _, o := range opts {
		o(m)
	}
	if m.board == nil {
		m.board = leaderboard.New()
	}
	return m
}

// generateCode takes the first six hex digits of a random UUID, upper-cased.
func generateCode() string {
	return strings.ToUpper(uuid.New().String()[:CodeLength])
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Dispatch handles one inbound message from conn. Requests that need an
// answer (create, join, leaderboard) are answered on conn; everything else
// goes through Route.
func (m *Manager) Dispatch(conn Conn, msg protocol.Message) {
	switch msg.Type {
	case protocol.MsgCreateRoom:
		m.CreateRoom(conn, msg.String("displayName"))
	case protocol.MsgJoinRoom:
		if _, err := m.JoinRoom(conn, msg.String("code"), msg.String("displayName")); err != nil {
			m.reply(conn, protocol.Error(err.Error()))
		}
	case protocol.MsgGetLeaderboard:
		m.reply(conn, protocol.Leaderboard(m.Leaderboard(leaderboard.DefaultTop)))
	default:
		m.Route(conn.ID(), msg)
	}
}

// CreateRoom opens a room with conn in the player1 seat and tells conn the
// code. A connection already seated elsewhere leaves that room first.
func (m *Manager) CreateRoom(conn Conn, name string) (string, game.Slot) {
	m.Leave(conn.ID())

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultHostName
	}

	m.mu.Lock()
	code := m.newCode()
	for m.rooms[code] != nil {
		code = m.newCode()
	}
	s := NewSession(code, conn, name, m.board, m.opts, m.logger)
	m.rooms[code] = &entry{session: s, conns: []string{conn.ID()}}
	m.connRoom[conn.ID()] = code
	m.mu.Unlock()

	m.reply(conn, protocol.RoomCreated(code, game.Player1))
	go s.Run()

	m.logger.Info("room created", "room", code, "conn", conn.ID(), "name", name)
	return code, game.Player1
}

// JoinRoom seats conn in the room with the given code. The code is matched
// case-insensitively.
func (m *Manager) JoinRoom(conn Conn, code, name string) (game.Slot, error) {
	m.Leave(conn.ID())

	code = normalizeCode(code)
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultGuestName
	}

	m.mu.RLock()
	e := m.rooms[code]
	m.mu.RUnlock()
	if e == nil {
		m.logger.Debug("join failed", "room", code, "conn", conn.ID(), "error", ErrRoomNotFound)
		return game.NoSlot, ErrRoomNotFound
	}

	slot, err := e.session.Join(conn, name)
	if err != nil {
		m.logger.Debug("join failed", "room", code, "conn", conn.ID(), "error", err)
		return game.NoSlot, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// the host may have left while the join was in flight
	if m.rooms[code] != e {
		return game.NoSlot, ErrRoomNotFound
	}
	e.conns = append(e.conns, conn.ID())
	m.connRoom[conn.ID()] = code
	return slot, nil
}

// Route forwards an in-game event to the room that owns connID. Events from
// connections without a room, and event types rooms do not handle, are
// dropped.
func (m *Manager) Route(connID string, msg protocol.Message) {
	if msg.Type == protocol.MsgLeaveRoom {
		m.Leave(connID)
		return
	}

	s := m.sessionOf(connID)
	if s == nil {
		m.logger.Debug("ignoring event outside a room", "conn", connID, "type", msg.Type)
		return
	}

	switch msg.Type {
	case protocol.MsgPaddleMove:
		x, ok := msg.Float("x")
		if !ok {
			return
		}
		s.post(paddleMove{connID: connID, x: x})
	case protocol.MsgReadyAfterGoal:
		s.post(readyVote{connID: connID})
	case protocol.MsgRematch:
		s.post(rematchVote{connID: connID})
	default:
		m.logger.Debug("ignoring unknown event", "conn", connID, "type", msg.Type)
	}
}

// Leave removes connID's room, if any, and notifies the other player. The
// connection itself stays usable.
func (m *Manager) Leave(connID string) {
	m.mu.Lock()
	code, ok := m.connRoom[connID]
	delete(m.connRoom, connID)
	var e *entry
	if ok {
		e = m.rooms[code]
	}
	if e != nil {
		delete(m.rooms, code)
		for _, id := range e.conns {
			delete(m.connRoom, id)
		}
	}
	m.mu.Unlock()

	if e == nil {
		return
	}
	e.session.Close(connID)
	m.logger.Info("room removed", "room", code, "conn", connID)
}

// Disconnect is Leave for a connection that is gone for good.
func (m *Manager) Disconnect(connID string) {
	m.Leave(connID)
}

// Leaderboard returns the top n players.
func (m *Manager) Leaderboard(n int) []leaderboard.Entry {
	return m.board.Top(n)
}

// Rooms reports how many rooms are open.
func (m *Manager) Rooms() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Session returns the live room with the given code.
func (m *Manager) Session(code string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.rooms[normalizeCode(code)]
	if !ok {
		return nil, false
	}
	return e.session, true
}

// RoomOf returns the code of the room connID sits in.
func (m *Manager) RoomOf(connID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.connRoom[connID]
	return code, ok
}

func (m *Manager) sessionOf(connID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.connRoom[connID]
	if !ok {
		return nil
	}
	e := m.rooms[code]
	if e == nil {
		return nil
	}
	return e.session
}

// Stop closes every room and waits for their goroutines to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.rooms))
	for _, e := range m.rooms {
		sessions = append(sessions, e.session)
	}
	m.rooms = make(map[string]*entry)
	m.connRoom = make(map[string]string)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close("")
		<-s.Done()
	}
	m.logger.Info("room manager stopped", "rooms", len(sessions))
}

func (m *Manager) reply(conn Conn, msg protocol.Message) {
	if err := conn.Send(msg); err != nil {
		m.logger.Warn("dropping reply", "conn", conn.ID(), "type", msg.Type, "error", err)
	}
}
