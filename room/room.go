package room

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mo-shahab/duel-pong/ball"
	"github.com/mo-shahab/duel-pong/game"
	"github.com/mo-shahab/duel-pong/leaderboard"
	"github.com/mo-shahab/duel-pong/protocol"
)

const (
	MaxPlayers     = 2
	CountdownStart = 3
)

// Options tunes the timers of every room a Manager creates.
type Options struct {
	TickInterval  time.Duration
	CountdownStep time.Duration
	InboxSize     int
	// Jitter seeds serve angles; nil means a time-seeded source per room.
	Jitter ball.Jitter
}

func DefaultOptions() Options {
	return Options{
		TickInterval:  time.Second / 60,
		CountdownStep: time.Second,
		InboxSize:     64,
	}
}

type seat struct {
	conn Conn
	name string
}

// Session is one room: two seats, a match, and the goroutine that drives it.
//
// All room state is owned by Run. Other goroutines only talk to it through
// the inbox, so inbound events and ticks for one room are handled strictly
// one at a time and in arrival order.
type Session struct {
	Code string

	inbox     chan any
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	leaver    string

	seats        []seat
	match        *game.Match
	rematchVotes int
	count        int

	ticker    *time.Ticker
	countdown *time.Ticker

	board  *leaderboard.Board
	opts   Options
	logger *slog.Logger
}

// NewSession creates a waiting room with host in the first seat. The caller
// starts it with go s.Run().
func NewSession(code string, host Conn, hostName string, board *leaderboard.Board, opts Options, logger *slog.Logger) *Session {
	if opts.InboxSize <= 0 {
		opts.InboxSize = DefaultOptions().InboxSize
	}
	return &Session{
		Code:   code,
		inbox:  make(chan any, opts.InboxSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		seats:  []seat{{conn: host, name: hostName}},
		match:  game.NewMatch(opts.Jitter),
		board:  board,
		opts:   opts,
		logger: logger.With("room", code),
	}
}

// Done is closed once the room goroutine has exited and both timers are
// stopped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close tears the room down. leaverID is the connection that left; everyone
// else is told the match is over. Safe to call more than once.
func (s *Session) Close(leaverID string) {
	s.closeOnce.Do(func() {
		s.leaver = leaverID
		close(s.quit)
	})
}

// Join asks the room for its second seat.
func (s *Session) Join(conn Conn, name string) (game.Slot, error) {
	reply := make(chan joinResult, 1)
	if !s.post(join{conn: conn, name: name, reply: reply}) {
		return game.NoSlot, ErrRoomNotFound
	}
	select {
	case res := <-reply:
		return res.slot, res.err
	case <-s.done:
		return game.NoSlot, ErrRoomNotFound
	}
}

// post delivers cmd to the room unless it has already shut down.
func (s *Session) post(cmd any) bool {
	select {
	case s.inbox <- cmd:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) Run() {
	defer close(s.done)
	defer s.stopCountdown()
	defer s.stopTicking()

	s.logger.Debug("room started")
	for {
		select {
		case <-s.quit:
			s.teardown()
			return
		case cmd := <-s.inbox:
			s.handle(cmd)
		case <-timerC(s.countdown):
			s.onCountdown()
		case <-timerC(s.ticker):
			s.onTick()
		}
	}
}

// timerC returns nil for an inactive timer so its select case never fires.
func timerC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

func (s *Session) handle(cmd any) {
	switch c := cmd.(type) {
	case join:
		s.handleJoin(c)
	case paddleMove:
		if slot := s.slotOf(c.connID); slot != game.NoSlot {
			s.match.MovePaddle(slot, c.x)
		}
	case readyVote:
		s.handleReady(c.connID)
	case rematchVote:
		s.handleRematch(c.connID)
	default:
		s.logger.Warn("unknown room command", "command", cmd)
	}
}

func (s *Session) handleJoin(c join) {
	if len(s.seats) >= MaxPlayers {
		c.reply <- joinResult{err: ErrRoomFull}
		return
	}

	s.seats = append(s.seats, seat{conn: c.conn, name: c.name})
	slot := game.SlotAt(len(s.seats) - 1)
	s.send(c.conn, protocol.RoomJoined(s.Code, slot))
	c.reply <- joinResult{slot: slot}

	s.logger.Info("player joined", "conn", c.conn.ID(), "slot", slot, "name", c.name)
	s.broadcast(protocol.PlayerJoined(s.seats[0].name, s.seats[1].name))

	if s.match.BeginCountdown() {
		s.startCountdown()
	}
}

func (s *Session) handleReady(connID string) {
	if s.slotOf(connID) == game.NoSlot {
		return
	}
	votes, resumed := s.match.VoteReady()
	if votes == 0 {
		return
	}
	s.broadcast(protocol.ReadyVotes(votes))
	if resumed {
		s.logger.Debug("play resumed")
		s.broadcast(protocol.Signal(protocol.MsgResumeGame))
	}
}

func (s *Session) handleRematch(connID string) {
	if s.slotOf(connID) == game.NoSlot || s.match.Status() != game.StatusFinished {
		return
	}
	s.rematchVotes++
	s.broadcast(protocol.RematchVote(s.rematchVotes))
	if s.rematchVotes < game.QuorumVotes {
		return
	}

	s.rematchVotes = 0
	s.stopTicking()
	s.match.Rematch()
	s.logger.Info("rematch starting")
	s.broadcast(protocol.Signal(protocol.MsgRematchStart))
	s.startCountdown()
}

func (s *Session) startCountdown() {
	s.stopCountdown()
	s.count = CountdownStart
	s.broadcast(protocol.Countdown(s.count))
	s.countdown = time.NewTicker(s.opts.CountdownStep)
}

func (s *Session) onCountdown() {
	s.count--
	if s.count > 0 {
		s.broadcast(protocol.Countdown(s.count))
		return
	}

	s.stopCountdown()
	if !s.match.Start() {
		return
	}
	s.broadcast(protocol.Signal(protocol.MsgGameStart))
	s.startTicking()
}

func (s *Session) onTick() {
	out := s.match.Tick()
	if out.Kind == game.Idle {
		return
	}

	state := s.match.State()
	s.broadcast(protocol.GameState(state))

	switch out.Kind {
	case game.Goal:
		p1, p2 := state.Scores()
		s.logger.Debug("goal", "scorer", out.Scorer, "player1", p1, "player2", p2)
		s.broadcast(protocol.GoalPause(out.Scorer, state))
	case game.Win:
		s.stopTicking()
		s.recordResult(out.Scorer)
		s.broadcast(protocol.GameOver(state, s.board.Top(leaderboard.DefaultTop)))
	}
}

func (s *Session) recordResult(winner game.Slot) {
	w := s.seats[winner.Index()]
	l := s.seats[winner.Opponent().Index()]
	s.board.Record(
		leaderboard.Player{ID: w.conn.ID(), Name: w.name},
		leaderboard.Player{ID: l.conn.ID(), Name: l.name},
	)
	s.logger.Info("match finished", "winner", winner, "name", w.name)
}

func (s *Session) teardown() {
	for _, st := range s.seats {
		if st.conn.ID() == s.leaver {
			continue
		}
		s.send(st.conn, protocol.Signal(protocol.MsgPlayerDisconnected))
	}
	s.logger.Info("room closed", "leaver", s.leaver)
}

func (s *Session) startTicking() {
	s.stopTicking()
	s.ticker = time.NewTicker(s.opts.TickInterval)
}

func (s *Session) stopTicking() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

func (s *Session) stopCountdown() {
	if s.countdown != nil {
		s.countdown.Stop()
		s.countdown = nil
	}
}

func (s *Session) slotOf(connID string) game.Slot {
	for i, st := range s.seats {
		if st.conn.ID() == connID {
			return game.SlotAt(i)
		}
	}
	return game.NoSlot
}

func (s *Session) broadcast(m protocol.Message) {
	for _, st := range s.seats {
		s.send(st.conn, m)
	}
}

func (s *Session) send(c Conn, m protocol.Message) {
	if err := c.Send(m); err != nil {
		s.logger.Warn("dropping message", "conn", c.ID(), "type", m.Type, "error", err)
	}
}
