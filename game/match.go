package game

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/mo-shahab/duel-pong/ball"
)

// Match owns the state of one game and enforces the legal transitions:
//
//	waiting → countdown → playing ⇄ paused
//	                       playing → finished → countdown (rematch)
//
// Methods that do not apply to the current status leave the state untouched
// and report false. Match is not safe for concurrent use; a room drives it
// from a single goroutine.
type Match struct {
	state  State
	jitter ball.Jitter
}

// NewMatch returns a match in the waiting state. A nil jitter source gets a
// time-seeded one.
func NewMatch(jitter ball.Jitter) *Match {
	if jitter == nil {
		jitter = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Match{state: newState(), jitter: jitter}
}

// State returns a copy of the current state.
func (m *Match) State() State {
	return m.state
}

func (m *Match) Status() Status {
	return m.state.Status
}

// BeginCountdown moves a waiting match into the countdown.
func (m *Match) BeginCountdown() bool {
	if m.state.Status != StatusWaiting {
		return false
	}
	m.state.Status = StatusCountdown
	return true
}

// Start ends the countdown with the opening serve toward player1.
func (m *Match) Start() bool {
	if m.state.Status != StatusCountdown {
		return false
	}
	m.state.Ball.Serve(openingServe, m.jitter)
	m.state.Status = StatusPlaying
	return true
}

// Tick runs one physics step.
func (m *Match) Tick() Outcome {
	return Step(&m.state)
}

// MovePaddle positions slot's paddle. Moves are accepted while playing or
// paused and dropped otherwise.
func (m *Match) MovePaddle(slot Slot, x float64) bool {
	if m.state.Status != StatusPlaying && m.state.Status != StatusPaused {
		return false
	}
	p := m.state.Paddle(slot)
	if p == nil {
		return false
	}
	p.MoveTo(x)
	return true
}

// VoteReady counts one ready vote during a goal pause. Votes are a raw count:
// two votes resume play no matter who cast them. On resume the ball is served
// toward the side given by the last goal and the count goes back to zero.
func (m *Match) VoteReady() (votes int, resumed bool) {
	if m.state.Status != StatusPaused {
		return 0, false
	}
	m.state.ReadyVotes++
	votes = m.state.ReadyVotes
	if votes < QuorumVotes {
		return votes, false
	}

	m.state.ReadyVotes = 0
	m.state.PauseReason = ""
	m.state.Ball.Serve(m.state.NextServe, m.jitter)
	m.state.Status = StatusPlaying
	return votes, true
}

// Rematch resets a finished match and puts it straight into the countdown.
func (m *Match) Rematch() bool {
	if m.state.Status != StatusFinished {
		return false
	}
	m.state = newState()
	m.state.Status = StatusCountdown
	return true
}
