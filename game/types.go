package game

import (
	"github.com/mo-shahab/duel-pong/ball"
	"github.com/mo-shahab/duel-pong/paddle"
)

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCountdown Status = "countdown"
	StatusPlaying   Status = "playing"
	StatusPaused    Status = "paused"
	StatusFinished  Status = "finished"
)

// Slot is a seat in a room. player1 holds the bottom paddle, player2 the top.
type Slot string

const (
	NoSlot  Slot = ""
	Player1 Slot = "player1"
	Player2 Slot = "player2"
)

// SlotAt maps a join-order index to its slot.
func SlotAt(i int) Slot {
	switch i {
	case 0:
		return Player1
	case 1:
		return Player2
	}
	return NoSlot
}

// Index is the inverse of SlotAt; it returns -1 for NoSlot.
func (s Slot) Index() int {
	switch s {
	case Player1:
		return 0
	case Player2:
		return 1
	}
	return -1
}

// Opponent returns the other seat.
func (s Slot) Opponent() Slot {
	switch s {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoSlot
}

const (
	DefaultMaxScore = 7
	PauseGoal       = "goal"
	QuorumVotes     = 2

	// the opening serve of a match always heads toward player1
	openingServe = 1
)

// State is everything a client needs to draw one frame.
type State struct {
	Ball        ball.Ball
	Player1     paddle.Paddle
	Player2     paddle.Paddle
	Status      Status
	PauseReason string
	ReadyVotes  int
	LastScorer  Slot
	Winner      Slot
	MaxScore    int
	NextServe   int
}

func newState() State {
	return State{
		Ball:      ball.New(),
		Player1:   paddle.New(paddle.Bottom),
		Player2:   paddle.New(paddle.Top),
		Status:    StatusWaiting,
		MaxScore:  DefaultMaxScore,
		NextServe: openingServe,
	}
}

// Paddle returns the paddle owned by slot, or nil for NoSlot.
func (s *State) Paddle(slot Slot) *paddle.Paddle {
	switch slot {
	case Player1:
		return &s.Player1
	case Player2:
		return &s.Player2
	}
	return nil
}

// Scores returns (player1, player2).
func (s *State) Scores() (int, int) {
	return s.Player1.Score, s.Player2.Score
}

// OutcomeKind classifies the result of a tick.
type OutcomeKind int

const (
	// Idle: the match is not playing and nothing moved.
	Idle OutcomeKind = iota
	// Rally: the ball moved and is still in play.
	Rally
	// Goal: a point was scored and the match paused.
	Goal
	// Win: a point was scored and it ended the match.
	Win
)

type Outcome struct {
	Kind   OutcomeKind
	Scorer Slot
}
