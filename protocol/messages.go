package protocol

import (
	"github.com/mo-shahab/duel-pong/ball"
	"github.com/mo-shahab/duel-pong/game"
	"github.com/mo-shahab/duel-pong/leaderboard"
	"github.com/mo-shahab/duel-pong/paddle"
)

// Signal is a message without payload (gameStart, resumeGame, ...).
func Signal(t string) Message {
	return Message{Type: t}
}

func RoomCreated(code string, slot game.Slot) Message {
	return seat(MsgRoomCreated, code, slot)
}

func RoomJoined(code string, slot game.Slot) Message {
	return seat(MsgRoomJoined, code, slot)
}

func seat(t, code string, slot game.Slot) Message {
	return Message{Type: t, Payload: map[string]any{
		"code": code,
		"slot": string(slot),
	}}
}

func Error(message string) Message {
	return Message{Type: MsgError, Payload: map[string]any{"message": message}}
}

func PlayerJoined(player1, player2 string) Message {
	return Message{Type: MsgPlayerJoined, Payload: map[string]any{
		"names": map[string]any{
			"player1": player1,
			"player2": player2,
		},
	}}
}

func Countdown(count int) Message {
	return Message{Type: MsgCountdown, Payload: map[string]any{"count": count}}
}

func ReadyVotes(votes int) Message {
	return Message{Type: MsgReadyVotes, Payload: map[string]any{"votes": votes}}
}

func RematchVote(votes int) Message {
	return Message{Type: MsgRematchVote, Payload: map[string]any{"votes": votes}}
}

// GameState carries the full match snapshot, never a delta.
func GameState(s game.State) Message {
	return Message{Type: MsgGameState, Payload: map[string]any{
		"ball": ballFields(s.Ball),
		"paddles": map[string]any{
			string(game.Player1): paddleFields(s.Player1),
			string(game.Player2): paddleFields(s.Player2),
		},
		"status":      string(s.Status),
		"pauseReason": nullable(s.PauseReason),
		"readyVotes":  s.ReadyVotes,
		"lastScorer":  nullable(string(s.LastScorer)),
		"winner":      nullable(string(s.Winner)),
		"maxScore":    s.MaxScore,
	}}
}

func GoalPause(scorer game.Slot, s game.State) Message {
	return Message{Type: MsgGoalPause, Payload: map[string]any{
		"scorer": string(scorer),
		"scores": scores(s),
	}}
}

func GameOver(s game.State, top []leaderboard.Entry) Message {
	return Message{Type: MsgGameOver, Payload: map[string]any{
		"winner":      nullable(string(s.Winner)),
		"scores":      scores(s),
		"leaderboard": entries(top),
	}}
}

// Leaderboard lists the ranking under "entries", best first.
func Leaderboard(top []leaderboard.Entry) Message {
	return Message{Type: MsgLeaderboard, Payload: map[string]any{
		"entries": entries(top),
	}}
}

func ballFields(b ball.Ball) map[string]any {
	return map[string]any{
		"x":     b.X,
		"y":     b.Y,
		"vx":    b.Vx,
		"vy":    b.Vy,
		"speed": b.Speed,
	}
}

func paddleFields(p paddle.Paddle) map[string]any {
	return map[string]any{
		"x":     p.X,
		"y":     p.Y,
		"width": p.Width,
		"score": p.Score,
	}
}

func scores(s game.State) map[string]any {
	p1, p2 := s.Scores()
	return map[string]any{
		string(game.Player1): p1,
		string(game.Player2): p2,
	}
}

func entries(top []leaderboard.Entry) []any {
	out := make([]any, 0, len(top))
	for _, e := range top {
		out = append(out, map[string]any{
			"name":   e.Name,
			"wins":   e.Wins,
			"losses": e.Losses,
		})
	}
	return out
}

// nullable maps "" to JSON null.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
