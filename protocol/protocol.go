// Package protocol defines the messages exchanged with game clients and the
// envelope they travel in.
//
// Every frame is a google.protobuf.Struct of the form
//
//	{"type": "<event>", "payload": {...}}
//
// Binary websocket frames carry the protobuf wire encoding of that struct and
// text frames carry its canonical JSON form.
package protocol

// inbound, client -> server
const (
	MsgCreateRoom     = "createRoom"
	MsgJoinRoom       = "joinRoom"
	MsgPaddleMove     = "paddleMove"
	MsgReadyAfterGoal = "readyAfterGoal"
	MsgRematch        = "rematch"
	MsgGetLeaderboard = "getLeaderboard"
	MsgLeaveRoom      = "leaveRoom"
)

// outbound, server -> client or room
const (
	MsgRoomCreated        = "roomCreated"
	MsgRoomJoined         = "roomJoined"
	MsgError              = "error"
	MsgPlayerJoined       = "playerJoined"
	MsgCountdown          = "countdown"
	MsgGameStart          = "gameStart"
	MsgResumeGame         = "resumeGame"
	MsgRematchStart       = "rematchStart"
	MsgGameState          = "gameState"
	MsgGoalPause          = "goalPause"
	MsgGameOver           = "gameOver"
	MsgReadyVotes         = "readyVotes"
	MsgRematchVote        = "rematchVote"
	MsgPlayerDisconnected = "playerDisconnected"
	MsgLeaderboard        = "leaderboard"
)

// Format selects the frame encoding.
type Format int

const (
	Binary Format = iota
	Text
)

// Message is a decoded envelope. Payload values use the types produced by
// structpb: float64 for every number, []any for lists, map[string]any for
// objects.
type Message struct {
	Type    string
	Payload map[string]any
}

// String returns the string at key, or "" if it is missing or not a string.
func (m Message) String(key string) string {
	s, _ := m.Payload[key].(string)
	return s
}

// Float returns the number at key.
func (m Message) Float(key string) (float64, bool) {
	f, ok := m.Payload[key].(float64)
	return f, ok
}

// Map returns the object at key.
func (m Message) Map(key string) map[string]any {
	v, _ := m.Payload[key].(map[string]any)
	return v
}
