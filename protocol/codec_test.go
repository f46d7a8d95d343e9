package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo-shahab/duel-pong/game"
	"github.com/mo-shahab/duel-pong/leaderboard"
	"github.com/mo-shahab/duel-pong/protocol"
)

func TestDecode_ClientFrames(t *testing.T) {
	tests := []struct {
		name   string
		frame  []byte
		format protocol.Format
		check  func(t *testing.T, m protocol.Message)
	}{
		{
			name:   "join room as json text",
			frame:  []byte(`{"type":"joinRoom","payload":{"code":"c1ab2z","displayName":"Beto"}}`),
			format: protocol.Text,
			check: func(t *testing.T, m protocol.Message) {
				assert.Equal(t, protocol.MsgJoinRoom, m.Type)
				assert.Equal(t, "c1ab2z", m.String("code"))
				assert.Equal(t, "Beto", m.String("displayName"))
			},
		},
		{
			name:   "paddle move",
			frame:  []byte(`{"type":"paddleMove","payload":{"x":42.5}}`),
			format: protocol.Text,
			check: func(t *testing.T, m protocol.Message) {
				x, ok := m.Float("x")
				require.True(t, ok)
				assert.Equal(t, 42.5, x)
			},
		},
		{
			name:   "no payload",
			frame:  []byte(`{"type":"readyAfterGoal"}`),
			format: protocol.Text,
			check: func(t *testing.T, m protocol.Message) {
				assert.Equal(t, protocol.MsgReadyAfterGoal, m.Type)
				assert.Empty(t, m.Payload)
				assert.Equal(t, "", m.String("displayName"))
				_, ok := m.Float("x")
				assert.False(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := protocol.Decode(tt.frame, tt.format)
			require.NoError(t, err)
			tt.check(t, m)
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		frame  []byte
		format protocol.Format
		want   error
	}{
		{"empty frame", nil, protocol.Binary, protocol.ErrEmptyFrame},
		{"missing type", []byte(`{"payload":{}}`), protocol.Text, protocol.ErrNoType},
		{"garbage json", []byte(`{not json`), protocol.Text, nil},
		{"garbage protobuf", []byte{0xff, 0xff, 0xff}, protocol.Binary, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := protocol.Decode(tt.frame, tt.format)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestEncode_BothFormatsCarryTheSameMessage(t *testing.T) {
	m := protocol.GoalPause(game.Player2, game.State{})

	for _, f := range []protocol.Format{protocol.Binary, protocol.Text} {
		b, err := protocol.Encode(m, f)
		require.NoError(t, err)

		got, err := protocol.Decode(b, f)
		require.NoError(t, err)
		assert.Equal(t, protocol.MsgGoalPause, got.Type)
		assert.Equal(t, "player2", got.String("scorer"))
		assert.Equal(t, map[string]any{"player1": 0.0, "player2": 0.0}, got.Map("scores"))
	}
}

func TestEncode_RequiresType(t *testing.T) {
	_, err := protocol.Encode(protocol.Message{}, protocol.Binary)
	assert.ErrorIs(t, err, protocol.ErrNoType)
}

func TestGameState_Snapshot(t *testing.T) {
	m := game.NewMatch(nil)
	b, err := protocol.Encode(protocol.GameState(m.State()), protocol.Binary)
	require.NoError(t, err)

	got, err := protocol.Decode(b, protocol.Binary)
	require.NoError(t, err)

	assert.Equal(t, "waiting", got.String("status"))
	assert.Nil(t, got.Payload["winner"])
	assert.Nil(t, got.Payload["pauseReason"])
	assert.Equal(t, 7.0, got.Payload["maxScore"])
	assert.Equal(t, map[string]any{"x": 50.0, "y": 50.0, "vx": 0.0, "vy": 0.0, "speed": 1.5}, got.Map("ball"))

	paddles := got.Map("paddles")
	require.Contains(t, paddles, "player1")
	assert.Equal(t, map[string]any{"x": 50.0, "y": 92.0, "width": 18.0, "score": 0.0}, paddles["player1"])
}

func TestGameOver_Leaderboard(t *testing.T) {
	s := game.State{Winner: game.Player2}
	s.Player2.Score = 7
	top := []leaderboard.Entry{{Name: "Beto", Wins: 1}, {Name: "Ana", Losses: 1}}

	b, err := protocol.Encode(protocol.GameOver(s, top), protocol.Text)
	require.NoError(t, err)
	got, err := protocol.Decode(b, protocol.Text)
	require.NoError(t, err)

	assert.Equal(t, "player2", got.String("winner"))
	assert.Equal(t, []any{
		map[string]any{"name": "Beto", "wins": 1.0, "losses": 0.0},
		map[string]any{"name": "Ana", "wins": 0.0, "losses": 1.0},
	}, got.Payload["leaderboard"])
}
