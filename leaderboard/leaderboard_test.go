package leaderboard_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo-shahab/duel-pong/leaderboard"
)

var (
	ana  = leaderboard.Player{ID: "c1", Name: "Ana"}
	beto = leaderboard.Player{ID: "c2", Name: "Beto"}
	caro = leaderboard.Player{ID: "c3", Name: "Caro"}
)

func TestBoard_Record(t *testing.T) {
	b := leaderboard.New()

	b.Record(beto, ana)

	got, ok := b.Get("c2")
	require.True(t, ok)
	assert.Equal(t, leaderboard.Entry{Name: "Beto", Wins: 1}, got)

	got, ok = b.Get("c1")
	require.True(t, ok)
	assert.Equal(t, leaderboard.Entry{Name: "Ana", Losses: 1}, got)

	_, ok = b.Get("nobody")
	assert.False(t, ok)
}

func TestBoard_KeepsFirstName(t *testing.T) {
	b := leaderboard.New()

	b.Record(beto, ana)
	b.Record(leaderboard.Player{ID: "c2", Name: "Renamed"}, ana)

	got, _ := b.Get("c2")
	assert.Equal(t, "Beto", got.Name)
	assert.Equal(t, 2, got.Wins)
}

func TestBoard_Top(t *testing.T) {
	tests := []struct {
		name  string
		games [][2]leaderboard.Player
		n     int
		want  []leaderboard.Entry
	}{
		{
			name: "empty board",
			n:    10,
			want: []leaderboard.Entry{},
		},
		{
			name: "sorted by wins",
			games: [][2]leaderboard.Player{
				{ana, beto},
				{caro, beto},
				{caro, ana},
			},
			n: 10,
			want: []leaderboard.Entry{
				{Name: "Caro", Wins: 2},
				{Name: "Ana", Wins: 1, Losses: 1},
				{Name: "Beto", Losses: 2},
			},
		},
		{
			name: "ties keep first appearance",
			games: [][2]leaderboard.Player{
				{beto, ana},
				{ana, caro},
			},
			n: 10,
			want: []leaderboard.Entry{
				{Name: "Beto", Wins: 1},
				{Name: "Ana", Wins: 1, Losses: 1},
				{Name: "Caro", Losses: 1},
			},
		},
		{
			name: "truncated",
			games: [][2]leaderboard.Player{
				{ana, beto},
				{caro, beto},
				{caro, ana},
			},
			n: 1,
			want: []leaderboard.Entry{
				{Name: "Caro", Wins: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := leaderboard.New()
			for _, g := range tt.games {
				b.Record(g[0], g[1])
			}

			assert.Equal(t, tt.want, b.Top(tt.n))
		})
	}
}

func TestBoard_TopDefaultSize(t *testing.T) {
	b := leaderboard.New()
	for i := 0; i < 15; i++ {
		b.Record(
			leaderboard.Player{ID: fmt.Sprintf("w%d", i), Name: "w"},
			leaderboard.Player{ID: fmt.Sprintf("l%d", i), Name: "l"},
		)
	}

	assert.Equal(t, 30, b.Len())
	assert.Len(t, b.Top(leaderboard.DefaultTop), 10)
}

func TestBoard_ConcurrentRecords(t *testing.T) {
	b := leaderboard.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Record(ana, beto)
			_ = b.Top(10)
		}()
	}
	wg.Wait()

	got, _ := b.Get("c1")
	assert.Equal(t, 50, got.Wins)
	got, _ = b.Get("c2")
	assert.Equal(t, 50, got.Losses)
}
