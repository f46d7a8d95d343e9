// Package leaderboard keeps the in-memory win/loss record of every player
// that has finished a match.
//
// Entries are keyed by connection id, which is not a durable account: when a
// player reconnects they start a fresh entry and the old one stays behind.
package leaderboard

import (
	"sync"

	"golang.org/x/exp/slices"
)

const DefaultTop = 10

type Entry struct {
	Name   string
	Wins   int
	Losses int
}

// Player identifies one side of a finished match.
type Player struct {
	ID   string
	Name string
}

type Board struct {
	mu      sync.Mutex
	entries map[string]*Entry
	order   []string // first-appearance order, used to break ties
}

func New() *Board {
	return &Board{entries: make(map[string]*Entry)}
}

// Record credits one win to winner and one loss to loser. Names are captured
// the first time an id is seen.
func (b *Board) Record(winner, loser Player) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entry(winner).Wins++
	b.entry(loser).Losses++
}

func (b *Board) entry(p Player) *Entry {
	e, ok := b.entries[p.ID]
	if !ok {
		e = &Entry{Name: p.Name}
		b.entries[p.ID] = e
		b.order = append(b.order, p.ID)
	}
	return e
}

// Top returns at most n entries sorted by wins, highest first. Players with
// equal wins keep the order in which they first appeared.
func (b *Board) Top(n int) []Entry {
	b.mu.Lock()
	out := make([]Entry, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.entries[id])
	}
	b.mu.Unlock()

	slices.SortStableFunc(out, func(x, y Entry) int {
		return y.Wins - x.Wins
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Get returns the entry for id.
func (b *Board) Get(id string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
