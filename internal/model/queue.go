package model

import (
	"fmt"
	"sync"
	"time"
)

type Queue struct {
	players []Player
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []Player{},
	}
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.ID == player.ID {
			return fmt.Errorf("player %s already in queue", player.ID)
		}
	}

	if player.JoinedAt.IsZero() {
		player.JoinedAt = time.Now()
	}
	q.players = append(q.players, player)
	return nil
}

// NextPair removes and returns the two players who have waited longest.
// ok is false when fewer than two are queued.
func (q *Queue) NextPair() (first, second Player, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return Player{}, Player{}, false
	}
	first, second = q.players[0], q.players[1]
	q.players = q.players[2:]
	return first, second, true
}

func (q *Queue) Remove(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.ID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
