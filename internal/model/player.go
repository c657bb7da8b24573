package model

import "time"

type Player struct {
	ID       string
	JoinedAt time.Time
}

// ClientPlayer is a seat as shown to clients.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Side   `json:"color"`
	TimeUsed int    `json:"timeUsed"` // tenths of a second
}

// MatchFoundEvent is sent to each queued player once they are paired.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Side   `json:"color"`
}
