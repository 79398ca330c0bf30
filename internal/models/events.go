package models

import "github.com/google/uuid"

// ResultSubmitted is emitted for every accepted submission, including
// non-improving ones (delta 0), which are a valid outcome rather than an error.
type ResultSubmitted struct {
	ID          uuid.UUID `json:"id"`
	PlayerID    string    `json:"player_id"`
	Day         uint32    `json:"day"`
	Points      uint64    `json:"points"`
	Delta       uint64    `json:"delta"`
	TotalPoints uint64    `json:"total_points"`
	TimeSeconds uint32    `json:"time_seconds"`
	MoveCount   uint16    `json:"move_count"`
}

// LeaderboardUpdated is emitted when an improving submission lands on the
// daily board.
type LeaderboardUpdated struct {
	ID       uuid.UUID `json:"id"`
	Day      uint32    `json:"day"`
	Rank     int       `json:"rank"`
	PlayerID string    `json:"player_id"`
	Points   uint64    `json:"points"`
}
