package models

// Entry is an immutable leaderboard record. Entries are replaced wholesale on
// update, never mutated in place.
type Entry struct {
	PlayerID    string `json:"player_id"`
	Points      uint64 `json:"points"`
	TimeSeconds uint32 `json:"time_seconds"`
	MoveCount   uint16 `json:"move_count"`
}

// BetterThan reports whether a strictly outranks b: higher points win, then
// lower time, then fewer moves. A full tie yields false for both directions,
// so earlier-inserted entries keep their slot.
func (a Entry) BetterThan(b Entry) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.TimeSeconds != b.TimeSeconds {
		return a.TimeSeconds < b.TimeSeconds
	}
	return a.MoveCount < b.MoveCount
}
