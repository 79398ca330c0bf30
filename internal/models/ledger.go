package models

import (
	"encoding/base64"

	"github.com/RoaringBitmap/roaring/v2"
	json "github.com/goccy/go-json"
)

// DaySet is a roaring bitmap of the distinct days a player submitted within an
// epoch. JSON form is the bitmap's portable serialization, base64-encoded, so
// snapshots stay compact for long-running players.
type DaySet struct {
	*roaring.Bitmap
}

func NewDaySet() DaySet {
	return DaySet{roaring.New()}
}

func (d DaySet) MarshalJSON() ([]byte, error) {
	bm := d.Bitmap
	if bm == nil {
		bm = roaring.New()
	}
	raw, err := bm.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(raw))
}

func (d *DaySet) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return err
	}
	bm := roaring.New()
	if len(raw) > 0 {
		if err := bm.UnmarshalBinary(raw); err != nil {
			return err
		}
	}
	d.Bitmap = bm
	return nil
}

// PlayerLedger tracks one player's results within a single epoch. BestPerDay is
// monotonically non-decreasing; TotalPoints only ever accumulates positive
// deltas, so a worse replay of a beaten score can never deflate a total.
type PlayerLedger struct {
	BestPerDay    map[uint32]uint64 `json:"best_per_day"`
	BestEver      uint64            `json:"best_ever"`
	TotalPoints   uint64            `json:"total_points"`
	StreakCount   uint16            `json:"streak_count"`
	LastDayPlayed uint32            `json:"last_day_played"`
	DaysPlayed    DaySet            `json:"days_played"`
}

func NewPlayerLedger() *PlayerLedger {
	return &PlayerLedger{
		BestPerDay: make(map[uint32]uint64),
		DaysPlayed: NewDaySet(),
	}
}

// AdvanceStreak applies the distinct-day transition for a submission on the
// given day and returns the streak feeding the current score. Days are opaque
// caller-supplied integers: any day different from the last one counts, a
// same-day repeat does not. Callers wanting true calendar consecutiveness must
// supply real calendar days.
func (pl *PlayerLedger) AdvanceStreak(day uint32) uint16 {
	if day == pl.LastDayPlayed {
		return pl.StreakCount
	}
	if pl.LastDayPlayed == 0 {
		pl.StreakCount = 1
	} else {
		pl.StreakCount++
	}
	pl.LastDayPlayed = day
	return pl.StreakCount
}

// RecordAttempt compares newPoints against the stored best for the day and
// returns the positive improvement, or 0 when the attempt does not beat it.
// Only an improvement mutates the ledger.
func (pl *PlayerLedger) RecordAttempt(day uint32, newPoints uint64) uint64 {
	if pl.DaysPlayed.Bitmap == nil {
		pl.DaysPlayed = NewDaySet()
	}
	pl.DaysPlayed.Add(day)

	oldBest := pl.BestPerDay[day]
	if newPoints <= oldBest {
		return 0
	}

	delta := newPoints - oldBest
	pl.BestPerDay[day] = newPoints
	if newPoints > pl.BestEver {
		pl.BestEver = newPoints
	}
	pl.TotalPoints += delta
	return delta
}

// clone deep-copies the ledger for snapshotting.
func (pl *PlayerLedger) clone() *PlayerLedger {
	cp := &PlayerLedger{
		BestPerDay:    make(map[uint32]uint64, len(pl.BestPerDay)),
		BestEver:      pl.BestEver,
		TotalPoints:   pl.TotalPoints,
		StreakCount:   pl.StreakCount,
		LastDayPlayed: pl.LastDayPlayed,
		DaysPlayed:    NewDaySet(),
	}
	for day, points := range pl.BestPerDay {
		cp.BestPerDay[day] = points
	}
	if pl.DaysPlayed.Bitmap != nil {
		cp.DaysPlayed = DaySet{pl.DaysPlayed.Clone()}
	}
	return cp
}

// DaysPlayedCount returns how many distinct days the player submitted on.
func (pl *PlayerLedger) DaysPlayedCount() int {
	if pl.DaysPlayed.Bitmap == nil {
		return 0
	}
	return int(pl.DaysPlayed.GetCardinality())
}
