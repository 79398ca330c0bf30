package models

// SnapshotVersion is the current on-disk format. Version 1 was the
// single-epoch JSON layout from before seasons existed; it is still accepted
// on load and migrated in place. Anything newer than the current version is a
// migration failure: the daemon refuses to guess at a future format.
const SnapshotVersion = 2

// EpochSnapshot is the persistence form of one EpochState. Boards flatten to
// their ordered entry slices.
type EpochSnapshot struct {
	Players     map[string]*PlayerLedger `json:"players"`
	Daily       map[uint32][]Entry       `json:"daily"`
	AllTime     []Entry                  `json:"all_time"`
	DailyPoints map[uint32]uint64        `json:"daily_points"`
}

// Snapshot is the versioned persistence envelope for the whole ranking state.
type Snapshot struct {
	Version int                       `json:"version"`
	Admin   AdminState                `json:"admin"`
	Epochs  map[uint16]*EpochSnapshot `json:"epochs"`
}

// LegacySnapshot is the pre-season (version 1) JSON layout: a single implicit
// epoch with admin fields inlined at the top level.
type LegacySnapshot struct {
	Owner       string                   `json:"owner"`
	Paused      bool                     `json:"paused"`
	DailySeeds  map[uint32]uint64        `json:"daily_seeds"`
	Players     map[string]*PlayerLedger `json:"players"`
	Daily       map[uint32][]Entry       `json:"daily"`
	AllTime     []Entry                  `json:"all_time"`
	DailyPoints map[uint32]uint64        `json:"daily_points"`
}

// Snapshot flattens the runtime state into its persistence form. Everything
// is deep-copied: serialization happens outside the transaction lock, so the
// snapshot must not share mutable structures with the live state.
func (rs *RankingState) Snapshot() *Snapshot {
	admin := rs.Admin
	admin.DailySeeds = make(map[uint32]uint64, len(rs.Admin.DailySeeds))
	for day, seed := range rs.Admin.DailySeeds {
		admin.DailySeeds[day] = seed
	}

	snap := &Snapshot{
		Version: SnapshotVersion,
		Admin:   admin,
		Epochs:  make(map[uint16]*EpochSnapshot, len(rs.Epochs)),
	}
	for epoch, es := range rs.Epochs {
		eps := &EpochSnapshot{
			Players:     make(map[string]*PlayerLedger, len(es.Players)),
			Daily:       make(map[uint32][]Entry, len(es.Daily)),
			AllTime:     es.AllTime.Entries(),
			DailyPoints: make(map[uint32]uint64, len(es.DailyPoints)),
		}
		for player, pl := range es.Players {
			eps.Players[player] = pl.clone()
		}
		for day, board := range es.Daily {
			eps.Daily[day] = board.Entries()
		}
		for day, points := range es.DailyPoints {
			eps.DailyPoints[day] = points
		}
		snap.Epochs[epoch] = eps
	}
	return snap
}

// RankingState rebuilds runtime state from a snapshot. Ledgers restored from
// sources without a day bitmap get one reconstructed from their best-per-day
// keys.
func (s *Snapshot) RankingState() *RankingState {
	rs := &RankingState{
		Admin:  s.Admin,
		Epochs: make(map[uint16]*EpochState, len(s.Epochs)),
	}
	if rs.Admin.DailySeeds == nil {
		rs.Admin.DailySeeds = make(map[uint32]uint64)
	}
	for epoch, eps := range s.Epochs {
		rs.Epochs[epoch] = eps.epochState()
	}
	rs.Current()
	return rs
}

func (eps *EpochSnapshot) epochState() *EpochState {
	es := NewEpochState()
	for player, pl := range eps.Players {
		if pl == nil {
			continue
		}
		if pl.BestPerDay == nil {
			pl.BestPerDay = make(map[uint32]uint64)
		}
		if pl.DaysPlayed.Bitmap == nil {
			pl.DaysPlayed = NewDaySet()
			for day := range pl.BestPerDay {
				pl.DaysPlayed.Add(day)
			}
		}
		es.Players[player] = pl
	}
	for day, entries := range eps.Daily {
		es.DailyBoard(day).PutEntries(entries)
	}
	es.AllTime.PutEntries(eps.AllTime)
	for day, points := range eps.DailyPoints {
		es.DailyPoints[day] = points
	}
	return es
}

// Migrate lifts a legacy single-epoch layout into the current envelope.
func (ls *LegacySnapshot) Migrate() *Snapshot {
	seeds := ls.DailySeeds
	if seeds == nil {
		seeds = make(map[uint32]uint64)
	}
	return &Snapshot{
		Version: SnapshotVersion,
		Admin: AdminState{
			Owner:      ls.Owner,
			Paused:     ls.Paused,
			DailySeeds: seeds,
		},
		Epochs: map[uint16]*EpochSnapshot{
			0: {
				Players:     ls.Players,
				Daily:       ls.Daily,
				AllTime:     ls.AllTime,
				DailyPoints: ls.DailyPoints,
			},
		},
	}
}
