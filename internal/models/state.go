package models

// AdminState is the contract-wide administrative record. It lives for the
// whole daemon lifetime and is only ever superseded by epoch bumps, never torn
// down.
type AdminState struct {
	Owner      string            `json:"owner"`
	Paused     bool              `json:"paused"`
	Epoch      uint16            `json:"epoch"`
	DailySeeds map[uint32]uint64 `json:"daily_seeds"`
}

// EpochState holds everything namespaced by one epoch: per-player ledgers, the
// per-day and all-time boards, and the per-day point accumulator used for
// analytics only.
type EpochState struct {
	Players     map[string]*PlayerLedger
	Daily       map[uint32]*Leaderboard
	AllTime     *Leaderboard
	DailyPoints map[uint32]uint64
}

func NewEpochState() *EpochState {
	return &EpochState{
		Players:     make(map[string]*PlayerLedger),
		Daily:       make(map[uint32]*Leaderboard),
		AllTime:     NewLeaderboard(),
		DailyPoints: make(map[uint32]uint64),
	}
}

// Ledger returns the player's ledger for this epoch, creating it on first use.
func (es *EpochState) Ledger(player string) *PlayerLedger {
	pl, ok := es.Players[player]
	if !ok {
		pl = NewPlayerLedger()
		es.Players[player] = pl
	}
	return pl
}

// DailyBoard returns the board for the given day, creating it on first use.
func (es *EpochState) DailyBoard(day uint32) *Leaderboard {
	lb, ok := es.Daily[day]
	if !ok {
		lb = NewLeaderboard()
		es.Daily[day] = lb
	}
	return lb
}

// RankingState is the persistent state root passed into every transaction.
// Epochs are never deleted: bumping the epoch makes prior data unreachable
// under the new keyspace while keeping it intact in the map and on disk.
type RankingState struct {
	Admin  AdminState
	Epochs map[uint16]*EpochState
}

func NewRankingState(owner string) *RankingState {
	return &RankingState{
		Admin: AdminState{
			Owner:      owner,
			DailySeeds: make(map[uint32]uint64),
		},
		Epochs: map[uint16]*EpochState{0: NewEpochState()},
	}
}

// Current returns the state for the active epoch, creating it on first use.
func (rs *RankingState) Current() *EpochState {
	es, ok := rs.Epochs[rs.Admin.Epoch]
	if !ok {
		es = NewEpochState()
		rs.Epochs[rs.Admin.Epoch] = es
	}
	return es
}

// BumpEpoch performs the only reset mechanism: the epoch counter advances and
// the pause flag clears. Old epoch data stays where it is.
func (rs *RankingState) BumpEpoch() uint16 {
	rs.Admin.Epoch++
	rs.Admin.Paused = false
	rs.Current()
	return rs.Admin.Epoch
}
