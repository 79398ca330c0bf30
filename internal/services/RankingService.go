package services

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"rankd/internal/models"
	"rankd/internal/structures"
)

// EventSink receives the notifications emitted by accepted submissions.
type EventSink interface {
	ResultSubmitted(ev models.ResultSubmitted)
	LeaderboardUpdated(ev models.LeaderboardUpdated)
}

// SubmitOutcome reports back what a submission did: the computed points, the
// positive improvement (0 for a non-improving replay), the running total and
// streak, and the board ranks the entry landed at (-1 when not inserted).
type SubmitOutcome struct {
	Points      uint64 `json:"points"`
	Delta       uint64 `json:"delta"`
	TotalPoints uint64 `json:"total_points"`
	Streak      uint16 `json:"streak"`
	DailyRank   int    `json:"daily_rank"`
	AllTimeRank int    `json:"alltime_rank"`
}

type RankingServiceInterface interface {
	SubmitResult(player string, day uint32, timeSeconds uint32, moveCount uint16) (*SubmitOutcome, error)

	GetBest(player string, day uint32) uint64
	GetTotal(player string) uint64
	GetStreak(player string) (uint16, int)
	GetDailyLength(day uint32) int
	GetDailyEntry(day uint32, rank int) (models.Entry, bool)
	GetDailyEntries(day uint32) []models.Entry
	GetAllTimeLength() int
	GetAllTimeEntry(rank int) (models.Entry, bool)
	GetAllTimeEntries() []models.Entry
	GetDailyPoints(day uint32) uint64
	GetEpoch() uint16
	IsPaused() bool
	GetDailySeed(day uint32) uint64
	GetPlayersTotal() int

	SetPaused(caller string, paused bool) error
	ResetEpoch(caller string) (uint16, error)
	SetOwner(caller, newOwner string) error
	SetDailySeed(caller string, day uint32, seed uint64) error
	Migrate(caller string) error

	GetSnapshot() *models.Snapshot
	PutSnapshot(snap *models.Snapshot) error
}

// RankingService is the transactional entry point. Every mutating operation
// runs to completion under the state mutex before the next one is observed,
// so concurrent submissions are strictly ordered and a rejection can never
// leave a partial mutation behind. Reads only take the read lock.
type RankingService struct {
	mu     sync.RWMutex
	state  *models.RankingState
	events EventSink
	paused atomic.Bool // mirror of state.Admin.Paused for lock-free checks

	// snapshotVersion tracks the format version the state was loaded from;
	// the migrate hook refuses anything the build does not understand.
	snapshotVersion int
}

func NewRankingService(conf *structures.Config, events EventSink) RankingServiceInterface {
	return &RankingService{
		state:           models.NewRankingState(conf.Ranking.Owner),
		events:          events,
		snapshotVersion: models.SnapshotVersion,
	}
}

// SubmitResult runs the whole submission transaction: pause gate, bounds,
// streak update, scoring, ledger update, board upserts, event emission.
// Precondition failures reject before any state is touched.
func (rs *RankingService) SubmitResult(player string, day uint32, timeSeconds uint32, moveCount uint16) (*SubmitOutcome, error) {
	if rs.paused.Load() {
		return nil, models.ErrPaused
	}
	if err := models.ValidateAttempt(timeSeconds, moveCount); err != nil {
		return nil, err
	}
	if player == "" {
		return nil, models.ErrInvalidInput
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	// Re-check under the lock: a pause may have landed between the fast
	// path and here.
	if rs.state.Admin.Paused {
		return nil, models.ErrPaused
	}

	epoch := rs.state.Current()
	ledger := epoch.Ledger(player)

	streak := ledger.AdvanceStreak(day)
	points := models.Score(timeSeconds, moveCount, streak)
	delta := ledger.RecordAttempt(day, points)

	outcome := &SubmitOutcome{
		Points:      points,
		Delta:       delta,
		TotalPoints: ledger.TotalPoints,
		Streak:      streak,
		DailyRank:   -1,
		AllTimeRank: -1,
	}

	if delta > 0 {
		epoch.DailyPoints[day] += delta

		entry := models.Entry{
			PlayerID:    player,
			Points:      points,
			TimeSeconds: timeSeconds,
			MoveCount:   moveCount,
		}
		if rank, ok := epoch.DailyBoard(day).Upsert(entry); ok {
			outcome.DailyRank = rank
		}
		if rank, ok := epoch.AllTime.Upsert(entry); ok {
			outcome.AllTimeRank = rank
		}
	}

	rs.events.ResultSubmitted(models.ResultSubmitted{
		ID:          uuid.New(),
		PlayerID:    player,
		Day:         day,
		Points:      points,
		Delta:       delta,
		TotalPoints: ledger.TotalPoints,
		TimeSeconds: timeSeconds,
		MoveCount:   moveCount,
	})
	if outcome.DailyRank >= 0 {
		rs.events.LeaderboardUpdated(models.LeaderboardUpdated{
			ID:       uuid.New(),
			Day:      day,
			Rank:     outcome.DailyRank,
			PlayerID: player,
			Points:   points,
		})
	}

	return outcome, nil
}

func (rs *RankingService) GetBest(player string, day uint32) uint64 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if pl, ok := rs.state.Current().Players[player]; ok {
		return pl.BestPerDay[day]
	}
	return 0
}

func (rs *RankingService) GetTotal(player string) uint64 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if pl, ok := rs.state.Current().Players[player]; ok {
		return pl.TotalPoints
	}
	return 0
}

// GetStreak returns the current streak and the distinct-day count behind it.
func (rs *RankingService) GetStreak(player string) (uint16, int) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if pl, ok := rs.state.Current().Players[player]; ok {
		return pl.StreakCount, pl.DaysPlayedCount()
	}
	return 0, 0
}

func (rs *RankingService) GetDailyLength(day uint32) int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if board, ok := rs.state.Current().Daily[day]; ok {
		return board.Len()
	}
	return 0
}

func (rs *RankingService) GetDailyEntry(day uint32, rank int) (models.Entry, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if board, ok := rs.state.Current().Daily[day]; ok {
		return board.At(rank)
	}
	return models.Entry{}, false
}

func (rs *RankingService) GetDailyEntries(day uint32) []models.Entry {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if board, ok := rs.state.Current().Daily[day]; ok {
		return board.Entries()
	}
	return []models.Entry{}
}

func (rs *RankingService) GetAllTimeLength() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state.Current().AllTime.Len()
}

func (rs *RankingService) GetAllTimeEntry(rank int) (models.Entry, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state.Current().AllTime.At(rank)
}

func (rs *RankingService) GetAllTimeEntries() []models.Entry {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state.Current().AllTime.Entries()
}

func (rs *RankingService) GetDailyPoints(day uint32) uint64 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state.Current().DailyPoints[day]
}

func (rs *RankingService) GetEpoch() uint16 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state.Admin.Epoch
}

func (rs *RankingService) IsPaused() bool {
	return rs.paused.Load()
}

func (rs *RankingService) GetDailySeed(day uint32) uint64 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state.Admin.DailySeeds[day]
}

func (rs *RankingService) GetPlayersTotal() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.state.Current().Players)
}

// authorize is the single guard for every admin operation.
func (rs *RankingService) authorize(caller string) error {
	if caller == "" || caller != rs.state.Admin.Owner {
		return models.ErrNotAuthorized
	}
	return nil
}

func (rs *RankingService) SetPaused(caller string, paused bool) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.authorize(caller); err != nil {
		return err
	}
	rs.state.Admin.Paused = paused
	rs.paused.Store(paused)
	return nil
}

// ResetEpoch starts a new season: all best/total/leaderboard reads behave as
// freshly initialized while old-epoch data stays intact in the snapshot.
func (rs *RankingService) ResetEpoch(caller string) (uint16, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.authorize(caller); err != nil {
		return 0, err
	}
	epoch := rs.state.BumpEpoch()
	rs.paused.Store(false)
	return epoch, nil
}

func (rs *RankingService) SetOwner(caller, newOwner string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.authorize(caller); err != nil {
		return err
	}
	if newOwner == "" {
		return models.ErrInvalidInput
	}
	rs.state.Admin.Owner = newOwner
	return nil
}

func (rs *RankingService) SetDailySeed(caller string, day uint32, seed uint64) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.authorize(caller); err != nil {
		return err
	}
	rs.state.Admin.DailySeeds[day] = seed
	return nil
}

// Migrate is the code/version migration hook. It verifies the loaded snapshot
// format is one this build understands and stamps it current; an unknown
// version aborts with prior state retained.
func (rs *RankingService) Migrate(caller string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.authorize(caller); err != nil {
		return err
	}
	if rs.snapshotVersion > models.SnapshotVersion {
		return models.ErrMigrationFailed
	}
	rs.snapshotVersion = models.SnapshotVersion
	return nil
}

func (rs *RankingService) GetSnapshot() *models.Snapshot {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.state.Snapshot()
}

// PutSnapshot replaces the runtime state from a restored snapshot. The config
// bootstrap owner only applies to a fresh state; a snapshot's owner wins.
func (rs *RankingService) PutSnapshot(snap *models.Snapshot) error {
	if snap.Version > models.SnapshotVersion {
		return models.ErrMigrationFailed
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	state := snap.RankingState()
	if state.Admin.Owner == "" {
		state.Admin.Owner = rs.state.Admin.Owner
	}
	rs.state = state
	rs.snapshotVersion = snap.Version
	rs.paused.Store(state.Admin.Paused)
	return nil
}
