package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedState() *RankingState {
	rs := NewRankingState("owner-1")
	rs.Admin.DailySeeds[20240101] = 0xDEADBEEF

	es := rs.Current()
	alice := es.Ledger("alice")
	alice.AdvanceStreak(20240101)
	alice.RecordAttempt(20240101, 20349)
	es.DailyPoints[20240101] = 20349
	es.DailyBoard(20240101).Upsert(Entry{PlayerID: "alice", Points: 20349, TimeSeconds: 60, MoveCount: 50})
	es.AllTime.Upsert(Entry{PlayerID: "alice", Points: 20349, TimeSeconds: 60, MoveCount: 50})

	rs.BumpEpoch()
	es = rs.Current()
	bob := es.Ledger("bob")
	bob.AdvanceStreak(20240201)
	bob.RecordAttempt(20240201, 15000)
	return rs
}

func TestSnapshot_RoundtripPreservesState(t *testing.T) {
	rs := populatedState()
	restored := rs.Snapshot().RankingState()

	assert.Equal(t, rs.Admin, restored.Admin)
	require.Len(t, restored.Epochs, 2)

	old := restored.Epochs[0]
	require.NotNil(t, old)
	assert.Equal(t, uint64(20349), old.Players["alice"].BestPerDay[20240101])
	assert.Equal(t, uint16(1), old.Players["alice"].StreakCount)
	assert.Equal(t, uint64(20349), old.DailyPoints[20240101])
	require.Equal(t, 1, old.Daily[20240101].Len())
	top, _ := old.Daily[20240101].At(0)
	assert.Equal(t, "alice", top.PlayerID)
	assert.Equal(t, 1, old.AllTime.Len())

	current := restored.Epochs[1]
	require.NotNil(t, current)
	assert.Equal(t, uint64(15000), current.Players["bob"].TotalPoints)
}

func TestSnapshot_VersionStamped(t *testing.T) {
	snap := NewRankingState("o").Snapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)
}

func TestRankingState_RebuildsMissingDayBitmap(t *testing.T) {
	// Ledgers restored from pre-bitmap sources get DaysPlayed reconstructed
	// from their best-per-day keys.
	snap := &Snapshot{
		Version: 1,
		Admin:   AdminState{Owner: "o"},
		Epochs: map[uint16]*EpochSnapshot{
			0: {
				Players: map[string]*PlayerLedger{
					"carol": {
						BestPerDay:    map[uint32]uint64{20240101: 100, 20240103: 200},
						TotalPoints:   300,
						StreakCount:   2,
						LastDayPlayed: 20240103,
					},
				},
			},
		},
	}

	rs := snap.RankingState()
	carol := rs.Epochs[0].Players["carol"]
	assert.Equal(t, 2, carol.DaysPlayedCount())
	assert.True(t, carol.DaysPlayed.Contains(20240103))
}

func TestLegacySnapshot_MigratesToEpochZero(t *testing.T) {
	legacy := &LegacySnapshot{
		Owner:  "old-owner",
		Paused: true,
		Players: map[string]*PlayerLedger{
			"dave": {
				BestPerDay:  map[uint32]uint64{20230101: 500},
				TotalPoints: 500,
			},
		},
		Daily: map[uint32][]Entry{
			20230101: {{PlayerID: "dave", Points: 500}},
		},
		AllTime:     []Entry{{PlayerID: "dave", Points: 500}},
		DailyPoints: map[uint32]uint64{20230101: 500},
	}

	snap := legacy.Migrate()
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Equal(t, "old-owner", snap.Admin.Owner)
	assert.True(t, snap.Admin.Paused)
	assert.Equal(t, uint16(0), snap.Admin.Epoch)
	require.NotNil(t, snap.Epochs[0])
	assert.Equal(t, uint64(500), snap.Epochs[0].Players["dave"].TotalPoints)
}
