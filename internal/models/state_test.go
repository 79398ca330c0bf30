package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRankingState_Defaults(t *testing.T) {
	rs := NewRankingState("owner-1")

	assert.Equal(t, "owner-1", rs.Admin.Owner)
	assert.False(t, rs.Admin.Paused)
	assert.Equal(t, uint16(0), rs.Admin.Epoch)
	assert.NotNil(t, rs.Current())
}

func TestBumpEpoch_ResetsViewKeepsHistory(t *testing.T) {
	rs := NewRankingState("owner-1")
	rs.Current().Ledger("alice").RecordAttempt(20240101, 20349)
	rs.Current().DailyBoard(20240101).Upsert(Entry{PlayerID: "alice", Points: 20349})
	rs.Admin.Paused = true

	epoch := rs.BumpEpoch()

	require.Equal(t, uint16(1), epoch)
	assert.False(t, rs.Admin.Paused)

	// New epoch reads behave freshly initialized.
	assert.Empty(t, rs.Current().Players)
	assert.Empty(t, rs.Current().Daily)
	assert.Equal(t, 0, rs.Current().AllTime.Len())

	// Old epoch data stays reachable under its key.
	old := rs.Epochs[0]
	require.NotNil(t, old)
	assert.Equal(t, uint64(20349), old.Players["alice"].TotalPoints)
	assert.Equal(t, 1, old.Daily[20240101].Len())
}

func TestEpochState_LedgerCreatedOnFirstUse(t *testing.T) {
	es := NewEpochState()
	pl := es.Ledger("bob")
	require.NotNil(t, pl)
	assert.Same(t, pl, es.Ledger("bob"))
	assert.Len(t, es.Players, 1)
}

func TestEpochState_DailyBoardCreatedOnFirstUse(t *testing.T) {
	es := NewEpochState()
	board := es.DailyBoard(20240101)
	require.NotNil(t, board)
	assert.Same(t, board, es.DailyBoard(20240101))
}
