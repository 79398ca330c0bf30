package models

import "sync"

// MaxBoardEntries bounds every leaderboard scope.
const MaxBoardEntries = 10

// Leaderboard is a bounded, strictly-ordered top-N collection with at most one
// entry per player. Ordering and insertion follow an exact linear scan + shift:
// the positional semantics (replace-before-insert, tie placement) are part of
// the external contract, so this must not be swapped for a heap.
type Leaderboard struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{}
}

// Upsert inserts or replaces the player's entry and returns the rank it landed
// at, or (-1, false) when the entry does not qualify for a full board.
func (lb *Leaderboard) Upsert(e Entry) (int, bool) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	// Each player occupies at most one slot: drop any previous entry first.
	for i := range lb.entries {
		if lb.entries[i].PlayerID == e.PlayerID {
			lb.entries = append(lb.entries[:i], lb.entries[i+1:]...)
			break
		}
	}

	// First slot whose occupant is not strictly better takes the new entry,
	// shifting the tail right and dropping whatever overflows past the cap.
	for i := range lb.entries {
		if !lb.entries[i].BetterThan(e) {
			lb.entries = append(lb.entries, Entry{})
			copy(lb.entries[i+1:], lb.entries[i:])
			lb.entries[i] = e
			if len(lb.entries) > MaxBoardEntries {
				lb.entries = lb.entries[:MaxBoardEntries]
			}
			return i, true
		}
	}

	if len(lb.entries) < MaxBoardEntries {
		lb.entries = append(lb.entries, e)
		return len(lb.entries) - 1, true
	}
	return -1, false
}

// At returns the entry at the given rank (0 = best).
func (lb *Leaderboard) At(rank int) (Entry, bool) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	if rank < 0 || rank >= len(lb.entries) {
		return Entry{}, false
	}
	return lb.entries[rank], true
}

func (lb *Leaderboard) Len() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	return len(lb.entries)
}

// Entries returns a copy of the ordered entries, best first.
func (lb *Leaderboard) Entries() []Entry {
	lb.mu.RLock()
	defer lb.mu.RUnlock()
	out := make([]Entry, len(lb.entries))
	copy(out, lb.entries)
	return out
}

// PutEntries replaces the board content, used when restoring snapshots. The
// sequence is trusted to be ordered; anything past the cap is discarded.
func (lb *Leaderboard) PutEntries(entries []Entry) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if len(entries) > MaxBoardEntries {
		entries = entries[:MaxBoardEntries]
	}
	lb.entries = make([]Entry, len(entries))
	copy(lb.entries, entries)
}
