package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
)

var byteOrder = binary.LittleEndian

// snapshotMagic prefixes every binary snapshot so the loader can tell the
// format apart from the legacy JSON files.
var snapshotMagic = [4]byte{'R', 'N', 'K', 'D'}

// HasBinaryMagic reports whether the buffer starts with a binary snapshot.
func HasBinaryMagic(data []byte) bool {
	return len(data) >= len(snapshotMagic) && bytes.Equal(data[:4], snapshotMagic[:])
}

// writeString writes a uint16 length-prefixed UTF-8 string.
func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, byteOrder, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// readString reads a uint16 length-prefixed UTF-8 string.
func readString(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, byteOrder, &length); err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeEntries(w io.Writer, entries []Entry) error {
	if err := binary.Write(w, byteOrder, uint8(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writeString(w, e.PlayerID); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, e.Points); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, e.TimeSeconds); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, e.MoveCount); err != nil {
			return err
		}
	}
	return nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	var count uint8
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return nil, err
	}
	if count > MaxBoardEntries {
		return nil, fmt.Errorf("board length %d exceeds cap", count)
	}
	entries := make([]Entry, count)
	for i := range entries {
		player, err := readString(r)
		if err != nil {
			return nil, err
		}
		entries[i].PlayerID = player
		if err := binary.Read(r, byteOrder, &entries[i].Points); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &entries[i].TimeSeconds); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &entries[i].MoveCount); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func writeLedger(w io.Writer, pl *PlayerLedger) error {
	if err := binary.Write(w, byteOrder, uint32(len(pl.BestPerDay))); err != nil {
		return err
	}
	for day, points := range pl.BestPerDay {
		if err := binary.Write(w, byteOrder, day); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, points); err != nil {
			return err
		}
	}
	if err := binary.Write(w, byteOrder, pl.BestEver); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, pl.TotalPoints); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, pl.StreakCount); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, pl.LastDayPlayed); err != nil {
		return err
	}

	bm := pl.DaysPlayed.Bitmap
	if bm == nil {
		bm = roaring.New()
	}
	raw, err := bm.MarshalBinary()
	if err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint32(len(raw))); err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

func readLedger(r io.Reader) (*PlayerLedger, error) {
	pl := NewPlayerLedger()

	var days uint32
	if err := binary.Read(r, byteOrder, &days); err != nil {
		return nil, err
	}
	for i := uint32(0); i < days; i++ {
		var day uint32
		var points uint64
		if err := binary.Read(r, byteOrder, &day); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &points); err != nil {
			return nil, err
		}
		pl.BestPerDay[day] = points
	}
	if err := binary.Read(r, byteOrder, &pl.BestEver); err != nil {
		return nil, err
	}
	if err := binary.Read(r, byteOrder, &pl.TotalPoints); err != nil {
		return nil, err
	}
	if err := binary.Read(r, byteOrder, &pl.StreakCount); err != nil {
		return nil, err
	}
	if err := binary.Read(r, byteOrder, &pl.LastDayPlayed); err != nil {
		return nil, err
	}

	var bmLen uint32
	if err := binary.Read(r, byteOrder, &bmLen); err != nil {
		return nil, err
	}
	if bmLen > 0 {
		raw := make([]byte, bmLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, err
		}
		if err := pl.DaysPlayed.UnmarshalBinary(raw); err != nil {
			return nil, err
		}
	}
	return pl, nil
}

// WriteBinaryTo serializes the snapshot in the binary format.
func (s *Snapshot) WriteBinaryTo(w io.Writer) error {
	if _, err := w.Write(snapshotMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint16(s.Version)); err != nil {
		return err
	}

	if err := writeString(w, s.Admin.Owner); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, s.Admin.Paused); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, s.Admin.Epoch); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint32(len(s.Admin.DailySeeds))); err != nil {
		return err
	}
	for day, seed := range s.Admin.DailySeeds {
		if err := binary.Write(w, byteOrder, day); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, seed); err != nil {
			return err
		}
	}

	if err := binary.Write(w, byteOrder, uint16(len(s.Epochs))); err != nil {
		return err
	}
	for epoch, eps := range s.Epochs {
		if err := binary.Write(w, byteOrder, epoch); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, uint32(len(eps.Players))); err != nil {
			return err
		}
		for player, pl := range eps.Players {
			if err := writeString(w, player); err != nil {
				return err
			}
			if err := writeLedger(w, pl); err != nil {
				return err
			}
		}
		if err := binary.Write(w, byteOrder, uint32(len(eps.Daily))); err != nil {
			return err
		}
		for day, entries := range eps.Daily {
			if err := binary.Write(w, byteOrder, day); err != nil {
				return err
			}
			if err := writeEntries(w, entries); err != nil {
				return err
			}
		}
		if err := writeEntries(w, eps.AllTime); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, uint32(len(eps.DailyPoints))); err != nil {
			return err
		}
		for day, points := range eps.DailyPoints {
			if err := binary.Write(w, byteOrder, day); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, points); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadSnapshotFrom parses a binary snapshot. A version newer than
// SnapshotVersion is a migration failure: the data belongs to a newer build
// and must not be reinterpreted.
func ReadSnapshotFrom(r io.Reader) (*Snapshot, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != snapshotMagic {
		return nil, fmt.Errorf("not a binary snapshot")
	}

	var version uint16
	if err := binary.Read(r, byteOrder, &version); err != nil {
		return nil, err
	}
	if int(version) > SnapshotVersion {
		return nil, fmt.Errorf("%w: snapshot version %d, supported up to %d",
			ErrMigrationFailed, version, SnapshotVersion)
	}

	s := &Snapshot{Version: int(version)}

	owner, err := readString(r)
	if err != nil {
		return nil, err
	}
	s.Admin.Owner = owner
	if err := binary.Read(r, byteOrder, &s.Admin.Paused); err != nil {
		return nil, err
	}
	if err := binary.Read(r, byteOrder, &s.Admin.Epoch); err != nil {
		return nil, err
	}
	var seeds uint32
	if err := binary.Read(r, byteOrder, &seeds); err != nil {
		return nil, err
	}
	s.Admin.DailySeeds = make(map[uint32]uint64, seeds)
	for i := uint32(0); i < seeds; i++ {
		var day uint32
		var seed uint64
		if err := binary.Read(r, byteOrder, &day); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &seed); err != nil {
			return nil, err
		}
		s.Admin.DailySeeds[day] = seed
	}

	var epochs uint16
	if err := binary.Read(r, byteOrder, &epochs); err != nil {
		return nil, err
	}
	s.Epochs = make(map[uint16]*EpochSnapshot, epochs)
	for i := uint16(0); i < epochs; i++ {
		var epoch uint16
		if err := binary.Read(r, byteOrder, &epoch); err != nil {
			return nil, err
		}
		eps := &EpochSnapshot{
			Players:     make(map[string]*PlayerLedger),
			Daily:       make(map[uint32][]Entry),
			DailyPoints: make(map[uint32]uint64),
		}

		var players uint32
		if err := binary.Read(r, byteOrder, &players); err != nil {
			return nil, err
		}
		for j := uint32(0); j < players; j++ {
			player, err := readString(r)
			if err != nil {
				return nil, err
			}
			pl, err := readLedger(r)
			if err != nil {
				return nil, err
			}
			eps.Players[player] = pl
		}

		var boards uint32
		if err := binary.Read(r, byteOrder, &boards); err != nil {
			return nil, err
		}
		for j := uint32(0); j < boards; j++ {
			var day uint32
			if err := binary.Read(r, byteOrder, &day); err != nil {
				return nil, err
			}
			entries, err := readEntries(r)
			if err != nil {
				return nil, err
			}
			eps.Daily[day] = entries
		}

		allTime, err := readEntries(r)
		if err != nil {
			return nil, err
		}
		eps.AllTime = allTime

		var dailyPoints uint32
		if err := binary.Read(r, byteOrder, &dailyPoints); err != nil {
			return nil, err
		}
		for j := uint32(0); j < dailyPoints; j++ {
			var day uint32
			var points uint64
			if err := binary.Read(r, byteOrder, &day); err != nil {
				return nil, err
			}
			if err := binary.Read(r, byteOrder, &points); err != nil {
				return nil, err
			}
			eps.DailyPoints[day] = points
		}
		s.Epochs[epoch] = eps
	}
	return s, nil
}
