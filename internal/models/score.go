package models

// Scoring bounds. Submissions outside these are rejected before any state change.
const (
	MaxTimeSeconds = 86400
	MaxMoveCount   = 500

	baseScore      = 10000
	timeBonusCap   = 6000
	moveBonusCap   = 4000
	maxStreakBonus = 10
)

// ValidateAttempt checks the submission bounds shared by the scoring function
// and the orchestrator.
func ValidateAttempt(timeSeconds uint32, moveCount uint16) error {
	if timeSeconds == 0 || timeSeconds > MaxTimeSeconds {
		return ErrInvalidInput
	}
	if moveCount == 0 || moveCount > MaxMoveCount {
		return ErrInvalidInput
	}
	return nil
}

// Score maps (elapsed time, move count, streak) to points. Integer-only and
// deterministic: faster and shorter games earn time/move bonuses, the streak
// applies a percentage multiplier clamped at 10 distinct days. The maximum
// possible product is 3,000,000, far inside uint64.
func Score(timeSeconds uint32, moveCount uint16, streak uint16) uint64 {
	if streak > maxStreakBonus {
		streak = maxStreakBonus
	}

	var timeBonus uint64
	if penalty := uint64(timeSeconds) * 2; penalty < timeBonusCap {
		timeBonus = timeBonusCap - penalty
	}

	var moveBonus uint64
	if penalty := uint64(moveCount) * 10; penalty < moveBonusCap {
		moveBonus = moveBonusCap - penalty
	}

	multiplierPercent := 100 + uint64(streak)*5
	rawSum := baseScore + timeBonus + moveBonus
	return rawSum * multiplierPercent / 100
}
