package models

import "errors"

// Rejection reasons. Every rejection is a whole-transaction abort: the caller
// observes no partial ledger or leaderboard mutation after any of these.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPaused          = errors.New("submissions paused")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrMigrationFailed = errors.New("migration failed")
)
