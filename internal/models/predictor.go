package models

import (
	"time"
)

// PredictorEntry is a user's predicted final score for one game. Both scores
// are integers in [0, 99]; rows are mutable by their owner only until the
// game locks.
type PredictorEntry struct {
	GameID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID uint `gorm:"primaryKey;autoIncrement:false"`

	AwayScorePred int
	HomeScorePred int

	CreatedAt time.Time
	UpdatedAt time.Time
}

const MaxPredictedScore = 99

// PredictedWinner returns the side the entry picks: negative for away,
// positive for home, zero for a predicted tie (which never counts as a
// correct winner pick).
func (e *PredictorEntry) PredictedWinner() int {
	switch {
	case e.AwayScorePred > e.HomeScorePred:
		return -1
	case e.AwayScorePred < e.HomeScorePred:
		return 1
	default:
		return 0
	}
}
