package models

import (
	"github.com/shopspring/decimal"
)

// Derived rows below are owned exclusively by the settlement engine and are
// rewritten wholesale on every pass. They carry no timestamps and no
// surrogate ids so that two passes over unchanged inputs produce identical
// rows.

// RosterSpotScore is the settled score of one roster slot:
// MultipliedPoints = BasePoints × streak multiplier. The multiplier itself is
// not stored; settled rounds recover it from the points ratio.
type RosterSpotScore struct {
	UserID  uint `gorm:"primaryKey;autoIncrement:false"`
	RoundID uint `gorm:"primaryKey;autoIncrement:false"`
	Slot    Slot `gorm:"primaryKey"`

	BasePoints       decimal.Decimal `gorm:"type:numeric(8,2)"`
	MultipliedPoints decimal.Decimal `gorm:"type:numeric(10,2)"`
}

// PredictorPointRow is the settled predictor outcome of one (user, game):
// BasePoints = winner + accuracy + jackpot points, WeightedPoints =
// BasePoints × round weight.
type PredictorPointRow struct {
	GameID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID uint `gorm:"primaryKey;autoIncrement:false"`

	BasePoints     decimal.Decimal `gorm:"type:numeric(12,4)"`
	WeightedPoints decimal.Decimal `gorm:"type:numeric(12,4)"`
}
