package models

import (
	"gorm.io/gorm"

	"github.com/shopspring/decimal"
)

type Player struct {
	gorm.Model

	Name     string
	Team     string `gorm:"index"`
	Position string
}

// PlayerStatLine holds the raw statistical fantasy points of one player in
// one round, as delivered by the stat import. Points are non-negative.
type PlayerStatLine struct {
	PlayerID uint `gorm:"primaryKey"`
	RoundID  uint `gorm:"primaryKey"`

	FantasyPoints decimal.Decimal `gorm:"type:numeric(8,2)"`
}
