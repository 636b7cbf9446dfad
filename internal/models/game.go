package models

import (
	"time"

	"gorm.io/gorm"
)

type Game struct {
	gorm.Model

	RoundID uint `gorm:"index"`

	AwayTeam string
	HomeTeam string

	KickoffAt      *time.Time
	AwayScoreFinal *int
	HomeScoreFinal *int
	IsFinal        bool
}

// Settleable reports whether the game may enter settlement: marked final
// with both scores present.
func (g *Game) Settleable() bool {
	return g.IsFinal && g.AwayScoreFinal != nil && g.HomeScoreFinal != nil
}
