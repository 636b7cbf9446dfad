package settle

import (
	"github.com/shopspring/decimal"

	"github.com/fourthandlong/playoffpool/internal/models"
)

type FantasyRoundPoints struct {
	RoundID     uint
	RoundNumber uint
	Points      decimal.Decimal
}

type FantasyScores struct {
	UserID   uint
	Username string
	Name     string

	Total  decimal.Decimal
	Rounds []FantasyRoundPoints
}

type FantasyStandings struct {
	Users []*FantasyScores
}

type PredictorGamePoints struct {
	GameID      uint
	RoundID     uint
	RoundNumber uint

	Base     decimal.Decimal
	Weighted decimal.Decimal
}

type PredictorScores struct {
	UserID   uint
	Username string
	Name     string

	Total      decimal.Decimal
	NetDollars decimal.Decimal
	Games      []PredictorGamePoints
}

type PredictorStandings struct {
	Users []*PredictorScores
}

// SpotScoreView is one settled slot as displayed: the multiplier is
// recovered from the stored points ratio.
type SpotScoreView struct {
	Slot       models.Slot
	PlayerID   *uint
	PlayerName string

	BasePoints       decimal.Decimal
	Multiplier       int64
	MultipliedPoints decimal.Decimal
}

type UserRoundScores struct {
	UserID   uint
	Username string
	Name     string

	Spots []SpotScoreView
	Total decimal.Decimal
}

type RoundScores struct {
	RoundID     uint
	RoundNumber uint

	Users []*UserRoundScores
}

// SpotPreview is the live multiplier a slot would settle with right now.
type SpotPreview struct {
	Slot       models.Slot
	PlayerID   *uint
	PlayerName string

	Streak     int64
	Multiplier int64
}
