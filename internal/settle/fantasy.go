package settle

import (
	"github.com/shopspring/decimal"

	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

// statTable maps a player id to the raw fantasy points of their stat line.
type statTable = map[uint]decimal.Decimal

// teamSet holds the teams playing in a round; players of other teams are
// ineligible and score zero.
type teamSet = map[string]bool

// scoreRoster materializes all nine spot scores of one user's round roster.
// Empty slots, unknown stat lines and ineligible players all produce zero
// base points; assigned eligible players get base points times the streak
// multiplier.
func scoreRoster(
	book *rules.Rulebook,
	userID uint,
	round *models.Round,
	slots map[models.Slot]*models.RosterSlot,
	history rosterHistory,
	players map[uint]*models.Player,
	stats statTable,
	teams teamSet,
) []models.RosterSpotScore {
	spots := make([]models.RosterSpotScore, 0, len(models.RosterSlots))
	for _, name := range models.RosterSlots {
		spot := models.RosterSpotScore{
			UserID:  userID,
			RoundID: round.ID,
			Slot:    name,
		}

		if slot := slots[name]; slot != nil && slot.PlayerID != nil {
			player := players[*slot.PlayerID]
			if player != nil && teams[player.Team] {
				streak := StreakBefore(history, player.ID, round.Number) + 1
				multiplier := MultiplierForStreak(book, streak)
				spot.BasePoints = stats[player.ID]
				spot.MultipliedPoints = spot.BasePoints.Mul(decimal.NewFromInt(multiplier))
			}
		}

		spots = append(spots, spot)
	}
	return spots
}
