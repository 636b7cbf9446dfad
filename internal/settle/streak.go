package settle

import (
	"github.com/shopspring/decimal"

	"github.com/fourthandlong/playoffpool/internal/rules"
)

// rosterHistory maps a round number to the set of player ids one user had
// rostered in that round, in any slot.
type rosterHistory = map[uint]map[uint]bool

// StreakBefore counts the consecutive rounds a player stayed on the user's
// roster, walking backward from the round before the given one. The walk
// stops at the first round without the player, so a dropped and later
// re-added player starts over at zero.
func StreakBefore(history rosterHistory, playerID uint, round uint) int64 {
	if round <= 1 {
		return 0
	}

	var streak int64
	for r := round - 1; r >= 1; r-- {
		if !history[r][playerID] {
			break
		}
		streak++
	}
	return streak
}

// MultiplierForStreak converts a streak that already includes the current
// round into the bounded slot multiplier. A freshly added player carries
// streak 1 and multiplies by the lower bound.
func MultiplierForStreak(book *rules.Rulebook, streakWithCurrent int64) int64 {
	return book.ClampMultiplier(streakWithCurrent)
}

// MultiplierFromScore recovers the multiplier of a settled score row from
// its points ratio. Zero base points render as unmultiplied.
func MultiplierFromScore(book *rules.Rulebook, base, multiplied decimal.Decimal) int64 {
	if base.IsZero() {
		return 1
	}
	return book.ClampMultiplier(multiplied.Div(base).Round(0).IntPart())
}
