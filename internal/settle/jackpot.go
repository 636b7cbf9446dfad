package settle

import (
	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

// jackpotCents awards the exact-score bonus, in centipoints. Each of the P
// perfect entries earns the jackpot unit times (N-P); with nobody perfect
// there is no jackpot, and with everybody perfect the award is zero.
func jackpotCents(book *rules.Rulebook, game *models.Game, entries []models.PredictorEntry) map[uint]int64 {
	cents := make(map[uint]int64, len(entries))

	perfect := make([]uint, 0, 1)
	for i := range entries {
		entry := &entries[i]
		cents[entry.UserID] = 0
		if entry.AwayScorePred == *game.AwayScoreFinal && entry.HomeScorePred == *game.HomeScoreFinal {
			perfect = append(perfect, entry.UserID)
		}
	}

	p, n := int64(len(perfect)), int64(len(entries))
	if p == 0 {
		return cents
	}

	award := book.JackpotUnit * 100 * (n - p)
	for _, id := range perfect {
		cents[id] = award
	}
	return cents
}
