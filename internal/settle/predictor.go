package settle

import (
	"github.com/shopspring/decimal"

	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

// pointRowsForGame settles one finalized game: winner, accuracy and jackpot
// points stack additively per entry, then the round weight scales the sum.
// Every entry of the game gets a row, zero-point ones included. Entries are
// expected sorted by user id so reruns emit rows in the same order.
func pointRowsForGame(book *rules.Rulebook, round *models.Round, game *models.Game, entries []models.PredictorEntry) []models.PredictorPointRow {
	if len(entries) == 0 {
		return nil
	}

	winner := winnerCents(book, game, entries)
	accuracy := accuracyCents(book, game, entries)
	jackpot := jackpotCents(book, game, entries)
	weight := book.WeightForRound(round.Number)

	rows := make([]models.PredictorPointRow, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		base := decimal.New(winner[entry.UserID]+accuracy[entry.UserID]+jackpot[entry.UserID], -2)
		rows = append(rows, models.PredictorPointRow{
			GameID:         game.ID,
			UserID:         entry.UserID,
			BasePoints:     base,
			WeightedPoints: base.Mul(weight),
		})
	}
	return rows
}
