package settle

import (
	"sort"

	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

// actualWinner mirrors PredictedWinner for the final score: negative for an
// away win, positive for a home win, zero for a tie.
func actualWinner(game *models.Game) int {
	switch {
	case *game.AwayScoreFinal > *game.HomeScoreFinal:
		return -1
	case *game.AwayScoreFinal < *game.HomeScoreFinal:
		return 1
	default:
		return 0
	}
}

// winnerCents scores the winner pick of every entry, in centipoints.
//
// With C of N entries picking the actual winner: nobody correct pays nothing,
// a correct majority earns the flat unit each, and a correct minority splits
// the complement pot (N-C) times the unit. Remainder cents of the minority
// split go to the lowest user ids, keeping the distributed total exact.
func winnerCents(book *rules.Rulebook, game *models.Game, entries []models.PredictorEntry) map[uint]int64 {
	cents := make(map[uint]int64, len(entries))
	winner := actualWinner(game)

	correct := make([]uint, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		cents[entry.UserID] = 0
		if winner != 0 && entry.PredictedWinner() == winner {
			correct = append(correct, entry.UserID)
		}
	}
	sort.Slice(correct, func(i, j int) bool { return correct[i] < correct[j] })

	n, c := int64(len(entries)), int64(len(correct))
	if c == 0 {
		return cents
	}

	unitCents := book.WinnerUnit * 100
	if 2*c >= n {
		for _, id := range correct {
			cents[id] = unitCents
		}
		return cents
	}

	total := (n - c) * unitCents
	per, rem := total/c, total%c
	for i, id := range correct {
		cents[id] = per
		if int64(i) < rem {
			cents[id]++
		}
	}
	return cents
}
