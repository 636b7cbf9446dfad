package settle

import (
	"sort"

	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

// accuracyKey orders entries by score-closeness, lower is better, with
// strict priority between the components.
type accuracyKey struct {
	total  int
	spread int
	points int
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func entryAccuracyKey(game *models.Game, entry *models.PredictorEntry) accuracyKey {
	away, home := *game.AwayScoreFinal, *game.HomeScoreFinal
	return accuracyKey{
		total:  abs(entry.AwayScorePred-away) + abs(entry.HomeScorePred-home),
		spread: abs((entry.AwayScorePred - entry.HomeScorePred) - (away - home)),
		points: abs((entry.AwayScorePred + entry.HomeScorePred) - (away + home)),
	}
}

func keyLess(a, b accuracyKey) bool {
	if a.total != b.total {
		return a.total < b.total
	}
	if a.spread != b.spread {
		return a.spread < b.spread
	}
	return a.points < b.points
}

// splitPot divides a pot over ranks by basis point shares, handing leftover
// cents to the best ranks so the parts always sum to the whole.
func splitPot(potCents int64, shares []int64) []int64 {
	out := make([]int64, len(shares))
	left := potCents
	for i, s := range shares {
		out[i] = potCents * s / rules.PotBasis
		left -= out[i]
	}
	for i := int64(0); i < left; i++ {
		out[i]++
	}
	return out
}

// accuracyCents ranks a game's entries by closeness and splits the accuracy
// pot among the top half, in centipoints.
//
// K = floor(N/2) winners share a pot of (N-K) units. Entries tied on all
// three key components share rank: the cents of the rank range they occupy
// are pooled and divided equally across the tied entries, remainder cents to
// the lowest user ids, and later ranks shift down past the whole group.
func accuracyCents(book *rules.Rulebook, game *models.Game, entries []models.PredictorEntry) map[uint]int64 {
	cents := make(map[uint]int64, len(entries))
	for i := range entries {
		cents[entries[i].UserID] = 0
	}

	n := len(entries)
	k := n / 2
	if k == 0 {
		return cents
	}

	type ranked struct {
		userID uint
		key    accuracyKey
	}
	list := make([]ranked, 0, n)
	for i := range entries {
		list = append(list, ranked{entries[i].UserID, entryAccuracyKey(game, &entries[i])})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].key != list[j].key {
			return keyLess(list[i].key, list[j].key)
		}
		return list[i].userID < list[j].userID
	})

	potCents := int64(n-k) * book.AccuracyUnit * 100
	rankCents := splitPot(potCents, book.Splits.Policy.Shares(k))

	for r := 0; r < k; {
		g := r + 1
		for g < n && list[g].key == list[g-1].key {
			g++
		}

		var group int64
		for i := r; i < g && i < k; i++ {
			group += rankCents[i]
		}

		size := int64(g - r)
		per, rem := group/size, group%size
		for i := r; i < g; i++ {
			cents[list[i].userID] = per
			if int64(i-r) < rem {
				cents[list[i].userID]++
			}
		}

		r = g
	}
	return cents
}
