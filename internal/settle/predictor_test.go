package settle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

func finalGame(awayScore, homeScore int) *models.Game {
	return &models.Game{
		AwayTeam:       "BUF",
		HomeTeam:       "KC",
		AwayScoreFinal: &awayScore,
		HomeScoreFinal: &homeScore,
		IsFinal:        true,
	}
}

func entry(user uint, away, home int) models.PredictorEntry {
	return models.PredictorEntry{UserID: user, AwayScorePred: away, HomeScorePred: home}
}

func checkCents(t *testing.T, cents, expected map[uint]int64) {
	if !cmp.Equal(cents, expected) {
		t.Fatalf("Invalid cents: %v, expected: %v", cents, expected)
	}
}

func TestWinnerPickNobodyCorrect(t *testing.T) {
	book := rules.Default()

	cents := winnerCents(book, finalGame(27, 24), []models.PredictorEntry{
		entry(1, 10, 20), // picked home
		entry(2, 17, 17), // predicted a tie, never counts as a pick
	})
	checkCents(t, cents, map[uint]int64{1: 0, 2: 0})

	cents = winnerCents(book, finalGame(17, 17), []models.PredictorEntry{
		entry(1, 17, 17),
		entry(2, 20, 10),
	})
	checkCents(t, cents, map[uint]int64{1: 0, 2: 0}) // tied games pay no winner pick at all
}

func TestWinnerPickMajorityEarnsFlatUnit(t *testing.T) {
	book := rules.Default()

	cents := winnerCents(book, finalGame(27, 24), []models.PredictorEntry{
		entry(1, 30, 20),
		entry(2, 21, 17),
		entry(3, 14, 28),
	})
	checkCents(t, cents, map[uint]int64{1: 10000, 2: 10000, 3: 0})
}

func TestWinnerPickMinoritySplitsComplement(t *testing.T) {
	book := rules.Default()

	cents := winnerCents(book, finalGame(27, 24), []models.PredictorEntry{
		entry(1, 30, 20),
		entry(2, 30, 24),
		entry(3, 14, 28),
		entry(4, 10, 24),
		entry(5, 21, 24),
		entry(6, 0, 3),
		entry(7, 13, 27),
	})
	// 2 of 7 correct, so each splits (7-2) x 100 points two ways.
	checkCents(t, cents, map[uint]int64{
		1: 25000, 2: 25000,
		3: 0, 4: 0, 5: 0, 6: 0, 7: 0,
	})
}

func TestWinnerPickSplitRemainderToLowestIds(t *testing.T) {
	book := rules.Default()

	cents := winnerCents(book, finalGame(7, 3), []models.PredictorEntry{
		entry(4, 20, 10),
		entry(2, 21, 14),
		entry(9, 28, 0),
		entry(1, 0, 14),
		entry(3, 7, 10),
		entry(5, 3, 9),
		entry(6, 10, 17),
	})
	// 3 of 7 correct: the 40000 cent pot leaves one cent over, which goes
	// to the lowest correct user id.
	checkCents(t, cents, map[uint]int64{
		2: 13334, 4: 13333, 9: 13333,
		1: 0, 3: 0, 5: 0, 6: 0,
	})
}

func TestAccuracyPotPaysTopHalf(t *testing.T) {
	book := rules.Default()

	cents := accuracyCents(book, finalGame(24, 20), []models.PredictorEntry{
		entry(1, 24, 21), // off by 1
		entry(2, 23, 17), // off by 4
		entry(3, 27, 17), // off by 6
		entry(4, 14, 28),
		entry(5, 3, 0),
		entry(6, 45, 45),
		entry(7, 10, 42),
	})
	// K = 3 of 7 split a (7-3) x 100 point pot 45/33/22.
	checkCents(t, cents, map[uint]int64{
		1: 18000, 2: 13200, 3: 8800,
		4: 0, 5: 0, 6: 0, 7: 0,
	})
}

func TestAccuracyCloserSpreadThenPointsBreakTies(t *testing.T) {
	book := rules.Default()
	game := finalGame(20, 30)

	cents := accuracyCents(book, game, []models.PredictorEntry{
		entry(5, 24, 34), // total miss 8, spread exact
		entry(2, 25, 33), // total miss 8, spread off by 2
	})
	checkCents(t, cents, map[uint]int64{5: 10000, 2: 0})

	cents = accuracyCents(book, game, []models.PredictorEntry{
		entry(9, 23, 29), // total miss 4, spread off 4, points off 2
		entry(4, 24, 30), // total miss 4, spread off 4, points off 4
	})
	checkCents(t, cents, map[uint]int64{9: 10000, 4: 0})
}

func TestAccuracyTiesPoolRankCents(t *testing.T) {
	book := rules.Default()

	cents := accuracyCents(book, finalGame(24, 20), []models.PredictorEntry{
		entry(1, 24, 20),
		entry(2, 24, 20),
		entry(3, 24, 20),
		entry(4, 21, 20),
		entry(5, 14, 10),
		entry(6, 30, 30),
		entry(7, 0, 0),
	})
	// Three entries tie for ranks 1-3 and split the pooled 40000 cents,
	// remainder cent to the lowest user id.
	checkCents(t, cents, map[uint]int64{
		1: 13334, 2: 13333, 3: 13333,
		4: 0, 5: 0, 6: 0, 7: 0,
	})
}

func TestAccuracyTieStraddlesPayLine(t *testing.T) {
	book := rules.Default()

	cents := accuracyCents(book, finalGame(28, 24), []models.PredictorEntry{
		entry(1, 28, 24),
		entry(2, 30, 20),
		entry(3, 30, 20),
		entry(4, 0, 0),
	})
	// K = 2: the tie at ranks 2-3 pools only rank 2 cents, so both tied
	// entries get half of it and rank 4 stays unpaid.
	checkCents(t, cents, map[uint]int64{1: 12000, 2: 4000, 3: 4000, 4: 0})
}

func TestAccuracyPotConservation(t *testing.T) {
	book := rules.Default()
	game := finalGame(24, 20)

	for n := 1; n <= 12; n++ {
		entries := make([]models.PredictorEntry, 0, n)
		for i := 0; i < n; i++ {
			entries = append(entries, entry(uint(i+1), 24+i, 20+2*i))
		}

		cents := accuracyCents(book, game, entries)
		var sum int64
		for _, c := range cents {
			sum += c
		}

		k := n / 2
		want := int64(n-k) * book.AccuracyUnit * 100
		if k == 0 {
			want = 0
		}
		if sum != want {
			t.Fatalf("Pot of %d entries sums to %d cents, expected: %d", n, sum, want)
		}
	}
}

func TestJackpotPerfectScores(t *testing.T) {
	book := rules.Default()
	game := finalGame(31, 9)

	cents := jackpotCents(book, game, []models.PredictorEntry{
		entry(1, 31, 9),
		entry(2, 31, 9),
		entry(3, 24, 10),
		entry(4, 0, 0),
	})
	// Each perfect entry earns 400 x (4-2) = 800 points.
	checkCents(t, cents, map[uint]int64{1: 80000, 2: 80000, 3: 0, 4: 0})

	everyone := []models.PredictorEntry{entry(1, 31, 9), entry(2, 31, 9)}
	checkCents(t, jackpotCents(book, game, everyone), map[uint]int64{1: 0, 2: 0}) // all perfect pays nothing

	nobody := []models.PredictorEntry{entry(1, 10, 9), entry(2, 31, 10)}
	checkCents(t, jackpotCents(book, game, nobody), map[uint]int64{1: 0, 2: 0})
}

func checkRow(t *testing.T, row *models.PredictorPointRow, user uint, base, weighted string) {
	if row.UserID != user {
		t.Fatalf("Invalid row user: %d, expected: %d", row.UserID, user)
	}
	if want := decimal.RequireFromString(base); !row.BasePoints.Equal(want) {
		t.Fatalf("Invalid base points of user %d: %s, expected: %s", user, row.BasePoints, want)
	}
	if want := decimal.RequireFromString(weighted); !row.WeightedPoints.Equal(want) {
		t.Fatalf("Invalid weighted points of user %d: %s, expected: %s", user, row.WeightedPoints, want)
	}
}

func TestPointRowsStackAndWeigh(t *testing.T) {
	book := rules.Default()
	round := &models.Round{Number: 2} // weight 1.4
	game := finalGame(27, 24)
	game.ID = 7

	rows := pointRowsForGame(book, round, game, []models.PredictorEntry{
		entry(1, 27, 24), // perfect: winner + full accuracy pot + jackpot
		entry(2, 20, 24),
		entry(3, 3, 0),
	})
	if len(rows) != 3 {
		t.Fatalf("Invalid row count: %d, expected: 3", len(rows))
	}

	// Winner majority pays 100 flat to users 1 and 3, the K=1 accuracy pot
	// of 200 and the 400 x 2 jackpot go to user 1 alone.
	checkRow(t, &rows[0], 1, "1100", "1540")
	checkRow(t, &rows[1], 2, "0", "0")
	checkRow(t, &rows[2], 3, "100", "140")

	for i := range rows {
		if rows[i].GameID != 7 {
			t.Fatalf("Invalid row game: %d, expected: 7", rows[i].GameID)
		}
	}
}

func TestPointRowsWithoutEntries(t *testing.T) {
	book := rules.Default()
	round := &models.Round{Number: 1}

	if rows := pointRowsForGame(book, round, finalGame(10, 7), nil); rows != nil {
		t.Fatalf("Expected no rows, got %d", len(rows))
	}
}
