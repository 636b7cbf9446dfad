package settle

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fourthandlong/playoffpool/internal/rules"
)

func rosters(rounds map[uint][]uint) rosterHistory {
	history := make(rosterHistory, len(rounds))
	for number, players := range rounds {
		history[number] = make(map[uint]bool, len(players))
		for _, id := range players {
			history[number][id] = true
		}
	}
	return history
}

func checkStreak(t *testing.T, history rosterHistory, playerID, round uint, expected int64) {
	streak := StreakBefore(history, playerID, round)
	if streak != expected {
		t.Fatalf("Invalid streak of player %d before round %d: %d, expected: %d", playerID, round, streak, expected)
	}
}

func TestStreakWalk(t *testing.T) {
	history := rosters(map[uint][]uint{
		1: {10, 11},
		2: {10},
		3: {10, 11},
	})

	checkStreak(t, history, 10, 1, 0) // the first round has no past
	checkStreak(t, history, 10, 2, 1)
	checkStreak(t, history, 10, 4, 3) // held through all three rounds
	checkStreak(t, history, 11, 2, 1)
	checkStreak(t, history, 11, 3, 0) // dropped in round 2, streak resets
	checkStreak(t, history, 11, 4, 1) // re-added in round 3, starts over
	checkStreak(t, history, 99, 4, 0) // never rostered
}

func TestMultiplierBounds(t *testing.T) {
	book := rules.Default()

	for streak, expected := range map[int64]int64{1: 1, 2: 2, 5: 5, 6: 6, 9: 6} {
		multiplier := MultiplierForStreak(book, streak)
		if multiplier != expected {
			t.Fatalf("Invalid multiplier for streak %d: %d, expected: %d", streak, multiplier, expected)
		}
	}

	custom, err := rules.Parse([]byte("multiplier:\n  min: 2\n  max: 4\n"))
	if err != nil {
		t.Fatal("Failed to parse rulebook:", err)
	}
	if got := MultiplierForStreak(custom, 1); got != 2 {
		t.Fatalf("Invalid floored multiplier: %d, expected: 2", got)
	}
	if got := MultiplierForStreak(custom, 7); got != 4 {
		t.Fatalf("Invalid capped multiplier: %d, expected: 4", got)
	}
}

func TestMultiplierRecoveredFromScore(t *testing.T) {
	book := rules.Default()

	check := func(base, multiplied string, expected int64) {
		got := MultiplierFromScore(book, decimal.RequireFromString(base), decimal.RequireFromString(multiplied))
		if got != expected {
			t.Fatalf("Invalid multiplier of %s over %s: %d, expected: %d", multiplied, base, got, expected)
		}
	}

	check("12.50", "12.50", 1)
	check("12.50", "37.50", 3)
	check("0", "0", 1) // empty and scoreless slots render unmultiplied
	check("0.01", "0.06", 6)
}
