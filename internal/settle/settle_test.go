package settle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

func testRound(id, number uint, name string) models.Round {
	round := models.Round{Number: number, Name: name}
	round.ID = id
	return round
}

func testGame(id, roundID uint, away, home string, awayScore, homeScore int) models.Game {
	game := models.Game{
		RoundID:        roundID,
		AwayTeam:       away,
		HomeTeam:       home,
		AwayScoreFinal: &awayScore,
		HomeScoreFinal: &homeScore,
		IsFinal:        true,
	}
	game.ID = id
	return game
}

func testPlayer(id uint, name, team, position string) models.Player {
	player := models.Player{Name: name, Team: team, Position: position}
	player.ID = id
	return player
}

func slotRow(user, roundID uint, slot models.Slot, playerID uint) models.RosterSlot {
	id := playerID
	return models.RosterSlot{UserID: user, RoundID: roundID, Slot: slot, PlayerID: &id}
}

func statLine(playerID, roundID uint, points string) models.PlayerStatLine {
	return models.PlayerStatLine{PlayerID: playerID, RoundID: roundID, FantasyPoints: decimal.RequireFromString(points)}
}

// divisionalFixture is a two-round world settling its second round: user 7
// kept their quarterback from the wild card week, user 8 swapped theirs.
func divisionalFixture() *roundInput {
	round := testRound(2, 2, "Divisional")

	pending := testGame(22, 2, "DET", "SF", 0, 0)
	pending.IsFinal = false
	pending.AwayScoreFinal = nil
	pending.HomeScoreFinal = nil

	return &roundInput{
		round:  &round,
		rounds: []models.Round{testRound(1, 1, "Wild Card"), round},
		games:  []models.Game{testGame(21, 2, "BUF", "KC", 27, 24), pending},
		slots: []models.RosterSlot{
			slotRow(7, 1, models.SlotQB, 1),
			slotRow(8, 1, models.SlotQB, 1),
			slotRow(7, 2, models.SlotQB, 1),
			slotRow(7, 2, models.SlotRB1, 3),
			slotRow(7, 2, models.SlotWR1, 4),
			slotRow(8, 2, models.SlotQB, 2),
		},
		stats: []models.PlayerStatLine{
			statLine(1, 2, "18.50"),
			statLine(2, 2, "22"),
			statLine(3, 2, "7.25"),
			statLine(4, 2, "9.99"),
		},
		players: []models.Player{
			testPlayer(1, "Rex Strong", "BUF", "QB"),
			testPlayer(2, "Cannon Doyle", "KC", "QB"),
			testPlayer(3, "Moose Barrett", "KC", "RB"),
			testPlayer(4, "Flash Reyes", "SEA", "WR"),
		},
		entries: []models.PredictorEntry{
			{GameID: 21, UserID: 7, AwayScorePred: 27, HomeScorePred: 24},
			{GameID: 21, UserID: 8, AwayScorePred: 20, HomeScorePred: 17},
			{GameID: 22, UserID: 7, AwayScorePred: 21, HomeScorePred: 14},
		},
	}
}

func checkSpot(t *testing.T, spots []models.RosterSpotScore, user uint, slot models.Slot, base, multiplied string) {
	for i := range spots {
		spot := &spots[i]
		if spot.UserID != user || spot.Slot != slot {
			continue
		}
		if want := decimal.RequireFromString(base); !spot.BasePoints.Equal(want) {
			t.Fatalf("Invalid base points of user %d slot %s: %s, expected: %s", user, slot, spot.BasePoints, want)
		}
		if want := decimal.RequireFromString(multiplied); !spot.MultipliedPoints.Equal(want) {
			t.Fatalf("Invalid multiplied points of user %d slot %s: %s, expected: %s", user, slot, spot.MultipliedPoints, want)
		}
		return
	}
	t.Fatalf("No settled spot for user %d slot %s", user, slot)
}

func TestSettleDivisionalRound(t *testing.T) {
	book := rules.Default()

	output, err := computeRound(book, divisionalFixture())
	if err != nil {
		t.Fatal("Settlement failed:", err)
	}

	if output.gamesSettled != 1 || output.rostersScored != 2 {
		t.Fatalf("Settled %d games and %d rosters, expected 1 and 2", output.gamesSettled, output.rostersScored)
	}
	if len(output.spots) != 2*len(models.RosterSlots) {
		t.Fatalf("Invalid spot count: %d, expected: %d", len(output.spots), 2*len(models.RosterSlots))
	}

	checkSpot(t, output.spots, 7, models.SlotQB, "18.50", "37")   // second straight round, doubled
	checkSpot(t, output.spots, 7, models.SlotRB1, "7.25", "7.25") // fresh pick
	checkSpot(t, output.spots, 7, models.SlotWR1, "0", "0")       // SEA is not playing this round
	checkSpot(t, output.spots, 7, models.SlotTE, "0", "0")        // empty slot
	checkSpot(t, output.spots, 8, models.SlotQB, "22", "22")      // swapped quarterback, streak starts over

	if len(output.rows) != 2 {
		t.Fatalf("Invalid point row count: %d, expected: 2", len(output.rows))
	}
	checkRow(t, &output.rows[0], 7, "600", "840")
	checkRow(t, &output.rows[1], 8, "100", "140")
	for i := range output.rows {
		if output.rows[i].GameID != 21 {
			t.Fatalf("Point row written for game %d, expected only the finalized 21", output.rows[i].GameID)
		}
	}
}

func TestSettleRewritesIdenticalRows(t *testing.T) {
	book := rules.Default()

	first, err := computeRound(book, divisionalFixture())
	if err != nil {
		t.Fatal("Settlement failed:", err)
	}
	second, err := computeRound(book, divisionalFixture())
	if err != nil {
		t.Fatal("Settlement failed:", err)
	}

	if !cmp.Equal(first.spots, second.spots) {
		t.Fatal("Spot rows differ between reruns:", cmp.Diff(first.spots, second.spots))
	}
	if !cmp.Equal(first.rows, second.rows) {
		t.Fatal("Point rows differ between reruns:", cmp.Diff(first.rows, second.rows))
	}
}

func TestSettleIgnoresEarlierRoundsJunk(t *testing.T) {
	book := rules.Default()

	// A leftover row of a past round with a retired slot name must not
	// gate settlement of the current one.
	input := divisionalFixture()
	input.slots = append(input.slots, models.RosterSlot{UserID: 9, RoundID: 1, Slot: "BENCH"})

	output, err := computeRound(book, input)
	if err != nil {
		t.Fatal("Settlement failed:", err)
	}
	if output.rostersScored != 2 {
		t.Fatalf("Scored %d rosters, expected 2", output.rostersScored)
	}
}

func TestSettleRejectsBrokenInput(t *testing.T) {
	book := rules.Default()

	for _, tc := range []struct {
		name    string
		corrupt func(*roundInput)
	}{
		{"player held twice", func(in *roundInput) {
			in.slots = append(in.slots, slotRow(7, 2, models.SlotFlex, 1))
		}},
		{"unknown slot", func(in *roundInput) {
			in.slots = append(in.slots, slotRow(7, 2, "BENCH", 3))
		}},
		{"unknown player", func(in *roundInput) {
			in.slots = append(in.slots, slotRow(8, 2, models.SlotRB2, 99))
		}},
		{"prediction above limit", func(in *roundInput) {
			in.entries = append(in.entries, models.PredictorEntry{GameID: 21, UserID: 9, AwayScorePred: 120, HomeScorePred: 3})
		}},
		{"negative prediction", func(in *roundInput) {
			in.entries = append(in.entries, models.PredictorEntry{GameID: 21, UserID: 9, AwayScorePred: -1, HomeScorePred: 3})
		}},
		{"negative stat line", func(in *roundInput) {
			in.stats = append(in.stats, statLine(2, 2, "-0.5"))
		}},
	} {
		input := divisionalFixture()
		tc.corrupt(input)

		_, err := computeRound(book, input)
		if err == nil {
			t.Fatalf("Expected settlement failure: %s", tc.name)
		}
		if !IsValidationError(err) {
			t.Fatalf("Error of %q is not a validation error: %v", tc.name, err)
		}
	}
}

func TestNetDollarsCancelOut(t *testing.T) {
	totals := []decimal.Decimal{
		decimal.RequireFromString("1234.56"),
		decimal.RequireFromString("700"),
		decimal.Zero,
		decimal.RequireFromString("2065.44"),
	}

	var sum decimal.Decimal
	for _, total := range totals {
		sum = sum.Add(total)
	}
	average := sum.Div(decimal.NewFromInt(int64(len(totals))))

	if got, want := netDollars(totals[0], average), decimal.RequireFromString("2.35"); !got.Equal(want) {
		t.Fatalf("Invalid net dollars: %s, expected: %s", got, want)
	}

	var net decimal.Decimal
	for _, total := range totals {
		net = net.Add(netDollars(total, average))
	}
	if !net.IsZero() {
		t.Fatalf("Net dollars sum to %s, expected zero", net)
	}
}
