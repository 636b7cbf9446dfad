package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

const leagueRulesYaml = `
weights:
  - round: 1
    name: Wild Card
    weight: 1.0
  - round: 2
    name: Divisional
    weight: 1.4
  - round: 3
    name: Conference Championship
    weight: 1.8
  - round: 4
    name: Super Bowl
    weight: 2.5
winnerUnit: 100
jackpotUnit: 400
multiplier:
  min: 1
  max: 6
splits:
  kind: table
  spec:
    rows:
      - [100]
      - [60, 40]
      - [45, 33, 22]
      - [40, 30, 20, 10]
`

func TestRulebookParsing(t *testing.T) {
	book, err := Parse([]byte(leagueRulesYaml))
	if err != nil {
		t.Fatal("Failed to parse rulebook:", err)
	}

	if got, want := book.WeightForRound(2), decimal.RequireFromString("1.4"); !got.Equal(want) {
		t.Fatalf("Round 2 weight: got %s, want %s", got, want)
	}
	if got := book.WeightForRound(9); !got.Equal(weightOne) {
		t.Fatalf("Unlisted round weight: got %s, want 1", got)
	}
	if book.RoundName(4) != "Super Bowl" {
		t.Fatalf("Round 4 name: got %q", book.RoundName(4))
	}
	if book.WinnerUnit != 100 || book.AccuracyUnit != 100 || book.JackpotUnit != 400 {
		t.Fatalf("Units: got %d/%d/%d", book.WinnerUnit, book.AccuracyUnit, book.JackpotUnit)
	}

	shares := book.Splits.Policy.Shares(3)
	if want := []int64{4500, 3300, 2200}; !cmp.Equal(shares, want) {
		t.Fatalf("Shares(3): got %v, want %v", shares, want)
	}
}

func TestRulebookDefaults(t *testing.T) {
	book, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatal("Failed to parse empty rulebook:", err)
	}

	if got, want := book.WeightForRound(4), decimal.RequireFromString("2.5"); !got.Equal(want) {
		t.Fatalf("Default round 4 weight: got %s, want %s", got, want)
	}
	if book.Multiplier.Min != 1 || book.Multiplier.Max != 6 {
		t.Fatalf("Default multiplier bounds: got [%d, %d]", book.Multiplier.Min, book.Multiplier.Max)
	}

	rows := [][]int64{
		{10000},
		{6000, 4000},
		{4500, 3300, 2200},
		{4000, 3000, 2000, 1000},
	}
	for _, want := range rows {
		got := book.Splits.Policy.Shares(len(want))
		if !cmp.Equal(got, want) {
			t.Fatalf("Shares(%d): got %v, want %v", len(want), got, want)
		}
	}
}

func TestTableFallsBackToLinearBeyondRows(t *testing.T) {
	book := Default()

	got := book.Splits.Policy.Shares(5)
	if want := []int64{3334, 2667, 2000, 1333, 666}; !cmp.Equal(got, want) {
		t.Fatalf("Shares(5): got %v, want %v", got, want)
	}
}

func TestLinearSharesInvariants(t *testing.T) {
	policy := &LinearSplit{}
	for k := 1; k <= 16; k++ {
		shares := policy.Shares(k)
		if len(shares) != k {
			t.Fatalf("Shares(%d): got %d ranks", k, len(shares))
		}
		var sum int64
		for r, s := range shares {
			sum += s
			if r > 0 && s > shares[r-1] {
				t.Fatalf("Shares(%d) increase at rank %d: %v", k, r+1, shares)
			}
		}
		if sum != PotBasis {
			t.Fatalf("Shares(%d) sum to %d, want %d", k, sum, PotBasis)
		}
	}
}

func TestBrokenRulebooksRejected(t *testing.T) {
	for _, body := range []string{
		"splits:\n  kind: geometric\n",
		"splits:\n  kind: table\n  spec:\n    rows:\n      - [40, 60]\n",
		"splits:\n  kind: table\n  spec:\n    rows:\n      - [50, 30]\n",
		"weights:\n  - round: 1\n    weight: 1.0\n  - round: 1\n    weight: 2.0\n",
		"weights:\n  - round: 2\n    weight: -1.5\n",
		"multiplier:\n  min: 3\n  max: 2\n",
	} {
		if _, err := Parse([]byte(body)); err == nil {
			t.Fatalf("Expected parse failure for %q", body)
		}
	}
}
