package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func checkBracket(t *testing.T, teams int, expected []int) {
	if got := bracketGames(teams); !cmp.Equal(got, expected) {
		t.Fatalf("Invalid bracket for %d teams: %v, expected: %v", teams, got, expected)
	}
}

func TestBracketFitsTeamCount(t *testing.T) {
	checkBracket(t, 14, []int{6, 4, 2, 1}) // the default seed
	checkBracket(t, 12, []int{6, 4, 2, 1}) // exactly enough for the full shape
	checkBracket(t, 8, []int{4, 4, 2, 1})
	checkBracket(t, 5, []int{2, 2, 2, 1})
	checkBracket(t, 2, []int{1, 1, 1, 1})
	checkBracket(t, 1, []int{0, 0, 0, 0})
	checkBracket(t, 0, []int{0, 0, 0, 0})
}

func TestBracketNeverOutgrowsTeams(t *testing.T) {
	for teams := 0; teams <= 40; teams++ {
		for number, games := range bracketGames(teams) {
			if 2*games > teams {
				t.Fatalf("Round %d schedules %d games for %d teams", number+1, games, teams)
			}
		}
	}
}
