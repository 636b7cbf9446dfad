package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func makeDumpStandingsCommand() *cobra.Command {
	var board string

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Dump leaderboard standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpStandings(board)
		},
	}

	cmd.Flags().StringVar(&board, "board", "fantasy", "Board to dump: fantasy or predictor")

	return cmd
}

func dumpStandings(board string) error {
	pool, err := newClient()
	if err != nil {
		return err
	}

	switch board {
	case "fantasy":
		standings, err := pool.LoadFantasyStandings()
		if err != nil {
			return err
		}
		for _, user := range standings.Users {
			fmt.Printf("%s\t%s\n", user.Name, user.Total.StringFixed(2))
		}
	case "predictor":
		standings, err := pool.LoadPredictorStandings()
		if err != nil {
			return err
		}
		for _, user := range standings.Users {
			fmt.Printf("%s\t%s\t$%+.2f\n", user.Name, user.Total.StringFixed(2), user.NetDollars.InexactFloat64())
		}
	default:
		return fmt.Errorf("unknown board %q", board)
	}

	return nil
}
