package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func makeDumpScoresCommand() *cobra.Command {
	var round uint

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Dump settled slot scores of a round",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpScores(round)
		},
	}

	cmd.Flags().UintVar(&round, "round", 0, "Round number")
	check(cmd.MarkFlagRequired("round"))

	return cmd
}

func dumpScores(round uint) error {
	pool, err := newClient()
	if err != nil {
		return err
	}

	scores, err := pool.LoadRoundScores(round)
	if err != nil {
		return err
	}

	for _, user := range scores.Users {
		fmt.Printf("%s\t%s\n", user.Name, user.Total.StringFixed(2))
		for _, spot := range user.Spots {
			fmt.Printf("  %-4s x%d\t%s\t%s\n",
				spot.Slot, spot.Multiplier, spot.MultipliedPoints.StringFixed(2), spot.PlayerName)
		}
	}

	return nil
}
