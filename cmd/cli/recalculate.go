package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func makeRecalculateCommand() *cobra.Command {
	var round uint

	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Recalculate scores of a round",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recalculateRound(round)
		},
	}

	cmd.Flags().UintVar(&round, "round", 0, "Round number")
	check(cmd.MarkFlagRequired("round"))

	return cmd
}

func recalculateRound(round uint) error {
	pool, err := newClient()
	if err != nil {
		return err
	}

	res, err := pool.Recalculate(round)
	if err != nil {
		return err
	}

	log.Info("Recalculated round",
		zap.Uint("round", round),
		zap.String("run_id", res.RunID),
		zap.Int("games_settled", res.GamesSettled),
		zap.Int("rosters_scored", res.RostersScored),
	)

	return nil
}
