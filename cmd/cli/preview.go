package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func makeDumpPreviewCommand() *cobra.Command {
	var round uint
	var user string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Dump the live multiplier preview of a roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpPreview(round, user)
		},
	}

	cmd.Flags().UintVar(&round, "round", 0, "Round number")
	cmd.Flags().StringVar(&user, "user", "", "Username")
	check(cmd.MarkFlagRequired("round"))
	check(cmd.MarkFlagRequired("user"))

	return cmd
}

func dumpPreview(round uint, user string) error {
	pool, err := newClient()
	if err != nil {
		return err
	}

	spots, err := pool.LoadRosterPreview(round, user)
	if err != nil {
		return err
	}

	for _, spot := range spots {
		name := spot.PlayerName
		if spot.PlayerID == nil {
			name = "(empty)"
		}
		fmt.Printf("%-4s x%d\tstreak %d\t%s\n", spot.Slot, spot.Multiplier, spot.Streak, name)
	}

	return nil
}
