package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func unwrap[T any](value T, err error) T {
	check(err)
	return value
}

var (
	args struct {
		Endpoint     string
		Round        uint
		Requests     int
		Workers      int64
		Volleys      int
		Seed         int64
		Users        int
		Teams        int
		TelegramChat int64
	}

	RootCmd = &cobra.Command{
		Use:   "fuzz",
		Short: "Hammer the settlement engine",
	}

	SeedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Seed a fake league into the database",
		RunE: func(cmd *cobra.Command, _args []string) error {
			return seedLeague()
		},
	}

	HammerCmd = &cobra.Command{
		Use:   "hammer",
		Short: "Fire concurrent recalculations and compare leaderboards",
		RunE: func(cmd *cobra.Command, _args []string) error {
			return hammer()
		},
	}
)

func initLogging() {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.ConsoleSeparator = " "
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
	log = unwrap(config.Build())
}

func initCommands() {
	RootCmd.PersistentFlags().StringVar(&args.Endpoint, "endpoint", "http://localhost:8080", "Pool API endpoint")
	RootCmd.PersistentFlags().Int64Var(&args.TelegramChat, "telegram-chat", 0, "Chat to notify about failures")

	SeedCmd.Flags().Int64Var(&args.Seed, "seed", 42, "Faker seed")
	SeedCmd.Flags().IntVar(&args.Users, "users", 12, "Number of fake users")
	SeedCmd.Flags().IntVar(&args.Teams, "teams", 14, "Number of fake teams")

	HammerCmd.Flags().UintVar(&args.Round, "round", 1, "Round number to recalculate")
	HammerCmd.Flags().IntVar(&args.Requests, "requests", 32, "Recalculations per volley")
	HammerCmd.Flags().Int64Var(&args.Workers, "workers", 8, "Concurrent requests in flight")
	HammerCmd.Flags().IntVar(&args.Volleys, "volleys", 4, "Number of volleys")

	RootCmd.AddCommand(SeedCmd)
	RootCmd.AddCommand(HammerCmd)
}

func init() {
	initLogging()
	initCommands()
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s", err.Error())
		os.Exit(1)
	}
}
