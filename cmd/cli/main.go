package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fourthandlong/playoffpool/pkg/client/playoffpool"
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
	endpoint string

	rootCmd = &cobra.Command{
		Use:   "ppool",
		Short: "Playoff pool client",
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dump various info",
	}
)

func newClient() (*playoffpool.Client, error) {
	return playoffpool.NewClient(endpoint, os.Getenv("PLAYOFFPOOL_TOKEN"))
}

func initLogging() {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.ConsoleSeparator = " "
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
	log = unwrap(config.Build())
}

func initCommands() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:8080", "Pool API endpoint")

	dumpCmd.AddCommand(makeDumpStandingsCommand())
	dumpCmd.AddCommand(makeDumpScoresCommand())
	dumpCmd.AddCommand(makeDumpPreviewCommand())
	rootCmd.AddCommand(makeRecalculateCommand())
	rootCmd.AddCommand(dumpCmd)
}

func init() {
	initLogging()
	initCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s", err.Error())
		os.Exit(1)
	}
}
