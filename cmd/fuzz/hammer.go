package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/fourthandlong/playoffpool/pkg/client/playoffpool"
)

// snapshotBoards serializes both leaderboards. Settled rows are a pure
// function of the persisted inputs and both projections order their rows
// deterministically, so any two snapshots over unchanged inputs must be
// byte-identical no matter how many passes raced in between.
func snapshotBoards(pool *playoffpool.Client) (string, error) {
	fantasy, err := pool.LoadFantasyStandings()
	if err != nil {
		return "", err
	}
	predictor, err := pool.LoadPredictorStandings()
	if err != nil {
		return "", err
	}

	buf, err := json.Marshal(struct {
		Fantasy   interface{}
		Predictor interface{}
	}{fantasy, predictor})
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func hammer() error {
	pool := unwrap(playoffpool.NewClient(args.Endpoint, os.Getenv("PLAYOFFPOOL_TOKEN")))
	bot := unwrap(NewBot(os.Getenv("TELEGRAM_TOKEN")))

	baseline := ""
	for v := 0; v < args.Volleys; v++ {
		s := semaphore.NewWeighted(args.Workers)
		g := errgroup.Group{}
		for i := 0; i < args.Requests; i++ {
			g.Go(func() error {
				s.Acquire(context.TODO(), 1)
				defer s.Release(1)
				_, err := pool.Recalculate(args.Round)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		snapshot, err := snapshotBoards(pool)
		if err != nil {
			return err
		}
		if baseline == "" {
			baseline = snapshot
		} else if snapshot != baseline {
			bot.Notify(args.TelegramChat, fmt.Sprintf("Settlement hammer: leaderboards diverged on round %d", args.Round))
			return fmt.Errorf("leaderboards diverged after volley %d", v+1)
		}

		log.Info("Volley finished",
			zap.Int("volley", v+1),
			zap.Int("requests", args.Requests),
			zap.Uint("round", args.Round),
		)
	}

	log.Info("Hammer finished", zap.Int("volleys", args.Volleys))
	return nil
}
