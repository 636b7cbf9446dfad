package web

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fourthandlong/playoffpool/internal/config"
	"github.com/fourthandlong/playoffpool/internal/database"
	"github.com/fourthandlong/playoffpool/internal/rules"
	"github.com/fourthandlong/playoffpool/internal/settle"
	"github.com/fourthandlong/playoffpool/internal/tgbot"
	zlog "github.com/fourthandlong/playoffpool/pkg/log"
)

func makeDSN(conf *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		conf.DataBase.Host,
		conf.DataBase.Port,
		conf.DataBase.User,
		conf.DataBase.Pass,
		conf.DataBase.Name,
	)
}

func Run(logger *zap.Logger) error {
	conf, err := config.ParseConfig()
	if err != nil {
		return err
	}

	// The bootstrap logger from main serves until the config is known; with a
	// log file configured the production logger with rotation takes over.
	if conf.Log.Path != "" {
		logger = zlog.InitProd(&zlog.FileConfig{
			Path:       conf.Log.Path,
			MaxSizeMB:  conf.Log.MaxSizeMB,
			MaxBackups: conf.Log.MaxBackups,
			MaxAgeDays: conf.Log.MaxAgeDays,
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.OpenDataBase(logger, makeDSN(conf))
	if err != nil {
		return errors.Wrap(err, "Failed to open database")
	}

	fetcher, err := rules.NewFetcher(conf, logger.Named("rules"))
	if err != nil {
		return errors.Wrap(err, "Failed to load rulebook")
	}
	go fetcher.Run(ctx)

	settler := settle.NewSettler(db, fetcher, logger.Named("settle"))

	bot, err := tgbot.NewBot(conf, logger.Named("tgbot"), db, settler)
	if err != nil {
		return errors.Wrap(err, "Failed to create telegram bot")
	}
	if bot != nil {
		go bot.Run(ctx)
	}

	s, err := newServer(conf, logger, db, fetcher, settler, bot)
	if err != nil {
		return errors.Wrap(err, "Failed to start server")
	}

	return errors.Wrap(s.run(), "Server failed")
}
