package web

import (
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/karlseguin/ccache/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/fourthandlong/playoffpool/internal/config"
	"github.com/fourthandlong/playoffpool/internal/database"
	"github.com/fourthandlong/playoffpool/internal/rules"
	"github.com/fourthandlong/playoffpool/internal/settle"
	"github.com/fourthandlong/playoffpool/internal/tgbot"
)

type server struct {
	config *config.Config
	logger *zap.Logger

	db      *database.DataBase
	rules   *rules.Fetcher
	settler *settle.Settler
	bot     *tgbot.Bot

	// Leaderboards are cached per settlement generation: every successful
	// recalculation bumps the counter, so reads never serve rows from before
	// the pass that just finished.
	boards     *ccache.Cache
	generation *atomic.Int64
}

func newServer(
	config *config.Config,
	logger *zap.Logger,
	db *database.DataBase,
	rules *rules.Fetcher,
	settler *settle.Settler,
	bot *tgbot.Bot,
) (*server, error) {
	return &server{
		config:     config,
		logger:     logger,
		db:         db,
		rules:      rules,
		settler:    settler,
		bot:        bot,
		boards:     ccache.New(ccache.Configure().MaxSize(64)),
		generation: atomic.NewInt64(0),
	}, nil
}

func (s *server) isAdminToken(token string) bool {
	for _, known := range s.config.Admin.Tokens {
		if known != "" && known == token {
			return true
		}
	}
	return false
}

func (s *server) run() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))

	if err := setupApiService(s, r); err != nil {
		return err
	}

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})

	s.logger.Info("Starting server", zap.String("bind_address", s.config.Server.ListenAddress))
	return r.Run(s.config.Server.ListenAddress)
}
