package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fourthandlong/playoffpool/api"
	lf "github.com/fourthandlong/playoffpool/internal/logfield"
	"github.com/fourthandlong/playoffpool/internal/settle"
)

type apiService struct {
	webService
}

func setupApiService(server *server, r *gin.Engine) error {
	s := apiService{webService{server, server.config, server.logger}}

	r.POST("/api/recalculate", s.recalculate)
	r.GET("/api/leaderboard/fantasy", s.fantasyStandings)
	r.GET("/api/leaderboard/predictor", s.predictorStandings)
	r.GET("/api/rounds/:round/scores", s.roundScores)
	r.GET("/api/rounds/:round/preview", s.rosterPreview)
	r.GET("/api/runs", s.settlementRuns)

	return nil
}

func (s apiService) recalculate(c *gin.Context) {
	s.log.Info("Handling recalculation request")
	onError := func(code int, err error) {
		s.log.Warn("Failed to process recalculation request", zap.Error(err))
		c.JSON(code, &api.RecalculateResponse{
			Status: api.Status{Error: err.Error()},
		})
	}

	req := api.RecalculateRequest{}
	if err := c.BindJSON(&req); err != nil {
		onError(http.StatusBadRequest, err)
		return
	}

	if !s.server.isAdminToken(req.Token) {
		s.log.Warn("Unknown token", lf.Token(req.Token))
		onError(http.StatusUnauthorized, fmt.Errorf("Invalid or expired token"))
		return
	}

	round, err := s.server.db.FindRoundByNumber(req.Round)
	if err != nil {
		onError(http.StatusNotFound, fmt.Errorf("Unknown round %d", req.Round))
		return
	}

	summary, err := s.server.settler.Recalculate(c.Request.Context(), round.ID)
	if err != nil {
		code := http.StatusInternalServerError
		if settle.IsValidationError(err) {
			code = http.StatusUnprocessableEntity
		}
		onError(code, err)
		return
	}

	s.server.generation.Inc()
	if err := s.server.bot.AnnounceSettlement(summary); err != nil {
		s.log.Warn("Failed to announce settlement", zap.Error(err), lf.RunID(summary.RunID))
	}

	c.JSON(http.StatusOK, &api.RecalculateResponse{
		Status:        api.Status{Ok: true},
		RunID:         summary.RunID,
		GamesSettled:  summary.GamesSettled,
		RostersScored: summary.RostersScored,
	})
}

const boardCacheTTL = time.Minute

// cachedBoard serves a leaderboard projection from the per-generation cache,
// recomputing it at most once per TTL within one generation.
func cachedBoard[T any](s *server, name string, calc func() (*T, error)) (*T, error) {
	key := fmt.Sprintf("%s@%d", name, s.generation.Load())
	if item := s.boards.Get(key); item != nil && !item.Expired() {
		return item.Value().(*T), nil
	}

	board, err := calc()
	if err != nil {
		return nil, err
	}

	ttl := boardCacheTTL
	if s.config.PullIntervals.Leaderboard != nil {
		ttl = *s.config.PullIntervals.Leaderboard
	}
	s.boards.Set(key, board, ttl)
	return board, nil
}

func (s apiService) fantasyStandings(c *gin.Context) {
	standings, err := cachedBoard(s.server, "fantasy", s.server.settler.CalcFantasyStandings)
	if err != nil {
		s.log.Error("Failed to calc fantasy standings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, &api.FantasyStandingsResponse{
			Status: api.Status{Error: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, &api.FantasyStandingsResponse{
		Status:    api.Status{Ok: true},
		Standings: standings,
	})
}

func (s apiService) predictorStandings(c *gin.Context) {
	standings, err := cachedBoard(s.server, "predictor", s.server.settler.CalcPredictorStandings)
	if err != nil {
		s.log.Error("Failed to calc predictor standings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, &api.PredictorStandingsResponse{
			Status: api.Status{Error: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, &api.PredictorStandingsResponse{
		Status:    api.Status{Ok: true},
		Standings: standings,
	})
}

func (s apiService) roundScores(c *gin.Context) {
	onError := func(code int, err error) {
		s.log.Warn("Failed to load round scores", zap.Error(err))
		c.JSON(code, &api.RoundScoresResponse{
			Status: api.Status{Error: err.Error()},
		})
	}

	number, err := strconv.Atoi(c.Param("round"))
	if err != nil {
		onError(http.StatusBadRequest, err)
		return
	}

	scores, err := s.server.settler.CalcRoundScores(uint(number))
	if err != nil {
		onError(http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, &api.RoundScoresResponse{
		Status: api.Status{Ok: true},
		Scores: scores,
	})
}

func (s apiService) rosterPreview(c *gin.Context) {
	onError := func(code int, err error) {
		s.log.Warn("Failed to build roster preview", zap.Error(err))
		c.JSON(code, &api.RosterPreviewResponse{
			Status: api.Status{Error: err.Error()},
		})
	}

	number, err := strconv.Atoi(c.Param("round"))
	if err != nil {
		onError(http.StatusBadRequest, err)
		return
	}

	req := api.RosterPreviewRequest{}
	if err := c.BindQuery(&req); err != nil {
		onError(http.StatusBadRequest, err)
		return
	}

	user, err := s.server.db.FindUserByUsername(req.User)
	if err != nil {
		onError(http.StatusNotFound, fmt.Errorf("Unknown user %q", req.User))
		return
	}

	s.log.Info("Building roster preview",
		lf.Username(user.Username),
		lf.RoundNumber(uint(number)),
	)

	spots, err := s.server.settler.PreviewRoster(user.ID, uint(number))
	if err != nil {
		onError(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, &api.RosterPreviewResponse{
		Status: api.Status{Ok: true},
		Spots:  spots,
	})
}

func (s apiService) settlementRuns(c *gin.Context) {
	onError := func(code int, err error) {
		s.log.Warn("Failed to list settlement runs", zap.Error(err))
		c.JSON(code, &api.SettlementRunsResponse{
			Status: api.Status{Error: err.Error()},
		})
	}

	token := c.GetHeader("Token")
	if !s.server.isAdminToken(token) {
		s.log.Warn("Unknown token", lf.Token(token))
		onError(http.StatusUnauthorized, fmt.Errorf("Invalid or expired token"))
		return
	}

	runs, err := s.server.db.ListSettlementRuns(20)
	if err != nil {
		onError(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, &api.SettlementRunsResponse{
		Status: api.Status{Ok: true},
		Runs:   runs,
	})
}
