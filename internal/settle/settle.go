package settle

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fourthandlong/playoffpool/internal/database"
	lf "github.com/fourthandlong/playoffpool/internal/logfield"
	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

// Settler drives settlement passes and serves the settled projections.
type Settler struct {
	db     *database.DataBase
	rules  *rules.Fetcher
	logger *zap.Logger
}

func NewSettler(db *database.DataBase, rules *rules.Fetcher, logger *zap.Logger) *Settler {
	return &Settler{db, rules, logger}
}

// ValidationError marks malformed persisted input. A pass failing with it
// wrote nothing and retrying without fixing the data is pointless.
type ValidationError struct {
	nested error
}

func (e *ValidationError) Error() string {
	return e.nested.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.nested
}

func IsValidationError(err error) bool {
	validationError := &ValidationError{}
	return errors.As(err, &validationError)
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{errors.Errorf(format, args...)}
}

// roundInput is everything one pass reads: the round, its games and entries,
// the stat lines, the full player list, and the roster rows of this and all
// earlier rounds for the streak walk.
type roundInput struct {
	round   *models.Round
	rounds  []models.Round
	games   []models.Game
	slots   []models.RosterSlot
	stats   []models.PlayerStatLine
	players []models.Player
	entries []models.PredictorEntry
}

type roundOutput struct {
	spots []models.RosterSpotScore
	rows  []models.PredictorPointRow

	gamesSettled  int
	rostersScored int
}

type RunSummary struct {
	RunID       string
	RoundID     uint
	RoundNumber uint

	GamesSettled  int
	RostersScored int
}

// Recalculate runs one full settlement pass for a round: load, validate,
// compute, and overwrite every derived row of the round in one transaction.
// Reruns over unchanged inputs rewrite identical rows. Every invocation
// leaves a SettlementRun audit row regardless of outcome.
func (s *Settler) Recalculate(ctx context.Context, roundID uint) (*RunSummary, error) {
	round, err := s.db.FindRoundByID(roundID)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to find round %d", roundID)
	}

	book := s.rules.Rulebook()

	run, err := s.db.CreateSettlementRun(round.ID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create settlement run")
	}
	s.logger.Info("Starting settlement",
		lf.RunID(run.ID), lf.RoundID(round.ID), lf.RoundNumber(round.Number))

	summary, err := s.recalculate(ctx, book, round, run)
	if err != nil {
		run.Status = models.SettlementFailed
		run.Error = err.Error()
	} else {
		run.Status = models.SettlementSucceeded
		run.GamesSettled = summary.GamesSettled
		run.RostersScored = summary.RostersScored
	}
	if finishErr := s.db.FinishSettlementRun(run); finishErr != nil {
		s.logger.Error("Failed to finish settlement run", zap.Error(finishErr), lf.RunID(run.ID))
	}

	if err != nil {
		s.logger.Error("Settlement failed", zap.Error(err),
			lf.RunID(run.ID), lf.RoundID(round.ID))
		return nil, err
	}

	s.logger.Info("Settlement succeeded",
		lf.RunID(run.ID),
		lf.RoundID(round.ID),
		zap.Int("games_settled", summary.GamesSettled),
		zap.Int("rosters_scored", summary.RostersScored),
	)
	return summary, nil
}

func (s *Settler) recalculate(ctx context.Context, book *rules.Rulebook, round *models.Round, run *models.SettlementRun) (*RunSummary, error) {
	input, err := s.loadRoundInput(round)
	if err != nil {
		return nil, err
	}

	output, err := computeRound(book, input)
	if err != nil {
		return nil, err
	}

	gameIDs := make([]uint, 0, len(input.games))
	for i := range input.games {
		gameIDs = append(gameIDs, input.games[i].ID)
	}
	if err := s.db.OverwriteRoundScores(ctx, round.ID, gameIDs, output.spots, output.rows); err != nil {
		return nil, errors.Wrap(err, "Failed to write settled rows")
	}

	return &RunSummary{
		RunID:         run.ID,
		RoundID:       round.ID,
		RoundNumber:   round.Number,
		GamesSettled:  output.gamesSettled,
		RostersScored: output.rostersScored,
	}, nil
}

func (s *Settler) loadRoundInput(round *models.Round) (*roundInput, error) {
	rounds, err := s.db.ListRounds()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list rounds")
	}

	games, err := s.db.ListRoundGames(round.ID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list round games")
	}

	historyIDs := make([]uint, 0, len(rounds))
	for i := range rounds {
		if rounds[i].Number <= round.Number {
			historyIDs = append(historyIDs, rounds[i].ID)
		}
	}
	slots, err := s.db.ListRosterSlotsForRounds(historyIDs)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list roster slots")
	}

	stats, err := s.db.ListRoundStatLines(round.ID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list stat lines")
	}

	players, err := s.db.ListPlayers()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list players")
	}

	gameIDs := make([]uint, 0, len(games))
	for i := range games {
		gameIDs = append(gameIDs, games[i].ID)
	}
	entries, err := s.db.ListEntriesForGames(gameIDs)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list predictor entries")
	}

	return &roundInput{
		round:   round,
		rounds:  rounds,
		games:   games,
		slots:   slots,
		stats:   stats,
		players: players,
		entries: entries,
	}, nil
}

// computeRound turns one round's inputs into its full derived row set. It is
// pure: same inputs, same rulebook, same rows.
func computeRound(book *rules.Rulebook, input *roundInput) (*roundOutput, error) {
	players := make(map[uint]*models.Player, len(input.players))
	for i := range input.players {
		players[input.players[i].ID] = &input.players[i]
	}

	if err := validateInput(input, players); err != nil {
		return nil, err
	}

	numbers := make(map[uint]uint, len(input.rounds))
	for i := range input.rounds {
		numbers[input.rounds[i].ID] = input.rounds[i].Number
	}

	histories := make(map[uint]rosterHistory)
	currentSlots := make(map[uint]map[models.Slot]*models.RosterSlot)
	for i := range input.slots {
		slot := &input.slots[i]
		if slot.PlayerID != nil {
			history := histories[slot.UserID]
			if history == nil {
				history = make(rosterHistory)
				histories[slot.UserID] = history
			}
			number := numbers[slot.RoundID]
			if history[number] == nil {
				history[number] = make(map[uint]bool)
			}
			history[number][*slot.PlayerID] = true
		}
		if slot.RoundID == input.round.ID {
			roster := currentSlots[slot.UserID]
			if roster == nil {
				roster = make(map[models.Slot]*models.RosterSlot)
				currentSlots[slot.UserID] = roster
			}
			roster[slot.Slot] = slot
		}
	}

	stats := make(statTable, len(input.stats))
	for i := range input.stats {
		stats[input.stats[i].PlayerID] = input.stats[i].FantasyPoints
	}

	teams := make(teamSet, 2*len(input.games))
	for i := range input.games {
		teams[input.games[i].AwayTeam] = true
		teams[input.games[i].HomeTeam] = true
	}

	output := &roundOutput{}

	userIDs := make([]uint, 0, len(currentSlots))
	for id := range currentSlots {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })
	for _, userID := range userIDs {
		spots := scoreRoster(book, userID, input.round, currentSlots[userID], histories[userID], players, stats, teams)
		output.spots = append(output.spots, spots...)
		output.rostersScored++
	}

	entriesByGame := make(map[uint][]models.PredictorEntry)
	for i := range input.entries {
		entriesByGame[input.entries[i].GameID] = append(entriesByGame[input.entries[i].GameID], input.entries[i])
	}
	for _, entries := range entriesByGame {
		sort.Slice(entries, func(i, j int) bool { return entries[i].UserID < entries[j].UserID })
	}

	for i := range input.games {
		game := &input.games[i]
		if !game.Settleable() {
			continue
		}
		output.rows = append(output.rows, pointRowsForGame(book, input.round, game, entriesByGame[game.ID])...)
		output.gamesSettled++
	}

	return output, nil
}

// validateInput enforces the fatal half of the error taxonomy: structurally
// broken rows abort the pass before anything is computed or written.
func validateInput(input *roundInput, players map[uint]*models.Player) error {
	for i := range input.stats {
		stat := &input.stats[i]
		if stat.FantasyPoints.IsNegative() {
			return validationErrorf("Negative stat line %s for player %d", stat.FantasyPoints, stat.PlayerID)
		}
	}

	held := make(map[uint]map[uint]models.Slot)
	for i := range input.slots {
		slot := &input.slots[i]
		if slot.RoundID != input.round.ID {
			continue
		}
		if !models.IsRosterSlot(slot.Slot) {
			return validationErrorf("Unknown roster slot %q for user %d", slot.Slot, slot.UserID)
		}
		if slot.PlayerID == nil {
			continue
		}
		if _, ok := players[*slot.PlayerID]; !ok {
			return validationErrorf("Roster of user %d references unknown player %d", slot.UserID, *slot.PlayerID)
		}
		roster := held[slot.UserID]
		if roster == nil {
			roster = make(map[uint]models.Slot)
			held[slot.UserID] = roster
		}
		if other, ok := roster[*slot.PlayerID]; ok {
			return validationErrorf("Player %d held twice by user %d, slots %s and %s", *slot.PlayerID, slot.UserID, other, slot.Slot)
		}
		roster[*slot.PlayerID] = slot.Slot
	}

	for i := range input.entries {
		entry := &input.entries[i]
		if entry.AwayScorePred < 0 || entry.AwayScorePred > models.MaxPredictedScore ||
			entry.HomeScorePred < 0 || entry.HomeScorePred > models.MaxPredictedScore {
			return validationErrorf("Predicted score %d:%d of user %d for game %d is outside [0, %d]",
				entry.AwayScorePred, entry.HomeScorePred, entry.UserID, entry.GameID, models.MaxPredictedScore)
		}
	}

	return nil
}
