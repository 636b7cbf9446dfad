package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"moul.io/zapgorm2"

	"github.com/fourthandlong/playoffpool/internal/models"
)

type DataBase struct {
	*gorm.DB
}

type DuplicateKey struct {
	nested error
}

func (e *DuplicateKey) Error() string {
	return e.nested.Error()
}

func (e *DuplicateKey) Unwrap() error {
	return e.nested
}

func IsDuplicateKey(err error) bool {
	duplicateKey := &DuplicateKey{}
	return errors.As(err, &duplicateKey)
}

// gorm does not translate driver errors, so classify by sqlstate.
// https://github.com/go-gorm/gorm/issues/4037
func pgErrorCode(err error) string {
	perr := &pgconn.PgError{}
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == "23505"
}

func isRetryable(err error) bool {
	switch pgErrorCode(err) {
	case "40001", "40P01":
		return true
	}
	return false
}

func OpenDataBase(logger *zap.Logger, dsn string) (*DataBase, error) {
	zapLogger := zapgorm2.New(logger.Named("gorm"))
	zapLogger.SetAsDefault()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: zapLogger,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Round{},
		&models.Game{},
		&models.Player{},
		&models.PlayerStatLine{},
		&models.RosterSlot{},
		&models.PredictorEntry{},
		&models.RosterSpotScore{},
		&models.PredictorPointRow{},
		&models.SettlementRun{},
	)
	if err != nil {
		return nil, err
	}

	return &DataBase{db}, nil
}

func (db *DataBase) AddUser(user *models.User) (*models.User, error) {
	var res models.User
	err := db.FirstOrCreate(&res, user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return &res, nil
}

func (db *DataBase) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *DataBase) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *DataBase) FindUserByTelegramID(id int64) (*models.User, error) {
	var user models.User
	err := db.First(&user, "telegram_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (db *DataBase) SetUserTelegramID(user *models.User) error {
	res := db.Model(user).Update("telegram_id", user.TelegramID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("unknown user %d", user.ID)
	}
	return nil
}

func (db *DataBase) ListUsers() (users []models.User, err error) {
	users = make([]models.User, 0)
	err = db.Order("id").Find(&users).Error
	if err != nil {
		users = nil
	}
	return
}

func (db *DataBase) AddRound(round *models.Round) (*models.Round, error) {
	var res models.Round
	err := db.FirstOrCreate(&res, round).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateKey{err}
		}
		return nil, err
	}
	return &res, nil
}

func (db *DataBase) FindRoundByID(id uint) (*models.Round, error) {
	var round models.Round
	err := db.First(&round, id).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (db *DataBase) FindRoundByNumber(number uint) (*models.Round, error) {
	var round models.Round
	err := db.First(&round, "number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (db *DataBase) ListRounds() (rounds []models.Round, err error) {
	rounds = make([]models.Round, 0)
	err = db.Order("number").Find(&rounds).Error
	if err != nil {
		rounds = nil
	}
	return
}

func (db *DataBase) AddGame(game *models.Game) (*models.Game, error) {
	var res models.Game
	err := db.FirstOrCreate(&res, game).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SetGameFinal records the final score and marks the game settleable.
func (db *DataBase) SetGameFinal(gameID uint, awayScore, homeScore int) error {
	res := db.Model(&models.Game{}).
		Where("id = ?", gameID).
		Updates(map[string]interface{}{
			"away_score_final": awayScore,
			"home_score_final": homeScore,
			"is_final":         true,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return fmt.Errorf("unknown game %d", gameID)
	}
	return nil
}

func (db *DataBase) ListRoundGames(roundID uint) (games []models.Game, err error) {
	games = make([]models.Game, 0)
	err = db.Order("id").Find(&games, "round_id = ?", roundID).Error
	if err != nil {
		games = nil
	}
	return
}

func (db *DataBase) ListGames() (games []models.Game, err error) {
	games = make([]models.Game, 0)
	err = db.Order("id").Find(&games).Error
	if err != nil {
		games = nil
	}
	return
}

func (db *DataBase) AddPlayer(player *models.Player) (*models.Player, error) {
	var res models.Player
	err := db.FirstOrCreate(&res, player).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (db *DataBase) ListPlayers() (players []models.Player, err error) {
	players = make([]models.Player, 0)
	err = db.Order("id").Find(&players).Error
	if err != nil {
		players = nil
	}
	return
}

func (db *DataBase) UpsertStatLine(line *models.PlayerStatLine) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "round_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fantasy_points"}),
	}).Create(line).Error
}

func (db *DataBase) ListRoundStatLines(roundID uint) (lines []models.PlayerStatLine, err error) {
	lines = make([]models.PlayerStatLine, 0)
	err = db.Find(&lines, "round_id = ?", roundID).Error
	if err != nil {
		lines = nil
	}
	return
}

func (db *DataBase) UpsertRosterSlot(slot *models.RosterSlot) error {
	if !models.IsRosterSlot(slot.Slot) {
		return fmt.Errorf("unknown roster slot %q", slot.Slot)
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "round_id"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"player_id"}),
	}).Create(slot).Error
}

func (db *DataBase) ListRoundRosterSlots(roundID uint) (slots []models.RosterSlot, err error) {
	slots = make([]models.RosterSlot, 0)
	err = db.Find(&slots, "round_id = ?", roundID).Error
	if err != nil {
		slots = nil
	}
	return
}

func (db *DataBase) ListRosterSlotsForRounds(roundIDs []uint) (slots []models.RosterSlot, err error) {
	slots = make([]models.RosterSlot, 0)
	if len(roundIDs) == 0 {
		return
	}
	err = db.Find(&slots, "round_id IN ?", roundIDs).Error
	if err != nil {
		slots = nil
	}
	return
}

func (db *DataBase) UpsertPredictorEntry(entry *models.PredictorEntry) error {
	if entry.AwayScorePred < 0 || entry.AwayScorePred > models.MaxPredictedScore ||
		entry.HomeScorePred < 0 || entry.HomeScorePred > models.MaxPredictedScore {
		return fmt.Errorf("predicted score out of range [0, %d]", models.MaxPredictedScore)
	}

	var game models.Game
	if err := db.First(&game, entry.GameID).Error; err != nil {
		return err
	}
	var round models.Round
	if err := db.First(&round, game.RoundID).Error; err != nil {
		return err
	}
	if round.PredictorLocked {
		return fmt.Errorf("predictions of round %d are locked", round.Number)
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"away_score_pred", "home_score_pred", "updated_at"}),
	}).Create(entry).Error
}

func (db *DataBase) ListEntriesForGames(gameIDs []uint) (entries []models.PredictorEntry, err error) {
	entries = make([]models.PredictorEntry, 0)
	if len(gameIDs) == 0 {
		return
	}
	err = db.Find(&entries, "game_id IN ?", gameIDs).Error
	if err != nil {
		entries = nil
	}
	return
}
