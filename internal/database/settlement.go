package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fourthandlong/playoffpool/internal/models"
)

const overwriteRetries = 5

// overwriteRetryable classifies a failed overwrite attempt. Besides the
// transient sqlstates, a duplicate key here can only mean a concurrent pass
// over the same round committed between our delete and insert: the delete
// ran against a snapshot without the winner's rows. The next attempt sees
// them, so the later pass wins instead of failing.
func overwriteRetryable(err error) bool {
	return isRetryable(err) || isUniqueViolation(err)
}

// OverwriteRoundScores replaces every derived row of a round in one
// transaction: all roster spot scores of the round and all predictor point
// rows of the round's games are deleted and the freshly computed rows
// inserted. Serialization, deadlock and duplicate key failures are retried
// with backoff, anything else aborts immediately.
func (db *DataBase) OverwriteRoundScores(
	ctx context.Context,
	roundID uint,
	gameIDs []uint,
	spots []models.RosterSpotScore,
	rows []models.PredictorPointRow,
) error {
	operation := func() error {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("round_id = ?", roundID).Delete(&models.RosterSpotScore{}).Error; err != nil {
				return err
			}
			if len(gameIDs) > 0 {
				if err := tx.Where("game_id IN ?", gameIDs).Delete(&models.PredictorPointRow{}).Error; err != nil {
					return err
				}
			}
			if len(spots) > 0 {
				if err := tx.Create(&spots).Error; err != nil {
					return err
				}
			}
			if len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil && !overwriteRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), overwriteRetries), ctx)
	return backoff.Retry(operation, policy)
}

func (db *DataBase) ListRoundSpotScores(roundID uint) (spots []models.RosterSpotScore, err error) {
	spots = make([]models.RosterSpotScore, 0)
	err = db.Order("user_id, slot").Find(&spots, "round_id = ?", roundID).Error
	if err != nil {
		spots = nil
	}
	return
}

func (db *DataBase) ListAllSpotScores() (spots []models.RosterSpotScore, err error) {
	spots = make([]models.RosterSpotScore, 0)
	err = db.Order("user_id, round_id, slot").Find(&spots).Error
	if err != nil {
		spots = nil
	}
	return
}

func (db *DataBase) ListPointRowsForGames(gameIDs []uint) (rows []models.PredictorPointRow, err error) {
	rows = make([]models.PredictorPointRow, 0)
	if len(gameIDs) == 0 {
		return
	}
	err = db.Order("game_id, user_id").Find(&rows, "game_id IN ?", gameIDs).Error
	if err != nil {
		rows = nil
	}
	return
}

func (db *DataBase) ListAllPointRows() (rows []models.PredictorPointRow, err error) {
	rows = make([]models.PredictorPointRow, 0)
	err = db.Order("game_id, user_id").Find(&rows).Error
	if err != nil {
		rows = nil
	}
	return
}

func (db *DataBase) CreateSettlementRun(roundID uint) (*models.SettlementRun, error) {
	run := &models.SettlementRun{
		ID:        uuid.New().String(),
		RoundID:   roundID,
		Status:    models.SettlementRunning,
		StartedAt: time.Now(),
	}
	if err := db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (db *DataBase) FinishSettlementRun(run *models.SettlementRun) error {
	now := time.Now()
	run.FinishedAt = &now
	return db.Model(run).
		Updates(map[string]interface{}{
			"status":         run.Status,
			"error":          run.Error,
			"games_settled":  run.GamesSettled,
			"rosters_scored": run.RostersScored,
			"finished_at":    run.FinishedAt,
		}).Error
}

func (db *DataBase) ListSettlementRuns(limit int) (runs []models.SettlementRun, err error) {
	runs = make([]models.SettlementRun, 0)
	err = db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		runs = nil
	}
	return
}
