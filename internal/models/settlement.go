package models

import (
	"time"
)

const (
	SettlementRunning   = "running"
	SettlementSucceeded = "succeeded"
	SettlementFailed    = "failed"
)

type SettlementStatus = string

// SettlementRun is the audit trail of one recalculation pass. It is not a
// derived score row; reruns append new entries.
type SettlementRun struct {
	ID      string `gorm:"primaryKey"`
	RoundID uint   `gorm:"index"`

	Status SettlementStatus
	Error  string

	GamesSettled  int
	RostersScored int

	StartedAt  time.Time
	FinishedAt *time.Time
}
