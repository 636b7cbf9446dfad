package models

import (
	"gorm.io/gorm"
)

// Round is one playoff week. Numbers are ordinal and strictly increasing
// (1 = Wild Card, 4 = Super Bowl in the default format). At most one round
// is current at a time; lifecycle transitions are owned by the admin surface,
// the engine only reads them.
type Round struct {
	gorm.Model

	Number uint `gorm:"uniqueIndex"`
	Name   string

	IsCurrent       bool
	IsLocked        bool
	PredictorLocked bool
}
