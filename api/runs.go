package api

import "github.com/fourthandlong/playoffpool/internal/models"

type SettlementRunsResponse struct {
	Status

	Runs []models.SettlementRun `json:"runs,omitempty"`
}
