package api

import "github.com/fourthandlong/playoffpool/internal/settle"

type RosterPreviewRequest struct {
	User string `json:"user" form:"user"`
}

type RosterPreviewResponse struct {
	Status

	Spots []settle.SpotPreview `json:"spots,omitempty"`
}
