package api

import "github.com/fourthandlong/playoffpool/internal/settle"

type FantasyStandingsResponse struct {
	Status

	Standings *settle.FantasyStandings `json:"standings,omitempty"`
}

type PredictorStandingsResponse struct {
	Status

	Standings *settle.PredictorStandings `json:"standings,omitempty"`
}
