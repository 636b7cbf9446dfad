package api

import "github.com/fourthandlong/playoffpool/internal/settle"

type RoundScoresResponse struct {
	Status

	Scores *settle.RoundScores `json:"scores,omitempty"`
}
