package api

type RecalculateRequest struct {
	Token string `json:"token" form:"token"`
	Round uint   `json:"round" form:"round"`
}

type RecalculateResponse struct {
	Status

	RunID         string `json:"run_id,omitempty"`
	GamesSettled  int    `json:"games_settled"`
	RostersScored int    `json:"rosters_scored"`
}
