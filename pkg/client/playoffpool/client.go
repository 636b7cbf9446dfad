package playoffpool

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fourthandlong/playoffpool/api"
	"github.com/fourthandlong/playoffpool/internal/settle"
)

type Client struct {
	client *resty.Client
	token  string
}

// NewClient builds a pool API client. Retried recalculations are safe since
// settlement is idempotent on the server side.
func NewClient(endpoint, token string) (*Client, error) {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(time.Second * 10).
		SetRetryCount(3)

	client.Header.Add("Token", token)

	return &Client{client, token}, nil
}

func (c *Client) Recalculate(round uint) (*api.RecalculateResponse, error) {
	res := &api.RecalculateResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetBody(api.RecalculateRequest{
			Token: c.token,
			Round: round,
		}).
		Post("/api/recalculate")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to recalculate round %d: %s", round, res.Error)
	}

	return res, nil
}

func (c *Client) LoadFantasyStandings() (*settle.FantasyStandings, error) {
	res := &api.FantasyStandingsResponse{}
	_, err := c.client.R().
		SetResult(res).
		Get("/api/leaderboard/fantasy")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch fantasy standings: %s", res.Error)
	}

	return res.Standings, nil
}

func (c *Client) LoadPredictorStandings() (*settle.PredictorStandings, error) {
	res := &api.PredictorStandingsResponse{}
	_, err := c.client.R().
		SetResult(res).
		Get("/api/leaderboard/predictor")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch predictor standings: %s", res.Error)
	}

	return res.Standings, nil
}

func (c *Client) LoadRoundScores(round uint) (*settle.RoundScores, error) {
	res := &api.RoundScoresResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetPathParam("round", fmt.Sprint(round)).
		Get("/api/rounds/{round}/scores")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch round %d scores: %s", round, res.Error)
	}

	return res.Scores, nil
}

func (c *Client) LoadRosterPreview(round uint, user string) ([]settle.SpotPreview, error) {
	res := &api.RosterPreviewResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetPathParam("round", fmt.Sprint(round)).
		SetQueryParam("user", user).
		Get("/api/rounds/{round}/preview")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch roster preview: %s", res.Error)
	}

	return res.Spots, nil
}
