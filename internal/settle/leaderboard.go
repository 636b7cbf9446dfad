package settle

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fourthandlong/playoffpool/internal/models"
)

var pointsPerDollar = decimal.NewFromInt(100)

// netDollars converts a user's weighted total into money against the group
// average. Summed over all users the results cancel out up to cent rounding.
func netDollars(total, average decimal.Decimal) decimal.Decimal {
	return total.Sub(average).Div(pointsPerDollar).Round(2)
}

// CalcFantasyStandings projects every settled roster spot score into per-user
// round subtotals and running totals.
func (s *Settler) CalcFantasyStandings() (*FantasyStandings, error) {
	users, err := s.db.ListUsers()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list users")
	}
	rounds, err := s.db.ListRounds()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list rounds")
	}
	spots, err := s.db.ListAllSpotScores()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list spot scores")
	}

	perRound := make(map[uint]map[uint]decimal.Decimal, len(users))
	for i := range spots {
		spot := &spots[i]
		byRound := perRound[spot.UserID]
		if byRound == nil {
			byRound = make(map[uint]decimal.Decimal)
			perRound[spot.UserID] = byRound
		}
		byRound[spot.RoundID] = byRound[spot.RoundID].Add(spot.MultipliedPoints)
	}

	standings := &FantasyStandings{Users: make([]*FantasyScores, 0, len(users))}
	for i := range users {
		user := &users[i]
		scores := &FantasyScores{
			UserID:   user.ID,
			Username: user.Username,
			Name:     user.Name(),
			Rounds:   make([]FantasyRoundPoints, 0, len(rounds)),
		}
		for j := range rounds {
			round := &rounds[j]
			points, ok := perRound[user.ID][round.ID]
			if !ok {
				continue
			}
			scores.Rounds = append(scores.Rounds, FantasyRoundPoints{
				RoundID:     round.ID,
				RoundNumber: round.Number,
				Points:      points,
			})
			scores.Total = scores.Total.Add(points)
		}
		standings.Users = append(standings.Users, scores)
	}

	sortStandings(standings.Users, func(u *FantasyScores) decimal.Decimal { return u.Total }, func(u *FantasyScores) string { return u.Name })
	return standings, nil
}

// CalcPredictorStandings projects settled predictor rows into totals and the
// net dollar view. Net dollars measure each user against the group average,
// so they sum to zero up to rounding.
func (s *Settler) CalcPredictorStandings() (*PredictorStandings, error) {
	users, err := s.db.ListUsers()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list users")
	}
	rounds, err := s.db.ListRounds()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list rounds")
	}
	games, err := s.db.ListGames()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list games")
	}
	rows, err := s.db.ListAllPointRows()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list point rows")
	}

	numbers := make(map[uint]uint, len(rounds))
	for i := range rounds {
		numbers[rounds[i].ID] = rounds[i].Number
	}
	gameRounds := make(map[uint]uint, len(games))
	for i := range games {
		gameRounds[games[i].ID] = games[i].RoundID
	}

	perUser := make(map[uint][]PredictorGamePoints, len(users))
	for i := range rows {
		row := &rows[i]
		roundID := gameRounds[row.GameID]
		perUser[row.UserID] = append(perUser[row.UserID], PredictorGamePoints{
			GameID:      row.GameID,
			RoundID:     roundID,
			RoundNumber: numbers[roundID],
			Base:        row.BasePoints,
			Weighted:    row.WeightedPoints,
		})
	}

	standings := &PredictorStandings{Users: make([]*PredictorScores, 0, len(users))}
	var groupTotal decimal.Decimal
	for i := range users {
		user := &users[i]
		scores := &PredictorScores{
			UserID:   user.ID,
			Username: user.Username,
			Name:     user.Name(),
			Games:    perUser[user.ID],
		}
		for _, game := range scores.Games {
			scores.Total = scores.Total.Add(game.Weighted)
		}
		groupTotal = groupTotal.Add(scores.Total)
		standings.Users = append(standings.Users, scores)
	}

	if len(standings.Users) > 0 {
		average := groupTotal.Div(decimal.NewFromInt(int64(len(standings.Users))))
		for _, scores := range standings.Users {
			scores.NetDollars = netDollars(scores.Total, average)
		}
	}

	sortStandings(standings.Users, func(u *PredictorScores) decimal.Decimal { return u.Total }, func(u *PredictorScores) string { return u.Name })
	return standings, nil
}

// CalcRoundScores renders a settled round slot by slot. Users without stored
// spot scores for the round are absent: only settled rows are shown.
func (s *Settler) CalcRoundScores(roundNumber uint) (*RoundScores, error) {
	round, err := s.db.FindRoundByNumber(roundNumber)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to find round %d", roundNumber)
	}

	users, err := s.db.ListUsers()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list users")
	}
	players, err := s.db.ListPlayers()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list players")
	}
	slots, err := s.db.ListRoundRosterSlots(round.ID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list roster slots")
	}
	spots, err := s.db.ListRoundSpotScores(round.ID)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list spot scores")
	}

	book := s.rules.Rulebook()

	names := make(map[uint]*models.User, len(users))
	for i := range users {
		names[users[i].ID] = &users[i]
	}
	playerByID := make(map[uint]*models.Player, len(players))
	for i := range players {
		playerByID[players[i].ID] = &players[i]
	}

	type slotKey struct {
		userID uint
		slot   models.Slot
	}
	assigned := make(map[slotKey]*uint, len(slots))
	for i := range slots {
		assigned[slotKey{slots[i].UserID, slots[i].Slot}] = slots[i].PlayerID
	}

	bySlot := make(map[slotKey]*models.RosterSpotScore, len(spots))
	userIDs := make([]uint, 0, len(users))
	seen := make(map[uint]bool)
	for i := range spots {
		spot := &spots[i]
		bySlot[slotKey{spot.UserID, spot.Slot}] = spot
		if !seen[spot.UserID] {
			seen[spot.UserID] = true
			userIDs = append(userIDs, spot.UserID)
		}
	}

	scores := &RoundScores{
		RoundID:     round.ID,
		RoundNumber: round.Number,
		Users:       make([]*UserRoundScores, 0, len(userIDs)),
	}
	for _, userID := range userIDs {
		userScores := &UserRoundScores{
			UserID: userID,
			Spots:  make([]SpotScoreView, 0, len(models.RosterSlots)),
		}
		if user := names[userID]; user != nil {
			userScores.Username = user.Username
			userScores.Name = user.Name()
		}
		for _, name := range models.RosterSlots {
			spot := bySlot[slotKey{userID, name}]
			if spot == nil {
				continue
			}
			view := SpotScoreView{
				Slot:             name,
				PlayerID:         assigned[slotKey{userID, name}],
				BasePoints:       spot.BasePoints,
				Multiplier:       MultiplierFromScore(book, spot.BasePoints, spot.MultipliedPoints),
				MultipliedPoints: spot.MultipliedPoints,
			}
			if view.PlayerID != nil {
				if player := playerByID[*view.PlayerID]; player != nil {
					view.PlayerName = player.Name
				}
			}
			userScores.Spots = append(userScores.Spots, view)
			userScores.Total = userScores.Total.Add(spot.MultipliedPoints)
		}
		scores.Users = append(scores.Users, userScores)
	}

	sortStandings(scores.Users, func(u *UserRoundScores) decimal.Decimal { return u.Total }, func(u *UserRoundScores) string { return u.Name })
	return scores, nil
}

func sortStandings[T any](users []*T, total func(*T) decimal.Decimal, name func(*T) string) {
	sort.Slice(users, func(i, j int) bool {
		if cmp := total(users[i]).Cmp(total(users[j])); cmp != 0 {
			return cmp > 0
		}
		return name(users[i]) < name(users[j])
	})
}
