package main

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fourthandlong/playoffpool/internal/config"
	"github.com/fourthandlong/playoffpool/internal/database"
	"github.com/fourthandlong/playoffpool/internal/models"
	"github.com/fourthandlong/playoffpool/internal/rules"
)

// A seeded league is a small playoff bracket: each round halves the field,
// every game is already final, every user fills all nine slots and predicts
// every game. Seeding is idempotent for a fixed faker seed.
var gamesPerRound = []int{6, 4, 2, 1}

var teamPositions = []string{"QB", "RB", "RB", "WR", "WR", "WR", "TE", "K", "DEF"}

func makeDSN(conf *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		conf.DataBase.Host,
		conf.DataBase.Port,
		conf.DataBase.User,
		conf.DataBase.Pass,
		conf.DataBase.Name,
	)
}

type seeder struct {
	db    *database.DataBase
	faker *gofakeit.Faker
	book  *rules.Rulebook

	users      []*models.User
	teams      []string
	byTeam     map[string][]*models.Player
	byPlayerID map[uint]*models.Player
	rounds     []*models.Round
	games      map[uint][]*models.Game
}

func seedLeague() error {
	conf := unwrap(config.ParseConfig())
	db := unwrap(database.OpenDataBase(log, makeDSN(conf)))

	s := &seeder{
		db:         db,
		faker:      gofakeit.New(args.Seed),
		book:       rules.Default(),
		byTeam:     make(map[string][]*models.Player),
		byPlayerID: make(map[uint]*models.Player),
		games:      make(map[uint][]*models.Game),
	}

	s.seedUsers()
	s.seedTeams()
	s.seedRounds()
	s.seedStatLines()
	s.seedRosters()
	s.seedEntries()

	log.Info("Seeded league",
		zap.Int("users", len(s.users)),
		zap.Int("teams", len(s.teams)),
		zap.Int("rounds", len(s.rounds)),
	)
	return nil
}

func (s *seeder) seedUsers() {
	for i := 0; i < args.Users; i++ {
		user := unwrap(s.db.AddUser(&models.User{
			Username:    fmt.Sprintf("%s%02d", s.faker.Username(), i),
			DisplayName: s.faker.Name(),
		}))
		s.users = append(s.users, user)
	}
}

func (s *seeder) seedTeams() {
	for i := 0; i < args.Teams; i++ {
		team := fmt.Sprintf("%s %s", s.faker.City(), s.faker.PetName())
		s.teams = append(s.teams, team)

		for _, position := range teamPositions {
			player := unwrap(s.db.AddPlayer(&models.Player{
				Name:     s.faker.Name(),
				Team:     team,
				Position: position,
			}))
			s.byTeam[team] = append(s.byTeam[team], player)
			s.byPlayerID[player.ID] = player
		}
	}
}

// bracketGames fits the bracket shape to the seeded teams: a round never
// schedules more games than there are team pairs.
func bracketGames(teams int) []int {
	counts := make([]int, len(gamesPerRound))
	for i, count := range gamesPerRound {
		if limit := teams / 2; count > limit {
			count = limit
		}
		counts[i] = count
	}
	return counts
}

func (s *seeder) seedRounds() {
	kickoff := time.Now().Add(-30 * 24 * time.Hour)
	for i, count := range bracketGames(len(s.teams)) {
		number := uint(i + 1)
		round := unwrap(s.db.AddRound(&models.Round{
			Number:    number,
			Name:      s.book.RoundName(number),
			IsCurrent: i == len(gamesPerRound)-1,
			IsLocked:  i < len(gamesPerRound)-1,
		}))
		s.rounds = append(s.rounds, round)

		for g := 0; g < count; g++ {
			at := kickoff.Add(time.Duration(g) * 3 * time.Hour)
			away, home := s.faker.Number(3, 45), s.faker.Number(3, 45)
			game := unwrap(s.db.AddGame(&models.Game{
				RoundID:        round.ID,
				AwayTeam:       s.teams[2*g],
				HomeTeam:       s.teams[2*g+1],
				KickoffAt:      &at,
				AwayScoreFinal: &away,
				HomeScoreFinal: &home,
				IsFinal:        true,
			}))
			s.games[round.ID] = append(s.games[round.ID], game)
		}
		kickoff = kickoff.Add(7 * 24 * time.Hour)
	}
}

func (s *seeder) playingTeams(round *models.Round) []string {
	teams := make([]string, 0, 2*len(s.games[round.ID]))
	for _, game := range s.games[round.ID] {
		teams = append(teams, game.AwayTeam, game.HomeTeam)
	}
	return teams
}

func (s *seeder) seedStatLines() {
	for _, round := range s.rounds {
		for _, team := range s.playingTeams(round) {
			for _, player := range s.byTeam[team] {
				check(s.db.UpsertStatLine(&models.PlayerStatLine{
					PlayerID:      player.ID,
					RoundID:       round.ID,
					FantasyPoints: decimal.New(int64(s.faker.Number(0, 3000)), -2),
				}))
			}
		}
	}
}

func slotPositions(slot models.Slot) []string {
	switch slot {
	case models.SlotQB:
		return []string{"QB"}
	case models.SlotRB1, models.SlotRB2:
		return []string{"RB"}
	case models.SlotWR1, models.SlotWR2:
		return []string{"WR"}
	case models.SlotTE:
		return []string{"TE"}
	case models.SlotFlex:
		return []string{"RB", "WR", "TE"}
	case models.SlotK:
		return []string{"K"}
	default:
		return []string{"DEF"}
	}
}

func (s *seeder) pickPlayer(slot models.Slot, playing []string, used map[uint]bool) *models.Player {
	wanted := slotPositions(slot)
	pool := make([]*models.Player, 0, 3*len(playing))
	for _, team := range playing {
		for _, player := range s.byTeam[team] {
			if used[player.ID] {
				continue
			}
			for _, position := range wanted {
				if player.Position == position {
					pool = append(pool, player)
					break
				}
			}
		}
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[s.faker.Number(0, len(pool)-1)]
}

func (s *seeder) seedRosters() {
	for _, user := range s.users {
		// Carrying picks between rounds while their teams survive produces
		// real multi-round streaks for the multiplier path.
		prev := make(map[models.Slot]uint)
		for _, round := range s.rounds {
			playing := s.playingTeams(round)
			alive := make(map[string]bool, len(playing))
			for _, team := range playing {
				alive[team] = true
			}

			used := make(map[uint]bool, len(models.RosterSlots))
			for _, slot := range models.RosterSlots {
				var player *models.Player
				if id, ok := prev[slot]; ok && !used[id] && s.faker.Number(0, 9) < 8 {
					if kept := s.byPlayerID[id]; kept != nil && alive[kept.Team] {
						player = kept
					}
				}
				if player == nil {
					player = s.pickPlayer(slot, playing, used)
				}
				if player == nil {
					continue
				}

				used[player.ID] = true
				prev[slot] = player.ID
				check(s.db.UpsertRosterSlot(&models.RosterSlot{
					UserID:   user.ID,
					RoundID:  round.ID,
					Slot:     slot,
					PlayerID: &player.ID,
				}))
			}
		}
	}
}

func (s *seeder) seedEntries() {
	for _, user := range s.users {
		for _, round := range s.rounds {
			for _, game := range s.games[round.ID] {
				check(s.db.UpsertPredictorEntry(&models.PredictorEntry{
					GameID:        game.ID,
					UserID:        user.ID,
					AwayScorePred: s.faker.Number(0, 45),
					HomeScorePred: s.faker.Number(0, 45),
				}))
			}
		}
	}
}
