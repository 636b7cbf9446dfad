package settle

import (
	"github.com/pkg/errors"

	"github.com/fourthandlong/playoffpool/internal/models"
)

// PreviewRoster reports the streak and multiplier every slot of a user's
// roster would settle with right now, against the live roster rows. It walks
// the same streak resolver as settlement, so preview and settled numbers
// can never drift apart.
func (s *Settler) PreviewRoster(userID uint, roundNumber uint) ([]SpotPreview, error) {
	round, err := s.db.FindRoundByNumber(roundNumber)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to find round %d", roundNumber)
	}

	rounds, err := s.db.ListRounds()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list rounds")
	}
	historyIDs := make([]uint, 0, len(rounds))
	numbers := make(map[uint]uint, len(rounds))
	for i := range rounds {
		numbers[rounds[i].ID] = rounds[i].Number
		if rounds[i].Number <= round.Number {
			historyIDs = append(historyIDs, rounds[i].ID)
		}
	}

	slots, err := s.db.ListRosterSlotsForRounds(historyIDs)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list roster slots")
	}
	players, err := s.db.ListPlayers()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list players")
	}
	playerByID := make(map[uint]*models.Player, len(players))
	for i := range players {
		playerByID[players[i].ID] = &players[i]
	}

	history := make(rosterHistory)
	roster := make(map[models.Slot]*models.RosterSlot)
	for i := range slots {
		slot := &slots[i]
		if slot.UserID != userID {
			continue
		}
		if slot.PlayerID != nil {
			number := numbers[slot.RoundID]
			if history[number] == nil {
				history[number] = make(map[uint]bool)
			}
			history[number][*slot.PlayerID] = true
		}
		if slot.RoundID == round.ID {
			roster[slot.Slot] = slot
		}
	}

	book := s.rules.Rulebook()

	previews := make([]SpotPreview, 0, len(models.RosterSlots))
	for _, name := range models.RosterSlots {
		preview := SpotPreview{Slot: name, Multiplier: 1}
		if slot := roster[name]; slot != nil && slot.PlayerID != nil {
			preview.PlayerID = slot.PlayerID
			if player := playerByID[*slot.PlayerID]; player != nil {
				preview.PlayerName = player.Name
			}
			preview.Streak = StreakBefore(history, *slot.PlayerID, round.Number) + 1
			preview.Multiplier = MultiplierForStreak(book, preview.Streak)
		}
		previews = append(previews, preview)
	}
	return previews, nil
}
