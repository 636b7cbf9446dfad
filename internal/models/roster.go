package models

const (
	SlotQB   = "QB"
	SlotRB1  = "RB1"
	SlotRB2  = "RB2"
	SlotWR1  = "WR1"
	SlotWR2  = "WR2"
	SlotTE   = "TE"
	SlotFlex = "FLEX"
	SlotK    = "K"
	SlotDef  = "DEF"
)

type Slot = string

// RosterSlots is the fixed slot layout of every roster, in display order.
var RosterSlots = []Slot{
	SlotQB, SlotRB1, SlotRB2, SlotWR1, SlotWR2, SlotTE, SlotFlex, SlotK, SlotDef,
}

func IsRosterSlot(slot Slot) bool {
	for _, s := range RosterSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// RosterSlot is one named spot of a user's roster for one round. A missing
// row and a row with a nil PlayerID both mean the slot is empty. Within one
// (user, round) roster a player may appear in at most one slot; the engine
// rejects rosters violating that on settlement.
type RosterSlot struct {
	UserID  uint `gorm:"primaryKey;autoIncrement:false"`
	RoundID uint `gorm:"primaryKey;autoIncrement:false"`
	Slot    Slot `gorm:"primaryKey"`

	PlayerID *uint
}
