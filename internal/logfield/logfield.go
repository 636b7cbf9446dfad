package lf

import "go.uber.org/zap"

const (
	FieldModule   = "module"
	FieldUserID   = "user_id"
	FieldUsername = "username"
	FieldRoundID  = "round_id"
	FieldRoundNum = "round_number"
	FieldGameID   = "game_id"
	FieldPlayerID = "player_id"
	FieldSlot     = "slot"
	FieldRunID    = "run_id"
	FieldToken    = "token"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func UserID(id uint) zap.Field {
	return zap.Uint(FieldUserID, id)
}

func Username(name string) zap.Field {
	return zap.String(FieldUsername, name)
}

func RoundID(id uint) zap.Field {
	return zap.Uint(FieldRoundID, id)
}

func RoundNumber(number uint) zap.Field {
	return zap.Uint(FieldRoundNum, number)
}

func GameID(id uint) zap.Field {
	return zap.Uint(FieldGameID, id)
}

func PlayerID(id uint) zap.Field {
	return zap.Uint(FieldPlayerID, id)
}

func Slot(slot string) zap.Field {
	return zap.String(FieldSlot, slot)
}

func RunID(id string) zap.Field {
	return zap.String(FieldRunID, id)
}

func Token(token string) zap.Field {
	return zap.String(FieldToken, token)
}
