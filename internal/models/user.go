package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username    string `gorm:"uniqueIndex"`
	DisplayName string
	TelegramID  *int64
}

func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
