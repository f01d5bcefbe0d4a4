package models

import (
	"time"
)

type RefreshToken struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	ProfileID      string    `gorm:"not null;index;type:varchar(36)" json:"profile_id"`
	Token          string    `gorm:"not null" json:"token"`
	ExpirationDate time.Time `gorm:"not null" json:"expiry"`
}
