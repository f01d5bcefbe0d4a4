package models

import (
	"time"
)

// Report is a complaint filed by one profile against a user or a pin.
// Exactly one of ReportedUserID / ReportedPinID is set; submission
// rejects anything else.
type Report struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ProfileID      string    `gorm:"not null;index;type:varchar(36)" json:"profile_id"`
	Text           string    `gorm:"not null;type:text" json:"text"`
	Date           time.Time `gorm:"not null" json:"date"`
	ReportedUserID string    `gorm:"index;type:varchar(36)" json:"reported_user_id,omitempty"`
	ReportedPinID  string    `gorm:"index;type:varchar(36)" json:"reported_pin_id,omitempty"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
}
