package models

import (
	"time"

	"github.com/lib/pq"
)

// Pin statuses. Pins have no warning/banned state: moderation either
// leaves a pin alone or deletes it outright.
const (
	PinStatusPublic   = "public"
	PinStatusPrivate  = "private"
	PinStatusReported = "reported"
)

type Pin struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ProfileID   string         `gorm:"not null;index;type:varchar(36)" json:"profile_id"`
	Status      string         `gorm:"not null;default:'public';type:varchar(10)" json:"status"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Latitude    float64        `gorm:"not null;type:decimal(10,8)" json:"latitude"`
	Longitude   float64        `gorm:"not null;type:decimal(11,8)" json:"longitude"`
	Location    string         `json:"location"`
	ImgURLs     pq.StringArray `gorm:"type:text[]" json:"imgurls"`
}
