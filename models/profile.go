package models

import (
	"time"
)

// Profile roles. Fixed at creation; promoting a user to admin happens
// through direct database edits, never through the API.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile moderation statuses.
const (
	StatusPublic   = "public"
	StatusPrivate  = "private"
	StatusWarning  = "warning"
	StatusReported = "reported"
	StatusBanned   = "banned"
)

type Profile struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // Don't expose password in JSON
	Role      string    `gorm:"not null;default:'user';type:varchar(10)" json:"role"`
	Status    string    `gorm:"not null;default:'public';type:varchar(10)" json:"status"`
	Avatar    string    `json:"avatar"`
	Settings  Settings  `json:"settings" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Pins      []Pin     `json:"pins,omitempty" gorm:"foreignKey:ProfileID"`
}

// Settings is created together with its Profile at signup and deleted
// together with it at account deletion.
type Settings struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	ProfileID         string    `gorm:"unique;not null;type:varchar(36)" json:"profile_id"`
	Language          string    `gorm:"default:'en';type:varchar(8)" json:"language"`
	MapRadiusKm       int       `gorm:"default:25" json:"map_radius_km"`
	NotificationsOn   bool      `gorm:"default:true" json:"notifications_on"`
	ShowPinsOnProfile bool      `gorm:"default:true" json:"show_pins_on_profile"`
}
