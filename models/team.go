package models

import "time"

type Team struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	PrimaryColor   *string   `json:"primary_color,omitempty"`
	SecondaryColor *string   `json:"secondary_color,omitempty"`
	CaptainID      int       `json:"captain_id"`
	Active         bool      `json:"active"`
	RegisteredAt   time.Time `json:"registered_at"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`

	Captain *User    `json:"captain,omitempty"`
	Players []Player `json:"players,omitempty"`
}

type PlayerStatus string

const (
	PlayerStatusActive    PlayerStatus = "Active"
	PlayerStatusCaptain   PlayerStatus = "Captain"
	PlayerStatusSuspended PlayerStatus = "Suspended"
	PlayerStatusInactive  PlayerStatus = "Inactive"
)

// Player is a user's membership on a team. SquadNumber is unique within the
// team; uniqueness is checked in the service layer before insert/update.
type Player struct {
	ID           int          `json:"id"`
	UserID       int          `json:"user_id"`
	TeamID       int          `json:"team_id"`
	SquadNumber  *int         `json:"squad_number,omitempty"`
	Position     *string      `json:"position,omitempty"`
	Status       PlayerStatus `json:"status"`
	BirthDate    *time.Time   `json:"birth_date,omitempty"`
	RegisteredAt time.Time    `json:"registered_at"`

	User *User `json:"user,omitempty"`
	Team *Team `json:"team,omitempty"`
}
