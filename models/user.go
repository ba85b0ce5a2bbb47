package models

import "time"

// RoleName enumerates the roles a user can hold. Stored in the roles table
// and carried verbatim as JWT role claims.
type RoleName string

const (
	RoleAdministrator RoleName = "Administrator"
	RoleCaptain       RoleName = "Captain"
	RolePlayer        RoleName = "Player"
	RoleReferee       RoleName = "Referee"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`

	Roles []Role `json:"roles,omitempty"`
}

type Role struct {
	ID          int      `json:"id"`
	Name        RoleName `json:"name"`
	Description *string  `json:"description,omitempty"`
}

// UserRole links users and roles; the (user_id, role_id) pair is unique.
type UserRole struct {
	UserID     int       `json:"user_id"`
	RoleID     int       `json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
