package models

import "time"

type Notification struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Kind        string     `json:"kind"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	ReferenceID *int       `json:"reference_id,omitempty"`
}
