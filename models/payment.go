package models

import "time"

type Payment struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	TournamentID *int      `json:"tournament_id,omitempty"`
	MatchID      *int      `json:"match_id,omitempty"`
	Kind         string    `json:"kind"`
	Amount       float64   `json:"amount"`
	Method       *string   `json:"method,omitempty"`
	Status       string    `json:"status"`
	Reference    *string   `json:"reference,omitempty"`
	PaidAt       time.Time `json:"paid_at"`
	ReceiptURL   *string   `json:"receipt_url,omitempty"`
}
