package models

import "time"

type Tournament struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Category   *string    `json:"category,omitempty"`
	EntryFee   *float64   `json:"entry_fee,omitempty"`
	RefereeFee *float64   `json:"referee_fee,omitempty"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	AdminID    int        `json:"admin_id"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`

	Rules *RuleSet `json:"rules,omitempty"`
}

// RuleSet holds the per-tournament rule configuration. Exactly one row per
// tournament, created with defaults at tournament-creation time.
type RuleSet struct {
	ID                       int `json:"id"`
	TournamentID             int `json:"tournament_id"`
	PointsPerWin             int `json:"points_per_win"`
	PointsPerDraw            int `json:"points_per_draw"`
	PointsPerLoss            int `json:"points_per_loss"`
	YellowCardThreshold      int `json:"yellow_card_threshold"`
	RedCardSuspensionMatches int `json:"red_card_suspension_matches"`
	MatchDurationMinutes     int `json:"match_duration_minutes"`
}

// DefaultRuleSet returns the rule values a new tournament starts with.
func DefaultRuleSet(tournamentID int) *RuleSet {
	return &RuleSet{
		TournamentID:             tournamentID,
		PointsPerWin:             3,
		PointsPerDraw:            1,
		PointsPerLoss:            0,
		YellowCardThreshold:      2,
		RedCardSuspensionMatches: 3,
		MatchDurationMinutes:     90,
	}
}

type EnrollmentPaymentStatus string

const (
	EnrollmentPaymentPending EnrollmentPaymentStatus = "Pending"
	EnrollmentPaymentPaid    EnrollmentPaymentStatus = "Paid"
)

// Enrollment registers a team into a tournament.
type Enrollment struct {
	ID            int                     `json:"id"`
	TournamentID  int                     `json:"tournament_id"`
	TeamID        int                     `json:"team_id"`
	PaymentStatus EnrollmentPaymentStatus `json:"payment_status"`
	Amount        *float64                `json:"amount,omitempty"`
	EnrolledAt    time.Time               `json:"enrolled_at"`
	PaidAt        *time.Time              `json:"paid_at,omitempty"`

	Team *Team `json:"team,omitempty"`
}
