package models

import "time"

type SanctionKind string

const (
	SanctionRedCard            SanctionKind = "RedCard"
	SanctionAccumulatedYellows SanctionKind = "AccumulatedYellowCards"
)

// Sanction is a disciplinary suspension derived from card events. It is a
// write-once side effect of event recording; resolving it (clearing Active,
// restoring the player's status) is a roster-management action.
type Sanction struct {
	ID                int          `json:"id"`
	PlayerID          int          `json:"player_id"`
	TournamentID      int          `json:"tournament_id"`
	Kind              SanctionKind `json:"kind"`
	MatchesSuspended  int          `json:"matches_suspended"`
	MatchesServed     int          `json:"matches_served"`
	StartDate         time.Time    `json:"start_date"`
	EndDate           *time.Time   `json:"end_date,omitempty"`
	Active            bool         `json:"active"`
	Reason            *string      `json:"reason,omitempty"`
	TriggeringEventID *int         `json:"triggering_event_id,omitempty"`
}
