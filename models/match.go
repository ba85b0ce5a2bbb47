package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "Scheduled"
	MatchStatusInProgress MatchStatus = "InProgress"
	MatchStatusFinished   MatchStatus = "Finished"
)

// Match is a fixture between two enrolled teams. HomeGoals and AwayGoals are
// mutated only through event recording, never set directly by a client.
type Match struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournament_id"`
	HomeTeamID   int         `json:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id"`
	VenueID      *int        `json:"venue_id,omitempty"`
	RefereeID    *int        `json:"referee_id,omitempty"`
	ScheduledAt  time.Time   `json:"scheduled_at"`
	Matchday     *int        `json:"matchday,omitempty"`
	HomeGoals    int         `json:"home_goals"`
	AwayGoals    int         `json:"away_goals"`
	Status       MatchStatus `json:"status"`
	FinishedAt   *time.Time  `json:"finished_at,omitempty"`

	HomeTeam *Team `json:"home_team,omitempty"`
	AwayTeam *Team `json:"away_team,omitempty"`
	Referee  *User `json:"referee,omitempty"`
	Venue    *Venue `json:"venue,omitempty"`
}

type EventKind string

const (
	EventGoal       EventKind = "Goal"
	EventAssist     EventKind = "Assist"
	EventYellowCard EventKind = "YellowCard"
	EventRedCard    EventKind = "RedCard"
)

type MatchEvent struct {
	ID             int       `json:"id"`
	MatchID        int       `json:"match_id"`
	PlayerID       int       `json:"player_id"`
	Kind           EventKind `json:"kind"`
	Minute         *int      `json:"minute,omitempty"`
	AssistPlayerID *int      `json:"assist_player_id,omitempty"`
	Comment        *string   `json:"comment,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`

	Player *Player `json:"player,omitempty"`
}

// MatchIncident is an off-the-ball report filed by the assigned referee
// (pitch invasion, brawl, abandoned match and the like).
type MatchIncident struct {
	ID          int       `json:"id"`
	MatchID     int       `json:"match_id"`
	RefereeID   int       `json:"referee_id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Severity    *string   `json:"severity,omitempty"`
	EvidenceURL *string   `json:"evidence_url,omitempty"`
	ReportedAt  time.Time `json:"reported_at"`
}
