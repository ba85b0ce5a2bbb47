package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/repositories"
)

type RecordEventInput struct {
	MatchID        int               `json:"match_id"`
	PlayerID       int               `json:"player_id"`
	Kind           models.EventKind  `json:"kind"`
	Minute         *int              `json:"minute,omitempty"`
	AssistPlayerID *int              `json:"assist_player_id,omitempty"`
	Comment        *string           `json:"comment,omitempty"`
}

type CreateMatchInput struct {
	TournamentID int        `json:"tournament_id"`
	HomeTeamID   int        `json:"home_team_id"`
	AwayTeamID   int        `json:"away_team_id"`
	VenueID      *int       `json:"venue_id,omitempty"`
	RefereeID    *int       `json:"referee_id,omitempty"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	Matchday     *int       `json:"matchday,omitempty"`
}

type ReportIncidentInput struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Severity    *string `json:"severity,omitempty"`
	EvidenceURL *string `json:"evidence_url,omitempty"`
}

// MatchSquads lists both teams' rosters for a fixture.
type MatchSquads struct {
	HomeTeam *models.Team `json:"home_team"`
	AwayTeam *models.Team `json:"away_team"`
}

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	ListByReferee(ctx context.Context, refereeID int, pendingOnly bool) ([]*models.Match, error)
	ListByCaptain(ctx context.Context, userID int) ([]*models.Match, error)
	Squads(ctx context.Context, matchID int) (*MatchSquads, error)

	Start(ctx context.Context, matchID, callerID int) (*models.Match, error)
	Finish(ctx context.Context, matchID, callerID int) (*models.Match, error)
	RecordEvent(ctx context.Context, callerID int, input RecordEventInput) (*models.MatchEvent, error)
	DeleteEvent(ctx context.Context, eventID, callerID int) error
	ListEvents(ctx context.Context, matchID int) ([]*models.MatchEvent, error)

	ReportIncident(ctx context.Context, matchID, callerID int, input ReportIncidentInput) (*models.MatchIncident, error)
	ListIncidents(ctx context.Context, matchID int) ([]*models.MatchIncident, error)
}

type matchService struct {
	tx             repositories.TxManager
	matchRepo      repositories.MatchRepository
	eventRepo      repositories.EventRepository
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	sanctionRepo   repositories.SanctionRepository
	notifRepo      repositories.NotificationRepository
	incidentRepo   repositories.IncidentRepository
	logger         *slog.Logger
}

func NewMatchService(
	tx repositories.TxManager,
	matchRepo repositories.MatchRepository,
	eventRepo repositories.EventRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	sanctionRepo repositories.SanctionRepository,
	notifRepo repositories.NotificationRepository,
	incidentRepo repositories.IncidentRepository,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:             tx,
		matchRepo:      matchRepo,
		eventRepo:      eventRepo,
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		sanctionRepo:   sanctionRepo,
		notifRepo:      notifRepo,
		incidentRepo:   incidentRepo,
		logger:         logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrValidationFailed)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	for _, teamID := range []int{input.HomeTeamID, input.AwayTeamID} {
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		VenueID:      input.VenueID,
		RefereeID:    input.RefereeID,
		ScheduledAt:  input.ScheduledAt,
		Matchday:     input.Matchday,
		Status:       models.MatchStatusScheduled,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.getMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateTeams(ctx, match)
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	return s.matchRepo.ListByTournament(ctx, tournamentID)
}

func (s *matchService) ListByReferee(ctx context.Context, refereeID int, pendingOnly bool) ([]*models.Match, error) {
	return s.matchRepo.ListByReferee(ctx, refereeID, pendingOnly)
}

func (s *matchService) ListByCaptain(ctx context.Context, userID int) ([]*models.Match, error) {
	teams, err := s.teamRepo.ListByCaptainID(ctx, userID)
	if err != nil {
		return nil, err
	}
	teamIDs := make([]int, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}
	return s.matchRepo.ListByTeamIDs(ctx, teamIDs)
}

func (s *matchService) Squads(ctx context.Context, matchID int) (*MatchSquads, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	squads := &MatchSquads{}
	for _, side := range []struct {
		teamID int
		dst    **models.Team
	}{
		{match.HomeTeamID, &squads.HomeTeam},
		{match.AwayTeamID, &squads.AwayTeam},
	} {
		team, err := s.teamRepo.GetByID(ctx, side.teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team %d: %w", side.teamID, err)
		}
		players, err := s.playerRepo.ListByTeamID(ctx, side.teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to load squad of team %d: %w", side.teamID, err)
		}
		team.Players = make([]models.Player, 0, len(players))
		for _, p := range players {
			if p != nil {
				team.Players = append(team.Players, *p)
			}
		}
		*side.dst = team
	}
	return squads, nil
}

// Start moves a scheduled match into play. Only the assigned referee may
// start it, and only from the Scheduled state.
func (s *matchService) Start(ctx context.Context, matchID, callerID int) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := requireAssignedReferee(match, callerID); err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusScheduled {
		return nil, fmt.Errorf("%w: status is %s", ErrMatchNotScheduled, match.Status)
	}

	if err := s.matchRepo.UpdateStatus(ctx, nil, matchID, models.MatchStatusInProgress, nil); err != nil {
		return nil, fmt.Errorf("failed to start match %d: %w", matchID, err)
	}
	match.Status = models.MatchStatusInProgress
	s.logger.InfoContext(ctx, "match started", slog.Int("match_id", matchID), slog.Int("referee_id", callerID))
	return match, nil
}

// Finish ends an in-progress match. Finished is terminal: events and score
// become immutable.
func (s *matchService) Finish(ctx context.Context, matchID, callerID int) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := requireAssignedReferee(match, callerID); err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusInProgress {
		return nil, fmt.Errorf("%w: status is %s", ErrMatchNotInProgress, match.Status)
	}

	now := time.Now()
	if err := s.matchRepo.UpdateStatus(ctx, nil, matchID, models.MatchStatusFinished, &now); err != nil {
		return nil, fmt.Errorf("failed to finish match %d: %w", matchID, err)
	}
	match.Status = models.MatchStatusFinished
	match.FinishedAt = &now
	s.logger.InfoContext(ctx, "match finished",
		slog.Int("match_id", matchID),
		slog.Int("home_goals", match.HomeGoals),
		slog.Int("away_goals", match.AwayGoals),
	)
	return match, nil
}

// RecordEvent appends a match event and applies its side effects (score
// increment, sanction derivation) as one atomic unit.
func (s *matchService) RecordEvent(ctx context.Context, callerID int, input RecordEventInput) (*models.MatchEvent, error) {
	switch input.Kind {
	case models.EventGoal, models.EventAssist, models.EventYellowCard, models.EventRedCard:
	default:
		return nil, fmt.Errorf("%w: unknown event kind %q", ErrValidationFailed, input.Kind)
	}

	match, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if err := requireAssignedReferee(match, callerID); err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusInProgress {
		return nil, fmt.Errorf("%w: status is %s", ErrMatchNotInProgress, match.Status)
	}

	player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.TeamID != match.HomeTeamID && player.TeamID != match.AwayTeamID {
		return nil, fmt.Errorf("%w: player %d is not on either team of match %d", ErrValidationFailed, player.ID, match.ID)
	}

	event := &models.MatchEvent{
		MatchID:        input.MatchID,
		PlayerID:       input.PlayerID,
		Kind:           input.Kind,
		Minute:         input.Minute,
		AssistPlayerID: input.AssistPlayerID,
		Comment:        input.Comment,
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.eventRepo.Create(ctx, exec, event); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}

		switch event.Kind {
		case models.EventGoal:
			home := player.TeamID == match.HomeTeamID
			if err := s.matchRepo.AddGoals(ctx, exec, match.ID, home, 1); err != nil {
				return fmt.Errorf("failed to increment score: %w", err)
			}
		case models.EventRedCard:
			return s.applyRedCard(ctx, exec, match, player, event)
		case models.EventYellowCard:
			return s.applyYellowCard(ctx, exec, match, player, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match event recorded",
		slog.Int("match_id", match.ID),
		slog.Int("player_id", player.ID),
		slog.String("kind", string(event.Kind)),
	)
	return event, nil
}

// DeleteEvent removes an event; deleting a goal reverses its score increment
// in the same unit. Sanctions derived from card events are not reversed.
func (s *matchService) DeleteEvent(ctx context.Context, eventID, callerID int) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	match, err := s.getMatch(ctx, event.MatchID)
	if err != nil {
		return err
	}
	if err := requireAssignedReferee(match, callerID); err != nil {
		return err
	}
	if match.Status == models.MatchStatusFinished {
		return ErrMatchFinished
	}

	return s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if event.Kind == models.EventGoal {
			player, err := s.playerRepo.GetByID(ctx, event.PlayerID)
			if err != nil {
				return fmt.Errorf("failed to load scoring player %d: %w", event.PlayerID, err)
			}
			home := player.TeamID == match.HomeTeamID
			if err := s.matchRepo.AddGoals(ctx, exec, match.ID, home, -1); err != nil {
				return fmt.Errorf("failed to decrement score: %w", err)
			}
		}
		if err := s.eventRepo.Delete(ctx, exec, eventID); err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
}

func (s *matchService) ListEvents(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	if _, err := s.getMatch(ctx, matchID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListByMatch(ctx, matchID)
}

func (s *matchService) ReportIncident(ctx context.Context, matchID, callerID int, input ReportIncidentInput) (*models.MatchIncident, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := requireAssignedReferee(match, callerID); err != nil {
		return nil, err
	}
	if input.Kind == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: incident kind and description are required", ErrValidationFailed)
	}

	incident := &models.MatchIncident{
		MatchID:     matchID,
		RefereeID:   callerID,
		Kind:        input.Kind,
		Description: input.Description,
		Severity:    input.Severity,
		EvidenceURL: input.EvidenceURL,
	}
	if err := s.incidentRepo.Create(ctx, incident); err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}
	return incident, nil
}

func (s *matchService) ListIncidents(ctx context.Context, matchID int) ([]*models.MatchIncident, error) {
	return s.incidentRepo.ListByMatch(ctx, matchID)
}

/// applyRedCard creates the suspension immediately: the length comes from the
// tournament's rule set and the player goes to Suspended.
func (s *matchService) applyRedCard(ctx context.Context, exec repositories.SQLExecutor, match *models.Match, player *models.Player, event *models.MatchEvent) error {
	rules, err := s.tournamentRepo.GetRuleSet(ctx, exec, match.TournamentID)
	if err != nil {
		return fmt.Errorf("failed to load tournament rules: %w", err)
	}

	reason := "Red card"
	if event.Comment != nil && *event.Comment != "" {
		reason = *event.Comment
	}
	sanction := &models.Sanction{
		PlayerID:          player.ID,
		TournamentID:      match.TournamentID,
		Kind:              models.SanctionRedCard,
		MatchesSuspended:  rules.RedCardSuspensionMatches,
		StartDate:         time.Now(),
		Active:            true,
		Reason:            &reason,
		TriggeringEventID: &event.ID,
	}
	return s.imposeSanction(ctx, exec, player, sanction)
}

// applyYellowCard checks accumulation: the player's yellow count within this
// tournament, including the card just recorded, fires a one-match suspension
// exactly when it reaches the configured threshold.
func (s *matchService) applyYellowCard(ctx context.Context, exec repositories.SQLExecutor, match *models.Match, player *models.Player, event *models.MatchEvent) error {
	rules, err := s.tournamentRepo.GetRuleSet(ctx, exec, match.TournamentID)
	if err != nil {
		return fmt.Errorf("failed to load tournament rules: %w", err)
	}

	count, err := s.eventRepo.CountYellowCards(ctx, exec, player.ID, match.TournamentID)
	if err != nil {
		return fmt.Errorf("failed to count yellow cards: %w", err)
	}
	if count != rules.YellowCardThreshold {
		return nil
	}

	reason := fmt.Sprintf("Accumulation of %d yellow cards", count)
	sanction := &models.Sanction{
		PlayerID:          player.ID,
		TournamentID:      match.TournamentID,
		Kind:              models.SanctionAccumulatedYellows,
		MatchesSuspended:  1,
		StartDate:         time.Now(),
		Active:            true,
		Reason:            &reason,
		TriggeringEventID: &event.ID,
	}
	return s.imposeSanction(ctx, exec, player, sanction)
}

func (s *matchService) imposeSanction(ctx context.Context, exec repositories.SQLExecutor, player *models.Player, sanction *models.Sanction) error {
	if err := s.sanctionRepo.Create(ctx, exec, sanction); err != nil {
		return fmt.Errorf("failed to create sanction: %w", err)
	}
	if err := s.playerRepo.UpdateStatus(ctx, exec, player.ID, models.PlayerStatusSuspended); err != nil {
		return fmt.Errorf("failed to suspend player %d: %w", player.ID, err)
	}

	notification := &models.Notification{
		UserID: player.UserID,
		Title:  "Suspension",
		Message: fmt.Sprintf("You have been suspended for %d match(es): %s",
			sanction.MatchesSuspended, derefString(sanction.Reason)),
		Kind:        "sanction",
		ReferenceID: &sanction.ID,
	}
	if err := s.notifRepo.Create(ctx, exec, notification); err != nil {
		return fmt.Errorf("failed to create sanction notification: %w", err)
	}

	s.logger.InfoContext(ctx, "sanction imposed",
		slog.Int("player_id", player.ID),
		slog.String("kind", string(sanction.Kind)),
		slog.Int("matches", sanction.MatchesSuspended),
	)
	return nil
}

func (s *matchService) getMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) populateTeams(ctx context.Context, match *models.Match) {
	home, err := s.teamRepo.GetByID(ctx, match.HomeTeamID)
	if err == nil {
		match.HomeTeam = home
	} else {
		s.logger.WarnContext(ctx, "failed to populate home team", slog.Int("match_id", match.ID), slog.Any("error", err))
	}
	away, err := s.teamRepo.GetByID(ctx, match.AwayTeamID)
	if err == nil {
		match.AwayTeam = away
	} else {
		s.logger.WarnContext(ctx, "failed to populate away team", slog.Int("match_id", match.ID), slog.Any("error", err))
	}
}

func requireAssignedReferee(match *models.Match, callerID int) error {
	if match.RefereeID == nil || *match.RefereeID != callerID {
		return ErrNotAssignedReferee
	}
	return nil
}
