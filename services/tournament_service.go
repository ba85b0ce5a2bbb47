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

type CreateTournamentInput struct {
	Name       string     `json:"name"`
	Category   *string    `json:"category,omitempty"`
	EntryFee   *float64   `json:"entry_fee,omitempty"`
	RefereeFee *float64   `json:"referee_fee,omitempty"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

type UpdateTournamentInput struct {
	Name       *string    `json:"name,omitempty"`
	Category   *string    `json:"category,omitempty"`
	EntryFee   *float64   `json:"entry_fee,omitempty"`
	RefereeFee *float64   `json:"referee_fee,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Active     *bool      `json:"active,omitempty"`
}

type UpdateRuleSetInput struct {
	PointsPerWin             *int `json:"points_per_win,omitempty"`
	PointsPerDraw            *int `json:"points_per_draw,omitempty"`
	PointsPerLoss            *int `json:"points_per_loss,omitempty"`
	YellowCardThreshold      *int `json:"yellow_card_threshold,omitempty"`
	RedCardSuspensionMatches *int `json:"red_card_suspension_matches,omitempty"`
	MatchDurationMinutes     *int `json:"match_duration_minutes,omitempty"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, adminID int, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListActive(ctx context.Context) ([]*models.Tournament, error)
	UpdateTournament(ctx context.Context, id, callerID int, input UpdateTournamentInput) (*models.Tournament, error)

	GetRules(ctx context.Context, tournamentID int) (*models.RuleSet, error)
	UpdateRules(ctx context.Context, tournamentID, callerID int, input UpdateRuleSetInput) (*models.RuleSet, error)

	EnrollTeam(ctx context.Context, tournamentID, teamID, callerID int) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, tournamentID int) ([]*models.Enrollment, error)
	ListEnrolledTeams(ctx context.Context, tournamentID int) ([]*models.Team, error)
	MarkEnrollmentPaid(ctx context.Context, enrollmentID int, amount float64) (*models.Enrollment, error)
}

type tournamentService struct {
	tx             repositories.TxManager
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	enrollmentRepo repositories.EnrollmentRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tx repositories.TxManager,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// CreateTournament inserts the tournament and its default rule set in one
// transaction: a tournament without rules never exists.
func (s *tournamentService) CreateTournament(ctx context.Context, adminID int, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, ErrTournamentDateRange
	}

	tournament := &models.Tournament{
		Name:       input.Name,
		Category:   input.Category,
		EntryFee:   input.EntryFee,
		RefereeFee: input.RefereeFee,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		AdminID:    adminID,
		Active:     true,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.tournamentRepo.Create(ctx, exec, tournament); err != nil {
			if errors.Is(err, repositories.ErrTournamentNameConflict) {
				return fmt.Errorf("%w: tournament name already in use", ErrValidationFailed)
			}
			return fmt.Errorf("failed to create tournament: %w", err)
		}
		rules := models.DefaultRuleSet(tournament.ID)
		if err := s.tournamentRepo.CreateRuleSet(ctx, exec, rules); err != nil {
			return fmt.Errorf("failed to create rule set: %w", err)
		}
		tournament.Rules = rules
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.Int("tournament_id", tournament.ID), slog.Int("admin_id", adminID))
	return tournament, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if rules, err := s.tournamentRepo.GetRuleSet(ctx, nil, id); err == nil {
		tournament.Rules = rules
	}
	return tournament, nil
}

func (s *tournamentService) ListActive(ctx context.Context) ([]*models.Tournament, error) {
	return s.tournamentRepo.ListActive(ctx)
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id, callerID int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.AdminID != callerID {
		return nil, ErrNotTournamentAdmin
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: tournament name cannot be empty", ErrValidationFailed)
		}
		tournament.Name = *input.Name
	}
	if input.Category != nil {
		tournament.Category = input.Category
	}
	if input.EntryFee != nil {
		tournament.EntryFee = input.EntryFee
	}
	if input.RefereeFee != nil {
		tournament.RefereeFee = input.RefereeFee
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tournament.EndDate = input.EndDate
	}
	if tournament.EndDate != nil && tournament.EndDate.Before(tournament.StartDate) {
		return nil, ErrTournamentDateRange
	}
	if input.Active != nil {
		tournament.Active = *input.Active
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, fmt.Errorf("%w: tournament name already in use", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetRules(ctx context.Context, tournamentID int) (*models.RuleSet, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	rules, err := s.tournamentRepo.GetRuleSet(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRuleSetNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rules, nil
}

func (s *tournamentService) UpdateRules(ctx context.Context, tournamentID, callerID int, input UpdateRuleSetInput) (*models.RuleSet, error) {
	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.AdminID != callerID {
		return nil, ErrNotTournamentAdmin
	}

	rules, err := s.tournamentRepo.GetRuleSet(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule set: %w", err)
	}

	for _, field := range []struct {
		src *int
		dst *int
		min int
	}{
		{input.PointsPerWin, &rules.PointsPerWin, 0},
		{input.PointsPerDraw, &rules.PointsPerDraw, 0},
		{input.PointsPerLoss, &rules.PointsPerLoss, 0},
		{input.YellowCardThreshold, &rules.YellowCardThreshold, 1},
		{input.RedCardSuspensionMatches, &rules.RedCardSuspensionMatches, 1},
		{input.MatchDurationMinutes, &rules.MatchDurationMinutes, 1},
	} {
		if field.src == nil {
			continue
		}
		if *field.src < field.min {
			return nil, fmt.Errorf("%w: rule value %d below minimum %d", ErrValidationFailed, *field.src, field.min)
		}
		*field.dst = *field.src
	}

	if err := s.tournamentRepo.UpdateRuleSet(ctx, rules); err != nil {
		return nil, fmt.Errorf("failed to update rule set: %w", err)
	}
	return rules, nil
}

// EnrollTeam registers a team; only that team's captain may enroll it. The
// enrollment starts Pending with the tournament's entry fee as the amount.
func (s *tournamentService) EnrollTeam(ctx context.Context, tournamentID, teamID, callerID int) (*models.Enrollment, error) {
	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if team.CaptainID != callerID {
		return nil, ErrNotTeamCaptain
	}

	enrollment := &models.Enrollment{
		TournamentID:  tournamentID,
		TeamID:        teamID,
		PaymentStatus: models.EnrollmentPaymentPending,
		Amount:        tournament.EntryFee,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentConflict) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to enroll team: %w", err)
	}

	s.logger.InfoContext(ctx, "team enrolled",
		slog.Int("tournament_id", tournamentID), slog.Int("team_id", teamID))
	return enrollment, nil
}

func (s *tournamentService) ListEnrollments(ctx context.Context, tournamentID int) ([]*models.Enrollment, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.ListByTournament(ctx, tournamentID)
}

func (s *tournamentService) ListEnrolledTeams(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	if _, err := s.getTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.ListTeamsByTournament(ctx, tournamentID)
}

func (s *tournamentService) MarkEnrollmentPaid(ctx context.Context, enrollmentID int, amount float64) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if enrollment.PaymentStatus == models.EnrollmentPaymentPaid {
		return nil, fmt.Errorf("%w: enrollment already paid", ErrValidationFailed)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidationFailed)
	}

	now := time.Now()
	if err := s.enrollmentRepo.MarkPaid(ctx, enrollmentID, amount, now); err != nil {
		return nil, fmt.Errorf("failed to mark enrollment paid: %w", err)
	}
	enrollment.PaymentStatus = models.EnrollmentPaymentPaid
	enrollment.Amount = &amount
	enrollment.PaidAt = &now
	return enrollment, nil
}

func (s *tournamentService) getTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}
