package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/repositories"
	"github.com/torneolink/backend/storage"
)

type UpdateTeamInput struct {
	Name           *string `json:"name,omitempty"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

type AddPlayerInput struct {
	UserID      int        `json:"user_id"`
	SquadNumber *int       `json:"squad_number,omitempty"`
	Position    *string    `json:"position,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
}

type UpdatePlayerInput struct {
	SquadNumber *int                 `json:"squad_number,omitempty"`
	Position    *string              `json:"position,omitempty"`
	Status      *models.PlayerStatus `json:"status,omitempty"`
}

type TeamService interface {
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, id, callerID int, isAdmin bool, input UpdateTeamInput) (*models.Team, error)
	UploadLogo(ctx context.Context, teamID, callerID int, isAdmin bool, contentType string, file io.Reader) (*models.Team, error)

	ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error)
	AddPlayer(ctx context.Context, teamID int, input AddPlayerInput) (*models.Player, error)
	UpdatePlayer(ctx context.Context, playerID int, input UpdatePlayerInput) (*models.Player, error)
	RemovePlayer(ctx context.Context, playerID int) error

	// ClearSuspension deactivates an active sanction and restores the player
	// to Active status. The counterpart roster action to the match engine's
	// sanction derivation.
	ClearSuspension(ctx context.Context, sanctionID int) (*models.Sanction, error)
}

type teamService struct {
	tx           repositories.TxManager
	teamRepo     repositories.TeamRepository
	playerRepo   repositories.PlayerRepository
	userRepo     repositories.UserRepository
	sanctionRepo repositories.SanctionRepository
	uploader     storage.FileUploader
	logger       *slog.Logger
}

func NewTeamService(
	tx repositories.TxManager,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	userRepo repositories.UserRepository,
	sanctionRepo repositories.SanctionRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		tx:           tx,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		userRepo:     userRepo,
		sanctionRepo: sanctionRepo,
		uploader:     uploader,
		logger:       logger,
	}
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByTeamID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		if p != nil {
			team.Players = append(team.Players, *p)
		}
	}

	if captain, err := s.userRepo.GetByID(ctx, team.CaptainID); err == nil {
		captain.PasswordHash = ""
		team.Captain = captain
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		s.populateLogoURL(team)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id, callerID int, isAdmin bool, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && team.CaptainID != callerID {
		return nil, ErrNotTeamCaptain
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: team name cannot be empty", ErrValidationFailed)
		}
		team.Name = *input.Name
	}
	if input.PrimaryColor != nil {
		team.PrimaryColor = input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		team.SecondaryColor = input.SecondaryColor
	}
	if input.Active != nil {
		if !isAdmin {
			return nil, ErrForbidden
		}
		team.Active = *input.Active
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID, callerID int, isAdmin bool, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && team.CaptainID != callerID {
		return nil, ErrNotTeamCaptain
	}

	ext, err := extensionForContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key: %w", err)
	}
	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous logo",
				slog.Int("team_id", teamID), slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	team.LogoKey = &result.Key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error) {
	if _, err := s.getTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return s.playerRepo.ListByTeamID(ctx, teamID)
}

func (s *teamService) AddPlayer(ctx context.Context, teamID int, input AddPlayerInput) (*models.Player, error) {
	if _, err := s.getTeam(ctx, teamID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if input.SquadNumber != nil {
		taken, err := s.playerRepo.SquadNumberTaken(ctx, teamID, *input.SquadNumber, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check squad number: %w", err)
		}
		if taken {
			return nil, ErrSquadNumberTaken
		}
	}

	player := &models.Player{
		UserID:      input.UserID,
		TeamID:      teamID,
		SquadNumber: input.SquadNumber,
		Position:    input.Position,
		Status:      models.PlayerStatusActive,
		BirthDate:   input.BirthDate,
	}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *teamService) UpdatePlayer(ctx context.Context, playerID int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if input.SquadNumber != nil {
		taken, err := s.playerRepo.SquadNumberTaken(ctx, player.TeamID, *input.SquadNumber, player.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check squad number: %w", err)
		}
		if taken {
			return nil, ErrSquadNumberTaken
		}
		player.SquadNumber = input.SquadNumber
	}
	if input.Position != nil {
		player.Position = input.Position
	}
	if input.Status != nil {
		switch *input.Status {
		case models.PlayerStatusActive, models.PlayerStatusCaptain, models.PlayerStatusSuspended, models.PlayerStatusInactive:
		default:
			return nil, fmt.Errorf("%w: unknown player status %q", ErrValidationFailed, *input.Status)
		}
		player.Status = *input.Status
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

func (s *teamService) RemovePlayer(ctx context.Context, playerID int) error {
	err := s.playerRepo.Delete(ctx, playerID)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

func (s *teamService) ClearSuspension(ctx context.Context, sanctionID int) (*models.Sanction, error) {
	sanction, err := s.sanctionRepo.GetByID(ctx, sanctionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSanctionNotFound) {
			return nil, ErrSanctionNotFound
		}
		return nil, err
	}
	if !sanction.Active {
		return nil, fmt.Errorf("%w: sanction %d is not active", ErrValidationFailed, sanctionID)
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.sanctionRepo.Deactivate(ctx, exec, sanctionID); err != nil {
			return fmt.Errorf("failed to deactivate sanction: %w", err)
		}
		if err := s.playerRepo.UpdateStatus(ctx, exec, sanction.PlayerID, models.PlayerStatusActive); err != nil {
			return fmt.Errorf("failed to restore player status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "suspension cleared",
		slog.Int("sanction_id", sanctionID), slog.Int("player_id", sanction.PlayerID))
	sanction.Active = false
	now := time.Now()
	sanction.EndDate = &now
	return sanction, nil
}

func (s *teamService) getTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team == nil || team.LogoKey == nil || *team.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func extensionForContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type %q", contentType)
	}
}
