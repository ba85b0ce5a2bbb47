package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/repositories"
)

const minPasswordLength = 8

// captainSquadNumber is the number the captain's own player row gets when the
// team is registered.
const captainSquadNumber = 1

type RegisterCaptainInput struct {
	Token          string     `json:"token"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	Phone          *string    `json:"phone,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	TeamName       string     `json:"team_name"`
	PrimaryColor   *string    `json:"primary_color,omitempty"`
	SecondaryColor *string    `json:"secondary_color,omitempty"`
}

type RegisterPlayerInput struct {
	Token       string     `json:"token"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Phone       *string    `json:"phone,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	SquadNumber *int       `json:"squad_number,omitempty"`
	Position    *string    `json:"position,omitempty"`
}

type RegisterRefereeInput struct {
	Token    string  `json:"token"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	RegisterCaptain(ctx context.Context, input RegisterCaptainInput) (*models.User, error)
	RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*models.User, error)
	RegisterReferee(ctx context.Context, input RegisterRefereeInput) (*models.User, error)
}

type authService struct {
	tx         repositories.TxManager
	userRepo   repositories.UserRepository
	roleRepo   repositories.RoleRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	invites    InviteService
	logger     *slog.Logger
}

func NewAuthService(
	tx repositories.TxManager,
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	invites InviteService,
	logger *slog.Logger,
) AuthService {
	return &authService{
		tx:         tx,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		invites:    invites,
		logger:     logger,
	}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	roles, err := s.roleRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	user.Roles = roles
	user.PasswordHash = ""
	return user, nil
}

// RegisterCaptain redeems a CAPITAN invitation: one transaction creates the
// user, the Captain role assignment, the team, and the captain's own player
// row wearing number 1.
func (s *authService) RegisterCaptain(ctx context.Context, input RegisterCaptainInput) (*models.User, error) {
	if _, err := s.redeemToken(ctx, input.Token, InviteKindCaptain); err != nil {
		return nil, err
	}

	if input.TeamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrValidationFailed)
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Active:       true,
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.createUserWithRole(ctx, exec, user, models.RoleCaptain); err != nil {
			return err
		}

		team := &models.Team{
			Name:           input.TeamName,
			PrimaryColor:   input.PrimaryColor,
			SecondaryColor: input.SecondaryColor,
			CaptainID:      user.ID,
			Active:         true,
		}
		if err := s.teamRepo.Create(ctx, exec, team); err != nil {
			if errors.Is(err, repositories.ErrTeamNameConflict) {
				return ErrTeamNameTaken
			}
			return fmt.Errorf("failed to create team: %w", err)
		}

		number := captainSquadNumber
		player := &models.Player{
			UserID:      user.ID,
			TeamID:      team.ID,
			SquadNumber: &number,
			Status:      models.PlayerStatusCaptain,
			BirthDate:   input.BirthDate,
		}
		if err := s.playerRepo.Create(ctx, exec, player); err != nil {
			return fmt.Errorf("failed to create captain player row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "captain registered", slog.Int("user_id", user.ID), slog.String("team", input.TeamName))
	user.PasswordHash = ""
	return user, nil
}

// RegisterPlayer redeems a JUGADOR invitation; the destination team comes
// from the token, never from the request body.
func (s *authService) RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*models.User, error) {
	token, err := s.redeemToken(ctx, input.Token, InviteKindPlayer)
	if err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.GetByID(ctx, token.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if input.SquadNumber != nil {
		taken, err := s.playerRepo.SquadNumberTaken(ctx, token.TeamID, *input.SquadNumber, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check squad number: %w", err)
		}
		if taken {
			return nil, ErrSquadNumberTaken
		}
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Active:       true,
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.createUserWithRole(ctx, exec, user, models.RolePlayer); err != nil {
			return err
		}
		player := &models.Player{
			UserID:      user.ID,
			TeamID:      token.TeamID,
			SquadNumber: input.SquadNumber,
			Position:    input.Position,
			Status:      models.PlayerStatusActive,
			BirthDate:   input.BirthDate,
		}
		if err := s.playerRepo.Create(ctx, exec, player); err != nil {
			return fmt.Errorf("failed to create player row: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player registered", slog.Int("user_id", user.ID), slog.Int("team_id", token.TeamID))
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) RegisterReferee(ctx context.Context, input RegisterRefereeInput) (*models.User, error) {
	if _, err := s.redeemToken(ctx, input.Token, InviteKindReferee); err != nil {
		return nil, err
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Active:       true,
	}
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.createUserWithRole(ctx, exec, user, models.RoleReferee)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "referee registered", slog.Int("user_id", user.ID))
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) redeemToken(ctx context.Context, raw string, want InviteKind) (*InviteToken, error) {
	token, err := s.invites.ValidateToken(ctx, raw)
	if err != nil {
		return nil, err
	}
	if token.Kind != want {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrTokenWrongKind, want, token.Kind)
	}
	return token, nil
}

func (s *authService) createUserWithRole(ctx context.Context, exec repositories.SQLExecutor, user *models.User, roleName models.RoleName) error {
	if err := s.userRepo.Create(ctx, exec, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return fmt.Errorf("failed to look up role %s: %w", roleName, err)
	}
	if err := s.roleRepo.Assign(ctx, exec, user.ID, role.ID); err != nil {
		return fmt.Errorf("failed to assign role %s: %w", roleName, err)
	}
	user.Roles = append(user.Roles, *role)
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: minimum %d characters", ErrPasswordTooShort, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
