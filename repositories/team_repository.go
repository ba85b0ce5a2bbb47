package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/torneolink/backend/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	List(ctx context.Context) ([]*models.Team, error)
	ListByCaptainID(ctx context.Context, captainID int) ([]*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, name, logo_key, primary_color, secondary_color, captain_id, active, registered_at`

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (name, logo_key, primary_color, secondary_color, captain_id, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, registered_at`

	err := executor.QueryRowContext(ctx, query,
		team.Name,
		team.LogoKey,
		team.PrimaryColor,
		team.SecondaryColor,
		team.CaptainID,
		team.Active,
	).Scan(&team.ID, &team.RegisteredAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "teams_name_key" {
				return ErrTeamNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE id = $1`, teamColumns)
	row := r.db.QueryRowContext(ctx, query, id)
	team, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET
			name = $1,
			primary_color = $2,
			secondary_color = $3,
			captain_id = $4,
			active = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		team.Name,
		team.PrimaryColor,
		team.SecondaryColor,
		team.CaptainID,
		team.Active,
		team.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "teams_name_key" {
				return ErrTeamNameConflict
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE active = TRUE ORDER BY name ASC`, teamColumns)
	return r.queryTeams(ctx, query)
}

func (r *postgresTeamRepository) ListByCaptainID(ctx context.Context, captainID int) ([]*models.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM teams WHERE captain_id = $1 ORDER BY name ASC`, teamColumns)
	return r.queryTeams(ctx, query, captainID)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, query string, args ...interface{}) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	team := &models.Team{}
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.LogoKey,
		&team.PrimaryColor,
		&team.SecondaryColor,
		&team.CaptainID,
		&team.Active,
		&team.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return team, nil
}
