package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneolink/backend/models"
)

var ErrSanctionNotFound = errors.New("sanction not found")

type SanctionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, sanction *models.Sanction) error
	GetByID(ctx context.Context, id int) (*models.Sanction, error)
	Deactivate(ctx context.Context, exec SQLExecutor, id int) error
	ListActiveByPlayer(ctx context.Context, playerID int) ([]*models.Sanction, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Sanction, error)
}

type postgresSanctionRepository struct {
	db *sql.DB
}

func NewPostgresSanctionRepository(db *sql.DB) SanctionRepository {
	return &postgresSanctionRepository{db: db}
}

func (r *postgresSanctionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const sanctionColumns = `id, player_id, tournament_id, kind, matches_suspended, matches_served,
	start_date, end_date, active, reason, triggering_event_id`

func (r *postgresSanctionRepository) Create(ctx context.Context, exec SQLExecutor, sanction *models.Sanction) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO sanctions
			(player_id, tournament_id, kind, matches_suspended, matches_served, start_date, active, reason, triggering_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		sanction.PlayerID,
		sanction.TournamentID,
		sanction.Kind,
		sanction.MatchesSuspended,
		sanction.MatchesServed,
		sanction.StartDate,
		sanction.Active,
		sanction.Reason,
		sanction.TriggeringEventID,
	).Scan(&sanction.ID)
}

func (r *postgresSanctionRepository) GetByID(ctx context.Context, id int) (*models.Sanction, error) {
	query := `SELECT ` + sanctionColumns + ` FROM sanctions WHERE id = $1`
	s, err := scanSanction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSanctionNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresSanctionRepository) Deactivate(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE sanctions SET active = FALSE, end_date = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSanctionNotFound)
}

func (r *postgresSanctionRepository) ListActiveByPlayer(ctx context.Context, playerID int) ([]*models.Sanction, error) {
	query := `SELECT ` + sanctionColumns + ` FROM sanctions WHERE player_id = $1 AND active = TRUE ORDER BY start_date DESC`
	return r.querySanctions(ctx, query, playerID)
}

func (r *postgresSanctionRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Sanction, error) {
	query := `SELECT ` + sanctionColumns + ` FROM sanctions WHERE tournament_id = $1 ORDER BY start_date DESC`
	return r.querySanctions(ctx, query, tournamentID)
}

func (r *postgresSanctionRepository) querySanctions(ctx context.Context, query string, args ...interface{}) ([]*models.Sanction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sanctions := make([]*models.Sanction, 0)
	for rows.Next() {
		s, err := scanSanction(rows)
		if err != nil {
			return nil, err
		}
		sanctions = append(sanctions, s)
	}
	return sanctions, rows.Err()
}

func scanSanction(row interface{ Scan(...interface{}) error }) (*models.Sanction, error) {
	s := &models.Sanction{}
	err := row.Scan(
		&s.ID,
		&s.PlayerID,
		&s.TournamentID,
		&s.Kind,
		&s.MatchesSuspended,
		&s.MatchesServed,
		&s.StartDate,
		&s.EndDate,
		&s.Active,
		&s.Reason,
		&s.TriggeringEventID,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
