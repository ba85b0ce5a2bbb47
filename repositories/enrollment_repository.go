package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/torneolink/backend/models"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrEnrollmentConflict = errors.New("team already enrolled in tournament")
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int) (*models.Enrollment, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Enrollment, error)
	ListTeamsByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	MarkPaid(ctx context.Context, id int, amount float64, paidAt time.Time) error
}

type postgresEnrollmentRepository struct {
	db *sql.DB
}

func NewPostgresEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &postgresEnrollmentRepository{db: db}
}

func (r *postgresEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (tournament_id, team_id, payment_status, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, enrolled_at`

	err := r.db.QueryRowContext(ctx, query,
		enrollment.TournamentID,
		enrollment.TeamID,
		enrollment.PaymentStatus,
		enrollment.Amount,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrEnrollmentConflict
		}
		return err
	}
	return nil
}

func (r *postgresEnrollmentRepository) GetByID(ctx context.Context, id int) (*models.Enrollment, error) {
	query := `
		SELECT id, tournament_id, team_id, payment_status, amount, enrolled_at, paid_at
		FROM enrollments
		WHERE id = $1`

	e := &models.Enrollment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.TournamentID, &e.TeamID, &e.PaymentStatus, &e.Amount, &e.EnrolledAt, &e.PaidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *postgresEnrollmentRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Enrollment, error) {
	query := `
		SELECT id, tournament_id, team_id, payment_status, amount, enrolled_at, paid_at
		FROM enrollments
		WHERE tournament_id = $1
		ORDER BY enrolled_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]*models.Enrollment, 0)
	for rows.Next() {
		e := &models.Enrollment{}
		err := rows.Scan(&e.ID, &e.TournamentID, &e.TeamID, &e.PaymentStatus, &e.Amount, &e.EnrolledAt, &e.PaidAt)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *postgresEnrollmentRepository) ListTeamsByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.logo_key, t.primary_color, t.secondary_color, t.captain_id, t.active, t.registered_at
		FROM enrollments e
		JOIN teams t ON t.id = e.team_id
		WHERE e.tournament_id = $1
		ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
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

func (r *postgresEnrollmentRepository) MarkPaid(ctx context.Context, id int, amount float64, paidAt time.Time) error {
	query := `
		UPDATE enrollments SET payment_status = $1, amount = $2, paid_at = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, models.EnrollmentPaymentPaid, amount, paidAt, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEnrollmentNotFound)
}
