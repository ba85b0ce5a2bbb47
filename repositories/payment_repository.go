package repositories

import (
	"context"
	"database/sql"

	"github.com/torneolink/backend/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByUser(ctx context.Context, userID int) ([]*models.Payment, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Payment, error)
}

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (user_id, tournament_id, match_id, kind, amount, method, status, reference, receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, paid_at`

	return r.db.QueryRowContext(ctx, query,
		payment.UserID,
		payment.TournamentID,
		payment.MatchID,
		payment.Kind,
		payment.Amount,
		payment.Method,
		payment.Status,
		payment.Reference,
		payment.ReceiptURL,
	).Scan(&payment.ID, &payment.PaidAt)
}

func (r *postgresPaymentRepository) ListByUser(ctx context.Context, userID int) ([]*models.Payment, error) {
	query := paymentSelect + ` WHERE user_id = $1 ORDER BY paid_at DESC`
	return r.queryPayments(ctx, query, userID)
}

func (r *postgresPaymentRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Payment, error) {
	query := paymentSelect + ` WHERE tournament_id = $1 ORDER BY paid_at DESC`
	return r.queryPayments(ctx, query, tournamentID)
}

const paymentSelect = `
	SELECT id, user_id, tournament_id, match_id, kind, amount, method, status, reference, paid_at, receipt_url
	FROM payments`

func (r *postgresPaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*models.Payment, 0)
	for rows.Next() {
		p := &models.Payment{}
		err := rows.Scan(&p.ID, &p.UserID, &p.TournamentID, &p.MatchID, &p.Kind, &p.Amount,
			&p.Method, &p.Status, &p.Reference, &p.PaidAt, &p.ReceiptURL)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
