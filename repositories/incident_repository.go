package repositories

import (
	"context"
	"database/sql"

	"github.com/torneolink/backend/models"
)

type IncidentRepository interface {
	Create(ctx context.Context, incident *models.MatchIncident) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.MatchIncident, error)
}

type postgresIncidentRepository struct {
	db *sql.DB
}

func NewPostgresIncidentRepository(db *sql.DB) IncidentRepository {
	return &postgresIncidentRepository{db: db}
}

func (r *postgresIncidentRepository) Create(ctx context.Context, incident *models.MatchIncident) error {
	query := `
		INSERT INTO match_incidents (match_id, referee_id, kind, description, severity, evidence_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, reported_at`

	return r.db.QueryRowContext(ctx, query,
		incident.MatchID,
		incident.RefereeID,
		incident.Kind,
		incident.Description,
		incident.Severity,
		incident.EvidenceURL,
	).Scan(&incident.ID, &incident.ReportedAt)
}

func (r *postgresIncidentRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchIncident, error) {
	query := `
		SELECT id, match_id, referee_id, kind, description, severity, evidence_url, reported_at
		FROM match_incidents
		WHERE match_id = $1
		ORDER BY reported_at ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incidents := make([]*models.MatchIncident, 0)
	for rows.Next() {
		i := &models.MatchIncident{}
		err := rows.Scan(&i.ID, &i.MatchID, &i.RefereeID, &i.Kind, &i.Description, &i.Severity, &i.EvidenceURL, &i.ReportedAt)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, i)
	}
	return incidents, rows.Err()
}
