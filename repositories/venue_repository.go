package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneolink/backend/models"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	List(ctx context.Context) ([]*models.Venue, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (name, address, latitude, longitude, capacity, surface, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		venue.Name, venue.Address, venue.Latitude, venue.Longitude,
		venue.Capacity, venue.Surface, venue.Active,
	).Scan(&venue.ID)
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `
		SELECT id, name, address, latitude, longitude, capacity, surface, active
		FROM venues WHERE id = $1`

	v := &models.Venue{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Address, &v.Latitude, &v.Longitude, &v.Capacity, &v.Surface, &v.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *postgresVenueRepository) Update(ctx context.Context, venue *models.Venue) error {
	query := `
		UPDATE venues SET
			name = $1, address = $2, latitude = $3, longitude = $4,
			capacity = $5, surface = $6, active = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		venue.Name, venue.Address, venue.Latitude, venue.Longitude,
		venue.Capacity, venue.Surface, venue.Active, venue.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]*models.Venue, error) {
	query := `
		SELECT id, name, address, latitude, longitude, capacity, surface, active
		FROM venues WHERE active = TRUE ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*models.Venue, 0)
	for rows.Next() {
		v := &models.Venue{}
		err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Latitude, &v.Longitude, &v.Capacity, &v.Surface, &v.Active)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
