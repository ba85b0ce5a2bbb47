package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/torneolink/backend/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByUserID(ctx context.Context, userID int) (*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.PlayerStatus) error
	Delete(ctx context.Context, id int) error
	ListByTeamID(ctx context.Context, teamID int) ([]*models.Player, error)
	// SquadNumberTaken reports whether another player on the team already
	// wears the given number. excludePlayerID skips the player being edited.
	SquadNumberTaken(ctx context.Context, teamID, number, excludePlayerID int) (bool, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, user_id, team_id, squad_number, position, status, birth_date, registered_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (user_id, team_id, squad_number, position, status, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, registered_at`

	return executor.QueryRowContext(ctx, query,
		player.UserID,
		player.TeamID,
		player.SquadNumber,
		player.Position,
		player.Status,
		player.BirthDate,
	).Scan(&player.ID, &player.RegisteredAt)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE id = $1`, playerColumns)
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetByUserID(ctx context.Context, userID int) (*models.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE user_id = $1`, playerColumns)
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, userID))
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			squad_number = $1,
			position = $2,
			status = $3,
			birth_date = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		player.SquadNumber,
		player.Position,
		player.Status,
		player.BirthDate,
		player.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.PlayerStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE players SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ListByTeamID(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `
		SELECT p.id, p.user_id, p.team_id, p.squad_number, p.position, p.status, p.birth_date, p.registered_at,
		       u.id, u.email, u.name, u.phone, u.active, u.registered_at
		FROM players p
		JOIN users u ON u.id = p.user_id
		WHERE p.team_id = $1
		ORDER BY p.squad_number ASC NULLS LAST`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player := &models.Player{User: &models.User{}}
		err := rows.Scan(
			&player.ID,
			&player.UserID,
			&player.TeamID,
			&player.SquadNumber,
			&player.Position,
			&player.Status,
			&player.BirthDate,
			&player.RegisteredAt,
			&player.User.ID,
			&player.User.Email,
			&player.User.Name,
			&player.User.Phone,
			&player.User.Active,
			&player.User.RegisteredAt,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) SquadNumberTaken(ctx context.Context, teamID, number, excludePlayerID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM players
			WHERE team_id = $1 AND squad_number = $2 AND id <> $3
		)`
	var taken bool
	if err := r.db.QueryRowContext(ctx, query, teamID, number, excludePlayerID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *postgresPlayerRepository) scanPlayer(row *sql.Row) (*models.Player, error) {
	player := &models.Player{}
	err := row.Scan(
		&player.ID,
		&player.UserID,
		&player.TeamID,
		&player.SquadNumber,
		&player.Position,
		&player.Status,
		&player.BirthDate,
		&player.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}
