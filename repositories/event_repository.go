package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/torneolink/backend/models"
)

var ErrEventNotFound = errors.New("match event not found")

// ScorerRow is one line of a tournament's scorer table.
type ScorerRow struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name"`
	Goals    int    `json:"goals"`
}

type EventRepository interface {
	Create(ctx context.Context, exec SQLExecutor, event *models.MatchEvent) error
	GetByID(ctx context.Context, id int) (*models.MatchEvent, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error)
	// CountYellowCards counts a player's yellow-card events across all
	// matches of the tournament, including any recorded in the current
	// transaction when exec is the transaction.
	CountYellowCards(ctx context.Context, exec SQLExecutor, playerID, tournamentID int) (int, error)
	CountByKindAndReferee(ctx context.Context, kind models.EventKind, refereeID int) (int, error)
	ListScorersByTournament(ctx context.Context, tournamentID int) ([]ScorerRow, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresEventRepository) Create(ctx context.Context, exec SQLExecutor, event *models.MatchEvent) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_events (match_id, player_id, kind, minute, assist_player_id, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, recorded_at`

	return executor.QueryRowContext(ctx, query,
		event.MatchID,
		event.PlayerID,
		event.Kind,
		event.Minute,
		event.AssistPlayerID,
		event.Comment,
	).Scan(&event.ID, &event.RecordedAt)
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.MatchEvent, error) {
	query := `
		SELECT id, match_id, player_id, kind, minute, assist_player_id, comment, recorded_at
		FROM match_events
		WHERE id = $1`

	e := &models.MatchEvent{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.MatchID, &e.PlayerID, &e.Kind, &e.Minute, &e.AssistPlayerID, &e.Comment, &e.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *postgresEventRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM match_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	query := `
		SELECT e.id, e.match_id, e.player_id, e.kind, e.minute, e.assist_player_id, e.comment, e.recorded_at,
		       p.id, p.user_id, p.team_id, p.squad_number, p.position, p.status,
		       u.name
		FROM match_events e
		JOIN players p ON p.id = e.player_id
		JOIN users u ON u.id = p.user_id
		WHERE e.match_id = $1
		ORDER BY e.minute ASC NULLS LAST, e.id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.MatchEvent, 0)
	for rows.Next() {
		e := &models.MatchEvent{Player: &models.Player{User: &models.User{}}}
		err := rows.Scan(
			&e.ID, &e.MatchID, &e.PlayerID, &e.Kind, &e.Minute, &e.AssistPlayerID, &e.Comment, &e.RecordedAt,
			&e.Player.ID, &e.Player.UserID, &e.Player.TeamID, &e.Player.SquadNumber, &e.Player.Position, &e.Player.Status,
			&e.Player.User.Name,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *postgresEventRepository) CountYellowCards(ctx context.Context, exec SQLExecutor, playerID, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT COUNT(*)
		FROM match_events e
		JOIN matches m ON m.id = e.match_id
		WHERE e.player_id = $1 AND e.kind = $2 AND m.tournament_id = $3`

	var count int
	err := executor.QueryRowContext(ctx, query, playerID, models.EventYellowCard, tournamentID).Scan(&count)
	return count, err
}

func (r *postgresEventRepository) CountByKindAndReferee(ctx context.Context, kind models.EventKind, refereeID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM match_events e
		JOIN matches m ON m.id = e.match_id
		WHERE e.kind = $1 AND m.referee_id = $2`

	var count int
	err := r.db.QueryRowContext(ctx, query, kind, refereeID).Scan(&count)
	return count, err
}

func (r *postgresEventRepository) ListScorersByTournament(ctx context.Context, tournamentID int) ([]ScorerRow, error) {
	query := `
		SELECT e.player_id, u.name, t.name, COUNT(*) AS goals
		FROM match_events e
		JOIN matches m ON m.id = e.match_id
		JOIN players p ON p.id = e.player_id
		JOIN users u ON u.id = p.user_id
		JOIN teams t ON t.id = p.team_id
		WHERE e.kind = $1 AND m.tournament_id = $2
		GROUP BY e.player_id, u.name, t.name
		ORDER BY goals DESC, u.name ASC`

	rows, err := r.db.QueryContext(ctx, query, models.EventGoal, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scorers := make([]ScorerRow, 0)
	for rows.Next() {
		var s ScorerRow
		if err := rows.Scan(&s.PlayerID, &s.Name, &s.TeamName, &s.Goals); err != nil {
			return nil, err
		}
		scorers = append(scorers, s)
	}
	return scorers, rows.Err()
}
