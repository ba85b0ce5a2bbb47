package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/torneolink/backend/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus, finishedAt *time.Time) error
	// AddGoals shifts one side's score by delta (+1 on goal, -1 on goal
	// deletion) without touching the other columns.
	AddGoals(ctx context.Context, exec SQLExecutor, id int, home bool, delta int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	ListByReferee(ctx context.Context, refereeID int, pending bool) ([]*models.Match, error)
	ListByTeamIDs(ctx context.Context, teamIDs []int) ([]*models.Match, error)
	ListFinishedByTournamentAndTeam(ctx context.Context, tournamentID, teamID int) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, tournament_id, home_team_id, away_team_id, venue_id, referee_id,
	scheduled_at, matchday, home_goals, away_goals, status, finished_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches
			(tournament_id, home_team_id, away_team_id, venue_id, referee_id, scheduled_at, matchday, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		match.TournamentID,
		match.HomeTeamID,
		match.AwayTeamID,
		match.VenueID,
		match.RefereeID,
		match.ScheduledAt,
		match.Matchday,
		match.Status,
	).Scan(&match.ID)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id = $1`, matchColumns)
	match, err := scanMatch(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus, finishedAt *time.Time) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE matches SET status = $1, finished_at = $2 WHERE id = $3`,
		status, finishedAt, id,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) AddGoals(ctx context.Context, exec SQLExecutor, id int, home bool, delta int) error {
	executor := r.getExecutor(exec)
	column := "away_goals"
	if home {
		column = "home_goals"
	}
	query := fmt.Sprintf(`UPDATE matches SET %s = %s + $1 WHERE id = $2`, column, column)
	result, err := executor.ExecContext(ctx, query, delta, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE tournament_id = $1 ORDER BY scheduled_at ASC`, matchColumns)
	return r.queryMatches(ctx, query, tournamentID)
}

func (r *postgresMatchRepository) ListByReferee(ctx context.Context, refereeID int, pending bool) ([]*models.Match, error) {
	if pending {
		query := fmt.Sprintf(
			`SELECT %s FROM matches WHERE referee_id = $1 AND status IN ($2, $3) ORDER BY scheduled_at ASC`,
			matchColumns)
		return r.queryMatches(ctx, query, refereeID, models.MatchStatusScheduled, models.MatchStatusInProgress)
	}
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE referee_id = $1 ORDER BY scheduled_at DESC`, matchColumns)
	return r.queryMatches(ctx, query, refereeID)
}

func (r *postgresMatchRepository) ListByTeamIDs(ctx context.Context, teamIDs []int) ([]*models.Match, error) {
	if len(teamIDs) == 0 {
		return []*models.Match{}, nil
	}
	ids := make([]int64, len(teamIDs))
	for i, id := range teamIDs {
		ids[i] = int64(id)
	}
	query := fmt.Sprintf(
		`SELECT %s FROM matches WHERE home_team_id = ANY($1) OR away_team_id = ANY($1) ORDER BY scheduled_at ASC`,
		matchColumns)
	return r.queryMatches(ctx, query, pq.Array(ids))
}

func (r *postgresMatchRepository) ListFinishedByTournamentAndTeam(ctx context.Context, tournamentID, teamID int) ([]*models.Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE tournament_id = $1 AND status = $2
		  AND (home_team_id = $3 OR away_team_id = $3)
		ORDER BY scheduled_at ASC`, matchColumns)
	return r.queryMatches(ctx, query, tournamentID, models.MatchStatusFinished, teamID)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID,
		&m.TournamentID,
		&m.HomeTeamID,
		&m.AwayTeamID,
		&m.VenueID,
		&m.RefereeID,
		&m.ScheduledAt,
		&m.Matchday,
		&m.HomeGoals,
		&m.AwayGoals,
		&m.Status,
		&m.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
