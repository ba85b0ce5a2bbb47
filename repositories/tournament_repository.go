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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
	ErrRuleSetNotFound        = errors.New("tournament rule set not found")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	ListActive(ctx context.Context) ([]*models.Tournament, error)
	CreateRuleSet(ctx context.Context, exec SQLExecutor, rules *models.RuleSet) error
	GetRuleSet(ctx context.Context, exec SQLExecutor, tournamentID int) (*models.RuleSet, error)
	UpdateRuleSet(ctx context.Context, rules *models.RuleSet) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `id, name, category, entry_fee, referee_fee, start_date, end_date, admin_id, active, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournaments (name, category, entry_fee, referee_fee, start_date, end_date, admin_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.Category,
		tournament.EntryFee,
		tournament.RefereeFee,
		tournament.StartDate,
		tournament.EndDate,
		tournament.AdminID,
		tournament.Active,
	).Scan(&tournament.ID, &tournament.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := fmt.Sprintf(`SELECT %s FROM tournaments WHERE id = $1`, tournamentColumns)
	t, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1,
			category = $2,
			entry_fee = $3,
			referee_fee = $4,
			start_date = $5,
			end_date = $6,
			active = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		tournament.Name,
		tournament.Category,
		tournament.EntryFee,
		tournament.RefereeFee,
		tournament.StartDate,
		tournament.EndDate,
		tournament.Active,
		tournament.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) ListActive(ctx context.Context) ([]*models.Tournament, error) {
	query := fmt.Sprintf(`SELECT %s FROM tournaments WHERE active = TRUE ORDER BY start_date DESC`, tournamentColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) CreateRuleSet(ctx context.Context, exec SQLExecutor, rules *models.RuleSet) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament_rules
			(tournament_id, points_per_win, points_per_draw, points_per_loss,
			 yellow_card_threshold, red_card_suspension_matches, match_duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		rules.TournamentID,
		rules.PointsPerWin,
		rules.PointsPerDraw,
		rules.PointsPerLoss,
		rules.YellowCardThreshold,
		rules.RedCardSuspensionMatches,
		rules.MatchDurationMinutes,
	).Scan(&rules.ID)
}

func (r *postgresTournamentRepository) GetRuleSet(ctx context.Context, exec SQLExecutor, tournamentID int) (*models.RuleSet, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, points_per_win, points_per_draw, points_per_loss,
		       yellow_card_threshold, red_card_suspension_matches, match_duration_minutes
		FROM tournament_rules
		WHERE tournament_id = $1`

	rules := &models.RuleSet{}
	err := executor.QueryRowContext(ctx, query, tournamentID).Scan(
		&rules.ID,
		&rules.TournamentID,
		&rules.PointsPerWin,
		&rules.PointsPerDraw,
		&rules.PointsPerLoss,
		&rules.YellowCardThreshold,
		&rules.RedCardSuspensionMatches,
		&rules.MatchDurationMinutes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleSetNotFound
		}
		return nil, err
	}
	return rules, nil
}

func (r *postgresTournamentRepository) UpdateRuleSet(ctx context.Context, rules *models.RuleSet) error {
	query := `
		UPDATE tournament_rules SET
			points_per_win = $1,
			points_per_draw = $2,
			points_per_loss = $3,
			yellow_card_threshold = $4,
			red_card_suspension_matches = $5,
			match_duration_minutes = $6
		WHERE tournament_id = $7`

	result, err := r.db.ExecContext(ctx, query,
		rules.PointsPerWin,
		rules.PointsPerDraw,
		rules.PointsPerLoss,
		rules.YellowCardThreshold,
		rules.RedCardSuspensionMatches,
		rules.MatchDurationMinutes,
		rules.TournamentID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRuleSetNotFound)
}

func scanTournament(row interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Category,
		&t.EntryFee,
		&t.RefereeFee,
		&t.StartDate,
		&t.EndDate,
		&t.AdminID,
		&t.Active,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
