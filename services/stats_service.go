package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/repositories"
)

// StandingRow is one row of a tournament table.
type StandingRow struct {
	Position       int    `json:"position"`
	TeamID         int    `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type ScorerRow struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name"`
	Goals    int    `json:"goals"`
}

type RefereeStats struct {
	UserID          int     `json:"user_id"`
	MatchesRefereed int     `json:"matches_refereed"`
	YellowCards     int     `json:"yellow_cards"`
	RedCards        int     `json:"red_cards"`
	CardsPerMatch   float64 `json:"cards_per_match"`
}

type StatsService interface {
	// ComputeStandings folds every enrolled team's finished matches into a
	// table. Points come from the tournament's rule set, not a fixed 3/1/0.
	ComputeStandings(ctx context.Context, tournamentID int) ([]StandingRow, error)
	ComputeScorers(ctx context.Context, tournamentID int) ([]ScorerRow, error)
	RefereeStats(ctx context.Context, userID int) (*RefereeStats, error)
}

type statsService struct {
	tournamentRepo repositories.TournamentRepository
	enrollmentRepo repositories.EnrollmentRepository
	matchRepo      repositories.MatchRepository
	eventRepo      repositories.EventRepository
}

func NewStatsService(
	tournamentRepo repositories.TournamentRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	matchRepo repositories.MatchRepository,
	eventRepo repositories.EventRepository,
) StatsService {
	return &statsService{
		tournamentRepo: tournamentRepo,
		enrollmentRepo: enrollmentRepo,
		matchRepo:      matchRepo,
		eventRepo:      eventRepo,
	}
}

func (s *statsService) ComputeStandings(ctx context.Context, tournamentID int) ([]StandingRow, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	rules, err := s.tournamentRepo.GetRuleSet(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule set: %w", err)
	}
	teams, err := s.enrollmentRepo.ListTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrolled teams: %w", err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	rows := make(map[int]*StandingRow, len(teams))
	for _, team := range teams {
		rows[team.ID] = &StandingRow{TeamID: team.ID, TeamName: team.Name}
	}

	for _, match := range matches {
		if match.Status != models.MatchStatusFinished {
			continue
		}
		home, homeOK := rows[match.HomeTeamID]
		away, awayOK := rows[match.AwayTeamID]
		if homeOK {
			applyResult(home, rules, match.HomeGoals, match.AwayGoals)
		}
		if awayOK {
			applyResult(away, rules, match.AwayGoals, match.HomeGoals)
		}
	}

	table := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})
	for i := range table {
		table[i].Position = i + 1
	}
	return table, nil
}

func applyResult(row *StandingRow, rules *models.RuleSet, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Wins++
		row.Points += rules.PointsPerWin
	case scored == conceded:
		row.Draws++
		row.Points += rules.PointsPerDraw
	default:
		row.Losses++
		row.Points += rules.PointsPerLoss
	}
}

func (s *statsService) ComputeScorers(ctx context.Context, tournamentID int) ([]ScorerRow, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	rawRows, err := s.eventRepo.ListScorersByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scorers: %w", err)
	}
	rows := make([]ScorerRow, len(rawRows))
	for i, r := range rawRows {
		rows[i] = ScorerRow{
			PlayerID: r.PlayerID,
			Name:     r.Name,
			TeamName: r.TeamName,
			Goals:    r.Goals,
		}
	}
	return rows, nil
}

// RefereeStats fans the three independent queries out concurrently.
func (s *statsService) RefereeStats(ctx context.Context, userID int) (*RefereeStats, error) {
	var (
		matches []*models.Match
		yellows int
		reds    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByReferee(gctx, userID, false)
		if err != nil {
			return fmt.Errorf("failed to load refereed matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		yellows, err = s.eventRepo.CountByKindAndReferee(gctx, models.EventYellowCard, userID)
		if err != nil {
			return fmt.Errorf("failed to count yellow cards: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reds, err = s.eventRepo.CountByKindAndReferee(gctx, models.EventRedCard, userID)
		if err != nil {
			return fmt.Errorf("failed to count red cards: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	finished := 0
	for _, m := range matches {
		if m.Status == models.MatchStatusFinished {
			finished++
		}
	}

	stats := &RefereeStats{
		UserID:          userID,
		MatchesRefereed: finished,
		YellowCards:     yellows,
		RedCards:        reds,
	}
	if finished > 0 {
		stats.CardsPerMatch = float64(yellows+reds) / float64(finished)
	}
	return stats, nil
}
