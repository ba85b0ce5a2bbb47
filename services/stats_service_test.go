package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/torneolink/backend/models"
)

type statsFixture struct {
	svc            StatsService
	teamRepo       *fakeTeamRepo
	playerRepo     *fakePlayerRepo
	tournamentRepo *fakeTournamentRepo
	enrollmentRepo *fakeEnrollmentRepo
	matchRepo      *fakeMatchRepo
	eventRepo      *fakeEventRepo

	tournament *models.Tournament
}

func newStatsFixture(t *testing.T) *statsFixture {
	t.Helper()
	ctx := context.Background()

	teamRepo := newFakeTeamRepo()
	playerRepo := newFakePlayerRepo()
	tournamentRepo := newFakeTournamentRepo()
	enrollmentRepo := newFakeEnrollmentRepo(teamRepo)
	matchRepo := newFakeMatchRepo()
	eventRepo := newFakeEventRepo(matchRepo)

	tournament := &models.Tournament{Name: "Copa Invierno", AdminID: 1, StartDate: time.Now(), Active: true}
	require.NoError(t, tournamentRepo.Create(ctx, nil, tournament))
	require.NoError(t, tournamentRepo.CreateRuleSet(ctx, nil, models.DefaultRuleSet(tournament.ID)))

	return &statsFixture{
		svc:            NewStatsService(tournamentRepo, enrollmentRepo, matchRepo, eventRepo),
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		enrollmentRepo: enrollmentRepo,
		matchRepo:      matchRepo,
		eventRepo:      eventRepo,
		tournament:     tournament,
	}
}

func (f *statsFixture) enrollTeam(t *testing.T, name string) *models.Team {
	t.Helper()
	ctx := context.Background()
	team := &models.Team{Name: name, CaptainID: 1, Active: true}
	require.NoError(t, f.teamRepo.Create(ctx, nil, team))
	require.NoError(t, f.enrollmentRepo.Create(ctx, &models.Enrollment{
		TournamentID: f.tournament.ID,
		TeamID:       team.ID,
	}))
	return team
}

func (f *statsFixture) finishedMatch(t *testing.T, homeID, awayID, homeGoals, awayGoals int) {
	t.Helper()
	now := time.Now()
	match := &models.Match{
		TournamentID: f.tournament.ID,
		HomeTeamID:   homeID,
		AwayTeamID:   awayID,
		ScheduledAt:  now.Add(-2 * time.Hour),
		Status:       models.MatchStatusFinished,
		HomeGoals:    homeGoals,
		AwayGoals:    awayGoals,
		FinishedAt:   &now,
	}
	require.NoError(t, f.matchRepo.Create(context.Background(), match))
}

func TestComputeStandingsUsesRuleSetPoints(t *testing.T) {
	f := newStatsFixture(t)
	ctx := context.Background()

	// Non-standard points: 2 per win, 1 per draw.
	rules, err := f.tournamentRepo.GetRuleSet(ctx, nil, f.tournament.ID)
	require.NoError(t, err)
	rules.PointsPerWin = 2
	require.NoError(t, f.tournamentRepo.UpdateRuleSet(ctx, rules))

	alpha := f.enrollTeam(t, "Alpha")
	beta := f.enrollTeam(t, "Beta")
	f.finishedMatch(t, alpha.ID, beta.ID, 2, 0)
	f.finishedMatch(t, beta.ID, alpha.ID, 1, 1)

	table, err := f.svc.ComputeStandings(ctx, f.tournament.ID)
	require.NoError(t, err)
	require.Len(t, table, 2)

	require.Equal(t, alpha.ID, table[0].TeamID)
	require.Equal(t, 3, table[0].Points)
	require.Equal(t, 1, table[0].Wins)
	require.Equal(t, 1, table[0].Draws)
	require.Equal(t, 2, table[0].Played)
	require.Equal(t, 3, table[0].GoalsFor)
	require.Equal(t, 1, table[0].GoalsAgainst)
	require.Equal(t, 2, table[0].GoalDifference)
	require.Equal(t, 1, table[0].Position)

	require.Equal(t, beta.ID, table[1].TeamID)
	require.Equal(t, 1, table[1].Points)
	require.Equal(t, 1, table[1].Losses)
	require.Equal(t, 2, table[1].Position)
}

func TestComputeStandingsTieBreakOrder(t *testing.T) {
	f := newStatsFixture(t)
	ctx := context.Background()

	alpha := f.enrollTeam(t, "Alpha")
	beta := f.enrollTeam(t, "Beta")
	gamma := f.enrollTeam(t, "Gamma")
	delta := f.enrollTeam(t, "Delta")

	// All four finish on 3 points. Diff splits alpha from the rest, goals
	// for splits beta from gamma, team id orders gamma before delta.
	f.finishedMatch(t, alpha.ID, delta.ID, 3, 0)
	f.finishedMatch(t, beta.ID, delta.ID, 2, 1)
	f.finishedMatch(t, gamma.ID, delta.ID, 1, 0)
	f.finishedMatch(t, delta.ID, alpha.ID, 1, 0)
	f.finishedMatch(t, delta.ID, beta.ID, 1, 0)
	f.finishedMatch(t, delta.ID, gamma.ID, 1, 0)

	table, err := f.svc.ComputeStandings(ctx, f.tournament.ID)
	require.NoError(t, err)
	require.Len(t, table, 4)

	// alpha: +2 diff; beta: +1 diff, 2 GF; gamma: 0 diff, 1 GF; delta: -3 diff.
	require.Equal(t, []int{alpha.ID, beta.ID, gamma.ID, delta.ID}, []int{
		table[0].TeamID, table[1].TeamID, table[2].TeamID, table[3].TeamID,
	})
	for _, row := range table[:3] {
		require.Equal(t, 3, row.Points)
	}
}

func TestComputeStandingsIgnoresUnfinishedMatches(t *testing.T) {
	f := newStatsFixture(t)
	ctx := context.Background()

	alpha := f.enrollTeam(t, "Alpha")
	beta := f.enrollTeam(t, "Beta")

	match := &models.Match{
		TournamentID: f.tournament.ID,
		HomeTeamID:   alpha.ID,
		AwayTeamID:   beta.ID,
		ScheduledAt:  time.Now(),
		Status:       models.MatchStatusInProgress,
		HomeGoals:    4,
	}
	require.NoError(t, f.matchRepo.Create(ctx, match))

	table, err := f.svc.ComputeStandings(ctx, f.tournament.ID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	for _, row := range table {
		require.Zero(t, row.Played)
		require.Zero(t, row.Points)
	}
}

func TestComputeStandingsUnknownTournament(t *testing.T) {
	f := newStatsFixture(t)

	_, err := f.svc.ComputeStandings(context.Background(), f.tournament.ID+100)
	require.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestComputeScorersOrdersByGoals(t *testing.T) {
	f := newStatsFixture(t)
	ctx := context.Background()

	alpha := f.enrollTeam(t, "Alpha")
	beta := f.enrollTeam(t, "Beta")

	striker := &models.Player{UserID: 20, TeamID: alpha.ID, Status: models.PlayerStatusActive}
	winger := &models.Player{UserID: 21, TeamID: beta.ID, Status: models.PlayerStatusActive}
	require.NoError(t, f.playerRepo.Create(ctx, nil, striker))
	require.NoError(t, f.playerRepo.Create(ctx, nil, winger))

	match := &models.Match{
		TournamentID: f.tournament.ID,
		HomeTeamID:   alpha.ID,
		AwayTeamID:   beta.ID,
		ScheduledAt:  time.Now(),
		Status:       models.MatchStatusFinished,
	}
	require.NoError(t, f.matchRepo.Create(ctx, match))

	for i := 0; i < 2; i++ {
		require.NoError(t, f.eventRepo.Create(ctx, nil, &models.MatchEvent{
			MatchID: match.ID, PlayerID: striker.ID, Kind: models.EventGoal,
		}))
	}
	require.NoError(t, f.eventRepo.Create(ctx, nil, &models.MatchEvent{
		MatchID: match.ID, PlayerID: winger.ID, Kind: models.EventGoal,
	}))

	scorers, err := f.svc.ComputeScorers(ctx, f.tournament.ID)
	require.NoError(t, err)
	require.Len(t, scorers, 2)
	require.Equal(t, striker.ID, scorers[0].PlayerID)
	require.Equal(t, 2, scorers[0].Goals)
	require.Equal(t, winger.ID, scorers[1].PlayerID)
	require.Equal(t, 1, scorers[1].Goals)
}

func TestRefereeStatsCountsFinishedMatchesOnly(t *testing.T) {
	f := newStatsFixture(t)
	ctx := context.Background()

	alpha := f.enrollTeam(t, "Alpha")
	beta := f.enrollTeam(t, "Beta")
	player := &models.Player{UserID: 30, TeamID: alpha.ID, Status: models.PlayerStatusActive}
	require.NoError(t, f.playerRepo.Create(ctx, nil, player))

	refereeID := 99
	now := time.Now()
	finished := &models.Match{
		TournamentID: f.tournament.ID,
		HomeTeamID:   alpha.ID,
		AwayTeamID:   beta.ID,
		RefereeID:    &refereeID,
		ScheduledAt:  now.Add(-time.Hour),
		Status:       models.MatchStatusFinished,
		FinishedAt:   &now,
	}
	pending := &models.Match{
		TournamentID: f.tournament.ID,
		HomeTeamID:   beta.ID,
		AwayTeamID:   alpha.ID,
		RefereeID:    &refereeID,
		ScheduledAt:  now.Add(time.Hour),
		Status:       models.MatchStatusScheduled,
	}
	require.NoError(t, f.matchRepo.Create(ctx, finished))
	require.NoError(t, f.matchRepo.Create(ctx, pending))

	for i := 0; i < 3; i++ {
		require.NoError(t, f.eventRepo.Create(ctx, nil, &models.MatchEvent{
			MatchID: finished.ID, PlayerID: player.ID, Kind: models.EventYellowCard,
		}))
	}
	require.NoError(t, f.eventRepo.Create(ctx, nil, &models.MatchEvent{
		MatchID: finished.ID, PlayerID: player.ID, Kind: models.EventRedCard,
	}))

	stats, err := f.svc.RefereeStats(ctx, refereeID)
	require.NoError(t, err)
	require.Equal(t, 1, stats.MatchesRefereed)
	require.Equal(t, 3, stats.YellowCards)
	require.Equal(t, 1, stats.RedCards)
	require.InDelta(t, 4.0, stats.CardsPerMatch, 0.0001)
}

func TestRefereeStatsNoFinishedMatches(t *testing.T) {
	f := newStatsFixture(t)

	stats, err := f.svc.RefereeStats(context.Background(), 12345)
	require.NoError(t, err)
	require.Zero(t, stats.MatchesRefereed)
	require.Zero(t, stats.CardsPerMatch)
}
