package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/torneolink/backend/models"
)

type tournamentFixture struct {
	svc            TournamentService
	tournamentRepo *fakeTournamentRepo
	teamRepo       *fakeTeamRepo
	enrollmentRepo *fakeEnrollmentRepo
}

func newTournamentFixture(t *testing.T) *tournamentFixture {
	t.Helper()
	tournamentRepo := newFakeTournamentRepo()
	teamRepo := newFakeTeamRepo()
	enrollmentRepo := newFakeEnrollmentRepo(teamRepo)

	svc := NewTournamentService(
		fakeTxManager{},
		tournamentRepo,
		teamRepo,
		enrollmentRepo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return &tournamentFixture{
		svc:            svc,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func TestCreateTournamentSeedsDefaultRules(t *testing.T) {
	f := newTournamentFixture(t)
	ctx := context.Background()

	tournament, err := f.svc.CreateTournament(ctx, 1, CreateTournamentInput{
		Name:      "Liga Clausura",
		StartDate: time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, tournament.Rules)

	rules, err := f.tournamentRepo.GetRuleSet(ctx, nil, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, 3, rules.PointsPerWin)
	require.Equal(t, 1, rules.PointsPerDraw)
	require.Equal(t, 0, rules.PointsPerLoss)
	require.Equal(t, 2, rules.YellowCardThreshold)
	require.Equal(t, 3, rules.RedCardSuspensionMatches)
	require.Equal(t, 90, rules.MatchDurationMinutes)
}

func TestCreateTournamentValidation(t *testing.T) {
	f := newTournamentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTournament(ctx, 1, CreateTournamentInput{StartDate: time.Now()})
	require.ErrorIs(t, err, ErrValidationFailed)

	start := time.Now()
	end := start.Add(-24 * time.Hour)
	_, err = f.svc.CreateTournament(ctx, 1, CreateTournamentInput{
		Name:      "Liga Clausura",
		StartDate: start,
		EndDate:   &end,
	})
	require.ErrorIs(t, err, ErrTournamentDateRange)
}

func TestUpdateTournamentRequiresAdmin(t *testing.T) {
	f := newTournamentFixture(t)
	ctx := context.Background()

	tournament, err := f.svc.CreateTournament(ctx, 1, CreateTournamentInput{
		Name:      "Liga Clausura",
		StartDate: time.Now(),
	})
	require.NoError(t, err)

	name := "Liga Clausura 2026"
	_, err = f.svc.UpdateTournament(ctx, tournament.ID, 2, UpdateTournamentInput{Name: &name})
	require.ErrorIs(t, err, ErrNotTournamentAdmin)

	updated, err := f.svc.UpdateTournament(ctx, tournament.ID, 1, UpdateTournamentInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
}

func TestUpdateRulesEnforcesMinimums(t *testing.T) {
	f := newTournamentFixture(t)
	ctx := context.Background()

	tournament, err := f.svc.CreateTournament(ctx, 1, CreateTournamentInput{
		Name:      "Liga Clausura",
		StartDate: time.Now(),
	})
	require.NoError(t, err)

	zero := 0
	_, err = f.svc.UpdateRules(ctx, tournament.ID, 1, UpdateRuleSetInput{YellowCardThreshold: &zero})
	require.ErrorIs(t, err, ErrValidationFailed)

	// Zero is a legal points value, though.
	win := 0
	rules, err := f.svc.UpdateRules(ctx, tournament.ID, 1, UpdateRuleSetInput{PointsPerWin: &win})
	require.NoError(t, err)
	require.Equal(t, 0, rules.PointsPerWin)

	_, err = f.svc.UpdateRules(ctx, tournament.ID, 2, UpdateRuleSetInput{PointsPerWin: &win})
	require.ErrorIs(t, err, ErrNotTournamentAdmin)
}

func TestEnrollTeam(t *testing.T) {
	f := newTournamentFixture(t)
	ctx := context.Background()

	fee := 150.0
	tournament, err := f.svc.CreateTournament(ctx, 1, CreateTournamentInput{
		Name:      "Liga Clausura",
		EntryFee:  &fee,
		StartDate: time.Now(),
	})
	require.NoError(t, err)

	team := &models.Team{Name: "Club Sur", CaptainID: 7, Active: true}
	require.NoError(t, f.teamRepo.Create(ctx, nil, team))

	_, err = f.svc.EnrollTeam(ctx, tournament.ID, team.ID, 8)
	require.ErrorIs(t, err, ErrNotTeamCaptain)

	enrollment, err := f.svc.EnrollTeam(ctx, tournament.ID, team.ID, 7)
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentPaymentPending, enrollment.PaymentStatus)
	require.NotNil(t, enrollment.Amount)
	require.Equal(t, fee, *enrollment.Amount)

	_, err = f.svc.EnrollTeam(ctx, tournament.ID, team.ID, 7)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	teams, err := f.svc.ListEnrolledTeams(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, team.ID, teams[0].ID)
}

func TestMarkEnrollmentPaid(t *testing.T) {
	f := newTournamentFixture(t)
	ctx := context.Background()

	fee := 150.0
	tournament, err := f.svc.CreateTournament(ctx, 1, CreateTournamentInput{
		Name:      "Liga Clausura",
		EntryFee:  &fee,
		StartDate: time.Now(),
	})
	require.NoError(t, err)
	team := &models.Team{Name: "Club Sur", CaptainID: 7, Active: true}
	require.NoError(t, f.teamRepo.Create(ctx, nil, team))
	enrollment, err := f.svc.EnrollTeam(ctx, tournament.ID, team.ID, 7)
	require.NoError(t, err)

	_, err = f.svc.MarkEnrollmentPaid(ctx, enrollment.ID, 0)
	require.ErrorIs(t, err, ErrValidationFailed)

	paid, err := f.svc.MarkEnrollmentPaid(ctx, enrollment.ID, fee)
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentPaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaidAt)

	_, err = f.svc.MarkEnrollmentPaid(ctx, enrollment.ID, fee)
	require.ErrorIs(t, err, ErrValidationFailed)
}
