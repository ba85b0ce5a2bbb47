package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/torneolink/backend/models"
)

func newInviteFixture(t *testing.T) (*inviteService, *models.Team) {
	t.Helper()
	teamRepo := newFakeTeamRepo()
	team := &models.Team{Name: "Deportivo Centro", CaptainID: 7, Active: true}
	require.NoError(t, teamRepo.Create(context.Background(), nil, team))

	svc := &inviteService{
		teamRepo: teamRepo,
		nonce:    func() string { return "fixed-nonce" },
		now:      func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local) },
	}
	return svc, team
}

func TestGenerateTokenWireFormat(t *testing.T) {
	svc, team := newInviteFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		kind   InviteKind
		teamID int
		want   string
	}{
		{
			name: "captain token carries no team",
			kind: InviteKindCaptain, teamID: team.ID,
			want: "CAPITAN|2025-03-17T12:00:00|0|fixed-nonce",
		},
		{
			name: "referee token carries no team",
			kind: InviteKindReferee, teamID: 42,
			want: "ARBITRO|2025-03-17T12:00:00|0|fixed-nonce",
		},
		{
			name: "player token keeps the team id",
			kind: InviteKindPlayer, teamID: team.ID,
			want: fmt.Sprintf("JUGADOR|2025-03-17T12:00:00|%d|fixed-nonce", team.ID),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, err := svc.GenerateToken(ctx, tc.kind, tc.teamID)
			require.NoError(t, err)
			require.Equal(t, tc.want, token)
		})
	}
}

func TestGenerateTokenRejectsUnknownKindAndMissingTeam(t *testing.T) {
	svc, team := newInviteFixture(t)
	ctx := context.Background()

	_, err := svc.GenerateToken(ctx, InviteKind("ENTRENADOR"), 0)
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.GenerateToken(ctx, InviteKindPlayer, team.ID+100)
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestGeneratePlayerTokenRequiresOwnTeam(t *testing.T) {
	svc, team := newInviteFixture(t)
	ctx := context.Background()

	_, err := svc.GeneratePlayerToken(ctx, team.CaptainID+1, team.ID)
	require.ErrorIs(t, err, ErrNotTeamCaptain)

	token, err := svc.GeneratePlayerToken(ctx, team.CaptainID, team.ID)
	require.NoError(t, err)
	require.Contains(t, token, "JUGADOR|")
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc, team := newInviteFixture(t)
	ctx := context.Background()

	raw, err := svc.GenerateToken(ctx, InviteKindPlayer, team.ID)
	require.NoError(t, err)

	decoded, err := svc.ValidateToken(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, InviteKindPlayer, decoded.Kind)
	require.Equal(t, team.ID, decoded.TeamID)
	require.Equal(t, "fixed-nonce", decoded.Nonce)
	require.True(t, decoded.ExpiresAt.Equal(svc.now().Add(inviteTokenValidity)))
}

func TestValidateTokenFailures(t *testing.T) {
	svc, _ := newInviteFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"too few fields", "CAPITAN|2025-03-17T12:00:00|0", ErrTokenMalformed},
		{"garbage expiry", "CAPITAN|not-a-date|0|n", ErrTokenMalformed},
		{"expired", "CAPITAN|2025-03-01T12:00:00|0|n", ErrTokenExpired},
		{"unknown kind", "ENTRENADOR|2025-03-17T12:00:00|0|n", ErrTokenMalformed},
		{"player token with bad team id", "JUGADOR|2025-03-17T12:00:00|zero|n", ErrTokenMalformed},
		{"player token with non-positive team id", "JUGADOR|2025-03-17T12:00:00|0|n", ErrTokenMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tc.token)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateTokenExpiryCheckedFirst(t *testing.T) {
	svc, _ := newInviteFixture(t)

	// Expired and with a broken tail: expiry wins.
	_, err := svc.ValidateToken(context.Background(), "ENTRENADOR|2025-03-01T12:00:00|zero|n")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestGenerateQRProducesPNG(t *testing.T) {
	svc, team := newInviteFixture(t)
	ctx := context.Background()

	png, err := svc.GenerateQR(ctx, InviteKindCaptain, 0)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = svc.GeneratePlayerQR(ctx, team.CaptainID+1, team.ID)
	require.ErrorIs(t, err, ErrNotTeamCaptain)
}
