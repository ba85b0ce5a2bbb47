package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/torneolink/backend/repositories"
)

type InviteKind string

const (
	InviteKindCaptain InviteKind = "CAPITAN"
	InviteKindPlayer  InviteKind = "JUGADOR"
	InviteKindReferee InviteKind = "ARBITRO"
)

const (
	inviteTokenTimeLayout = "2006-01-02T15:04:05"
	inviteTokenValidity   = 7 * 24 * time.Hour
	inviteQRSize          = 256
)

// InviteToken is the decoded form of an invitation token. The wire format is
// four pipe-separated fields: kind, expiry timestamp, team id (zero when the
// kind carries no team), nonce.
type InviteToken struct {
	Kind      InviteKind `json:"kind"`
	ExpiresAt time.Time  `json:"expires_at"`
	TeamID    int        `json:"team_id,omitempty"`
	Nonce     string     `json:"nonce"`
}

// NonceGenerator supplies the random component of each token. Injected so
// tests can fix it; production wiring passes uuid.NewString.
type NonceGenerator func() string

type InviteService interface {
	GenerateToken(ctx context.Context, kind InviteKind, teamID int) (string, error)
	// GeneratePlayerToken issues a player invitation scoped to the caller's
	// own team: only that team's captain may mint it.
	GeneratePlayerToken(ctx context.Context, captainID, teamID int) (string, error)
	ValidateToken(ctx context.Context, token string) (*InviteToken, error)
	GenerateQR(ctx context.Context, kind InviteKind, teamID int) ([]byte, error)
	GeneratePlayerQR(ctx context.Context, captainID, teamID int) ([]byte, error)
}

type inviteService struct {
	teamRepo repositories.TeamRepository
	nonce    NonceGenerator
	now      func() time.Time
}

func NewInviteService(teamRepo repositories.TeamRepository, nonce NonceGenerator) InviteService {
	return &inviteService{
		teamRepo: teamRepo,
		nonce:    nonce,
		now:      time.Now,
	}
}

func (s *inviteService) GenerateToken(ctx context.Context, kind InviteKind, teamID int) (string, error) {
	switch kind {
	case InviteKindCaptain, InviteKindReferee:
		teamID = 0
	case InviteKindPlayer:
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return "", ErrTeamNotFound
			}
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: unknown invitation kind %q", ErrValidationFailed, kind)
	}

	expiry := s.now().Add(inviteTokenValidity)
	token := fmt.Sprintf("%s|%s|%d|%s", kind, expiry.Format(inviteTokenTimeLayout), teamID, s.nonce())
	return token, nil
}

func (s *inviteService) GeneratePlayerToken(ctx context.Context, captainID, teamID int) (string, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return "", ErrTeamNotFound
		}
		return "", err
	}
	if team.CaptainID != captainID {
		return "", ErrNotTeamCaptain
	}
	return s.GenerateToken(ctx, InviteKindPlayer, teamID)
}

// ValidateToken decodes and checks a token. Expiry is checked before anything
// else about the payload: an expired token is rejected even if otherwise
// malformed beyond the first two fields.
func (s *inviteService) ValidateToken(_ context.Context, token string) (*InviteToken, error) {
	parts := strings.Split(token, "|")
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: expected 4 fields, got %d", ErrTokenMalformed, len(parts))
	}

	expiresAt, err := time.ParseInLocation(inviteTokenTimeLayout, parts[1], time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: bad expiry timestamp", ErrTokenMalformed)
	}
	if expiresAt.Before(s.now()) {
		return nil, ErrTokenExpired
	}

	kind := InviteKind(parts[0])
	decoded := &InviteToken{
		Kind:      kind,
		ExpiresAt: expiresAt,
		Nonce:     parts[3],
	}

	switch kind {
	case InviteKindPlayer:
		teamID, err := strconv.Atoi(parts[2])
		if err != nil || teamID <= 0 {
			return nil, fmt.Errorf("%w: bad team id", ErrTokenMalformed)
		}
		decoded.TeamID = teamID
	case InviteKindCaptain, InviteKindReferee:
	default:
		return nil, fmt.Errorf("%w: unknown invitation kind %q", ErrTokenMalformed, kind)
	}
	return decoded, nil
}

func (s *inviteService) GenerateQR(ctx context.Context, kind InviteKind, teamID int) ([]byte, error) {
	token, err := s.GenerateToken(ctx, kind, teamID)
	if err != nil {
		return nil, err
	}
	return encodeQR(token)
}

func (s *inviteService) GeneratePlayerQR(ctx context.Context, captainID, teamID int) ([]byte, error) {
	token, err := s.GeneratePlayerToken(ctx, captainID, teamID)
	if err != nil {
		return nil, err
	}
	return encodeQR(token)
}

func encodeQR(token string) ([]byte, error) {
	png, err := qrcode.Encode(token, qrcode.Medium, inviteQRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}
