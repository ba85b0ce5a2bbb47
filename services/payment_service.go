package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/repositories"
)

type RecordPaymentInput struct {
	UserID       int     `json:"user_id"`
	TournamentID *int    `json:"tournament_id,omitempty"`
	MatchID      *int    `json:"match_id,omitempty"`
	Kind         string  `json:"kind"`
	Amount       float64 `json:"amount"`
	Method       *string `json:"method,omitempty"`
	Reference    *string `json:"reference,omitempty"`
	ReceiptURL   *string `json:"receipt_url,omitempty"`
}

type PaymentService interface {
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Payment, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, userRepo repositories.UserRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error) {
	if input.Kind == "" {
		return nil, fmt.Errorf("%w: payment kind is required", ErrValidationFailed)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidationFailed)
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	payment := &models.Payment{
		UserID:       input.UserID,
		TournamentID: input.TournamentID,
		MatchID:      input.MatchID,
		Kind:         input.Kind,
		Amount:       input.Amount,
		Method:       input.Method,
		Status:       "Completed",
		Reference:    input.Reference,
		PaidAt:       time.Now(),
		ReceiptURL:   input.ReceiptURL,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) ListByUser(ctx context.Context, userID int) ([]*models.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

func (s *paymentService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Payment, error) {
	return s.paymentRepo.ListByTournament(ctx, tournamentID)
}
