package services

import (
	"context"
	"errors"

	"github.com/torneolink/backend/models"
	"github.com/torneolink/backend/repositories"
)

type NotificationService interface {
	ListMine(ctx context.Context, userID int) ([]*models.Notification, error)
	// MarkRead only touches notifications addressed to the caller.
	MarkRead(ctx context.Context, notificationID, callerID int) error
	MarkAllRead(ctx context.Context, userID int) error
}

type notificationService struct {
	notifRepo repositories.NotificationRepository
}

func NewNotificationService(notifRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) ListMine(ctx context.Context, userID int) ([]*models.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, callerID int) error {
	notification, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return ErrNotFound
		}
		return err
	}
	if notification.UserID != callerID {
		return ErrForbidden
	}
	return s.notifRepo.MarkRead(ctx, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}
