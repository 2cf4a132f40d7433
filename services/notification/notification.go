package notification

import (
	"context"
	"time"

	notificationRepo "mindwell/database/repository/notification"
	"mindwell/models"
	"mindwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService defines methods for emitting in-app notifications.
// Delivery beyond the stored record (push, email) is a separate concern.
type NotificationService interface {
	Notify(ctx context.Context, userID, message, ntype, appointmentID string) error
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

// Notify persists a notification record for the target user.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, message, ntype, appointmentID string) error {
	n := &models.Notification{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          ntype,
		Message:       message,
		AppointmentID: appointmentID,
		Read:          false,
		CreatedAt:     time.Now(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		utils.GetLogger().Error("failed to store notification",
			zap.String("userID", userID), zap.String("type", ntype), zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.Repo.MarkRead(ctx, id, userID); err != nil {
		return &utils.NotFoundError{Message: "notification not found"}
	}
	return nil
}
