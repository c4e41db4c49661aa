package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peoplepulse/perform-backend-go/internal/domain/notification"
)

// Service creates and lists review-lifecycle notifications. Creation is
// best effort: a failed insert is logged and never fails the operation
// that triggered it.
type Service struct {
	notification.Repository
}

func NewNotificationService(repo notification.Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Notify(ctx context.Context, companyID, recipientID string, senderID *string, notifType notification.NotificationType, title, message string, data map[string]interface{}) {
	n := &notification.Notification{
		CompanyID:   companyID,
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data:        data,
	}
	if err := s.Repository.Create(ctx, n); err != nil {
		slog.Error("failed to create notification", "type", notifType, "recipient", recipientID, "error", err)
	}
}

func (s *Service) List(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	notifications, total, err := s.Repository.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (s *Service) MarkRead(ctx context.Context, userID string, ids []string) error {
	if err := s.Repository.MarkAsRead(ctx, ids, userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}
