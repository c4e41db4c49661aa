package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeKPIAssigned            NotificationType = "kpi_assigned"
	TypeKPIAcknowledged        NotificationType = "kpi_acknowledged"
	TypeSelfRatingSubmitted    NotificationType = "self_rating_submitted"
	TypeManagerReviewSubmitted NotificationType = "manager_review_submitted"
	TypeReviewCompleted        NotificationType = "review_completed"
	TypeReviewRejected         NotificationType = "review_rejected"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
