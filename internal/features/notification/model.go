package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeInfo       NotificationType = "info"
	NotificationTypeWarning    NotificationType = "warning"
	NotificationTypeEscalation NotificationType = "escalation"
	NotificationTypeTask       NotificationType = "task"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CentreID  primitive.ObjectID `bson:"centre_id" json:"centre_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CaseID    primitive.ObjectID `bson:"case_id,omitempty" json:"case_id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	IsRead    bool               `bson:"is_read" json:"is_read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ReadAt    *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
