package messaging

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

const (
	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Message is the delivery record for every outbound client contact,
// whether a human or an automation rule triggered it.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CentreID  primitive.ObjectID `bson:"centre_id" json:"centre_id"`
	CaseID    primitive.ObjectID `bson:"case_id,omitempty" json:"case_id,omitempty"`
	ClientID  primitive.ObjectID `bson:"client_id,omitempty" json:"client_id,omitempty"`
	Channel   string             `bson:"channel" json:"channel"`
	Recipient string             `bson:"recipient" json:"recipient"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Body      string             `bson:"body" json:"body"`
	Status    string             `bson:"status" json:"status"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	SentAt    *time.Time         `bson:"sent_at,omitempty" json:"sent_at,omitempty"`
}
