package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	// CentreIDKey scopes every repository query to the caller's centre.
	CentreIDKey ContextKey = "centre_id"
)

// CentreID extracts the caller's centre id from the request context.
// Repositories use it to scope every query to one tenant.
func CentreID(ctx context.Context) (primitive.ObjectID, error) {
	id, ok := ctx.Value(CentreIDKey).(string)
	if !ok || id == "" {
		return primitive.NilObjectID, fmt.Errorf("centre context missing")
	}
	return primitive.ObjectIDFromHex(id)
}

type AuditAction string

const (
	AuditActionCreate     AuditAction = "CREATE"
	AuditActionUpdate     AuditAction = "UPDATE"
	AuditActionDelete     AuditAction = "DELETE"
	AuditActionLogin      AuditAction = "LOGIN"
	AuditActionAutoAction AuditAction = "AUTO_ACTION"
	AuditActionExport     AuditAction = "EXPORT"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CentreID  primitive.ObjectID `bson:"centre_id,omitempty" json:"centre_id,omitempty"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`
	RecordID  string             `bson:"record_id" json:"record_id"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	ActorName string             `bson:"-" json:"actor_name,omitempty"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is the record shape the async zap writer persists.
type Log struct {
	Message      string    `bson:"message"`
	Caller       string    `bson:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id"`
	AppId        string    `bson:"app_id,omitempty"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}
