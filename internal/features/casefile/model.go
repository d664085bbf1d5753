package casefile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CaseStatus string

const (
	StatusNew        CaseStatus = "new"
	StatusInProgress CaseStatus = "in_progress"
	StatusOnHold     CaseStatus = "on_hold"
	StatusEscalated  CaseStatus = "escalated"
	StatusClosed     CaseStatus = "closed"
)

// Trigger events emitted by the case service.
const (
	EventCaseCreated   = "case_created"
	EventCaseUpdated   = "case_updated"
	EventStatusChanged = "status_changed"
)

type Case struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CentreID  primitive.ObjectID `bson:"centre_id" json:"centre_id"`
	ClientID  primitive.ObjectID `bson:"client_id" json:"client_id"`
	Reference string             `bson:"reference" json:"reference"`
	Status    CaseStatus         `bson:"status" json:"status"`
	Priority  string             `bson:"priority,omitempty" json:"priority,omitempty"`
	TotalDebt float64            `bson:"total_debt" json:"total_debt"`
	DebtCount int                `bson:"debt_count" json:"debt_count"`
	AdviserID primitive.ObjectID `bson:"adviser_id,omitempty" json:"adviser_id,omitempty"`
	Summary   string             `bson:"summary,omitempty" json:"summary,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
