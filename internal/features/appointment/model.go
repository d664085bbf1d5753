package appointment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentMissed    AppointmentStatus = "missed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CentreID    primitive.ObjectID `bson:"centre_id" json:"centre_id"`
	CaseID      primitive.ObjectID `bson:"case_id,omitempty" json:"case_id,omitempty"`
	ClientID    primitive.ObjectID `bson:"client_id,omitempty" json:"client_id,omitempty"`
	ScheduledAt time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Purpose     string             `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Status      AppointmentStatus  `bson:"status" json:"status"`
	Reminded    bool               `bson:"reminded" json:"reminded"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
