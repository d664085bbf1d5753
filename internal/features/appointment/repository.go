package appointment

import (
	"context"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	ListByCase(ctx context.Context, caseID string) ([]Appointment, error)
	// ListDueForReminder crosses centres: the reminder scheduler runs
	// without a request context and scopes each trigger itself.
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]Appointment, error)
	MarkReminded(ctx context.Context, id primitive.ObjectID) error
	UpdateStatus(ctx context.Context, id string, status AppointmentStatus) error
	Delete(ctx context.Context, id string) error
}

type AppointmentRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewAppointmentRepository(mongodb *database.MongodbDB) AppointmentRepository {
	return &AppointmentRepositoryImpl{
		Collection: mongodb.DB.Collection("appointments"),
	}
}

func (r *AppointmentRepositoryImpl) Create(ctx context.Context, a *Appointment) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	a.ID = primitive.NewObjectID()
	a.CentreID = centreID
	if a.Status == "" {
		a.Status = AppointmentScheduled
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	_, err = r.Collection.InsertOne(ctx, a)
	return err
}

func (r *AppointmentRepositoryImpl) ListByCase(ctx context.Context, caseID string) ([]Appointment, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	caseOID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"case_id": caseOID, "centre_id": centreID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []Appointment
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentRepositoryImpl) ListDueForReminder(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{
		"status":       AppointmentScheduled,
		"reminded":     false,
		"scheduled_at": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []Appointment
	if err = cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentRepositoryImpl) MarkReminded(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"reminded": true, "updated_at": time.Now()}})
	return err
}

func (r *AppointmentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status AppointmentStatus) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid, "centre_id": centreID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	return err
}

func (r *AppointmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid, "centre_id": centreID})
	return err
}
