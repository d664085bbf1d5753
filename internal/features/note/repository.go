package note

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

type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	ListByCase(ctx context.Context, caseID string) ([]Note, error)
	FindLatestByCase(ctx context.Context, caseID string) (*Note, error)
	Delete(ctx context.Context, id string) error
}

type NoteRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewNoteRepository(mongodb *database.MongodbDB) NoteRepository {
	return &NoteRepositoryImpl{
		Collection: mongodb.DB.Collection("notes"),
	}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, n *Note) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	n.ID = primitive.NewObjectID()
	n.CentreID = centreID
	n.CreatedAt = time.Now()

	_, err = r.Collection.InsertOne(ctx, n)
	return err
}

func (r *NoteRepositoryImpl) ListByCase(ctx context.Context, caseID string) ([]Note, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	caseOID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"case_id": caseOID, "centre_id": centreID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notes []Note
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// FindLatestByCase returns the most recently created note for a case.
// The create_task action uses it to link follow-up tasks.
func (r *NoteRepositoryImpl) FindLatestByCase(ctx context.Context, caseID string) (*Note, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	caseOID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var n Note
	err = r.Collection.FindOne(ctx, bson.M{"case_id": caseOID, "centre_id": centreID}, opts).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id string) error {
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
