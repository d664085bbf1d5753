package document

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

type DocumentRepository interface {
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id string) (*Document, error)
	ListByCase(ctx context.Context, caseID string) ([]Document, error)
	Delete(ctx context.Context, id string) error
}

type DocumentRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDocumentRepository(mongodb *database.MongodbDB) DocumentRepository {
	return &DocumentRepositoryImpl{
		Collection: mongodb.DB.Collection("documents"),
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, d *Document) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	d.ID = primitive.NewObjectID()
	d.CentreID = centreID
	d.CreatedAt = time.Now()

	_, err = r.Collection.InsertOne(ctx, d)
	return err
}

func (r *DocumentRepositoryImpl) FindByID(ctx context.Context, id string) (*Document, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var d Document
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid, "centre_id": centreID}).Decode(&d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepositoryImpl) ListByCase(ctx context.Context, caseID string) ([]Document, error) {
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

	var docs []Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id string) error {
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
