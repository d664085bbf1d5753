package casefile

import (
	"context"
	"fmt"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CaseRepository interface {
	Create(ctx context.Context, c *Case) error
	FindByID(ctx context.Context, id string) (*Case, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Case, int64, error)
	ListAll(ctx context.Context) ([]Case, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id string, status CaseStatus) error
	Delete(ctx context.Context, id string) error
}

type CaseRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCaseRepository(mongodb *database.MongodbDB) CaseRepository {
	return &CaseRepositoryImpl{
		Collection: mongodb.DB.Collection("cases"),
	}
}

func (r *CaseRepositoryImpl) Create(ctx context.Context, c *Case) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	c.ID = primitive.NewObjectID()
	c.CentreID = centreID
	if c.Status == "" {
		c.Status = StatusNew
	}
	if c.Reference == "" {
		c.Reference = fmt.Sprintf("CASE-%s", c.ID.Hex()[18:])
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	_, err = r.Collection.InsertOne(ctx, c)
	return err
}

func (r *CaseRepositoryImpl) FindByID(ctx context.Context, id string) (*Case, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var c Case
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid, "centre_id": centreID}).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Case, int64, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := bson.M{"centre_id": centreID}
	for k, v := range filter {
		query[k] = v
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var cases []Case
	if err = cursor.All(ctx, &cases); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return cases, total, nil
}

// ListAll returns every case for the centre without pagination.
// Used by the reporting export.
func (r *CaseRepositoryImpl) ListAll(ctx context.Context) ([]Case, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"centre_id": centreID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cases []Case
	if err = cursor.All(ctx, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *CaseRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	updates["updated_at"] = time.Now()
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid, "centre_id": centreID}, bson.M{"$set": updates})
	return err
}

func (r *CaseRepositoryImpl) UpdateStatus(ctx context.Context, id string, status CaseStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *CaseRepositoryImpl) Delete(ctx context.Context, id string) error {
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
