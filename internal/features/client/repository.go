package client

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

type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Client, int64, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type ClientRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewClientRepository(mongodb *database.MongodbDB) ClientRepository {
	return &ClientRepositoryImpl{
		Collection: mongodb.DB.Collection("clients"),
	}
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, client *Client) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	client.ID = primitive.NewObjectID()
	client.CentreID = centreID
	client.CreatedAt = time.Now()
	client.UpdatedAt = time.Now()

	_, err = r.Collection.InsertOne(ctx, client)
	return err
}

func (r *ClientRepositoryImpl) FindByID(ctx context.Context, id string) (*Client, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var client Client
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid, "centre_id": centreID}).Decode(&client)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Client, int64, error) {
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

	var clients []Client
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, 0, err
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *ClientRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
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

func (r *ClientRepositoryImpl) Delete(ctx context.Context, id string) error {
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
