package centre

import (
	"context"
	"time"

	"go-casework/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CentreRepository interface {
	Create(ctx context.Context, c *Centre) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Centre, error)
}

type CentreRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCentreRepository(mongodb *database.MongodbDB) CentreRepository {
	return &CentreRepositoryImpl{
		Collection: mongodb.DB.Collection("centres"),
	}
}

func (r *CentreRepositoryImpl) Create(ctx context.Context, c *Centre) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	_, err := r.Collection.InsertOne(ctx, c)
	return err
}

func (r *CentreRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Centre, error) {
	var c Centre
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
