package messaging

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

type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status, errMsg string) error
	ListByCase(ctx context.Context, caseID string) ([]Message, error)
}

type MessageRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewMessageRepository(mongodb *database.MongodbDB) MessageRepository {
	return &MessageRepositoryImpl{
		Collection: mongodb.DB.Collection("messages"),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, m *Message) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	m.ID = primitive.NewObjectID()
	m.CentreID = centreID
	m.Status = StatusQueued
	m.CreatedAt = time.Now()

	_, err = r.Collection.InsertOne(ctx, m)
	return err
}

func (r *MessageRepositoryImpl) SetStatus(ctx context.Context, id primitive.ObjectID, status, errMsg string) error {
	update := bson.M{"status": status}
	if status == StatusSent {
		update["sent_at"] = time.Now()
	}
	if errMsg != "" {
		update["error"] = errMsg
	}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *MessageRepositoryImpl) ListByCase(ctx context.Context, caseID string) ([]Message, error) {
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

	var messages []Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
