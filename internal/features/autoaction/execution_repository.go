package autoaction

import (
	"context"
	"time"

	common_models "go-casework/internal/common/models"
	"go-casework/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ExecutionRepository interface {
	Create(ctx context.Context, record *ExecutionRecord) error
	List(ctx context.Context, page, limit int64) ([]ExecutionLogEntry, int64, error)
}

type ExecutionRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewExecutionRepository(mongodb *database.MongodbDB) ExecutionRepository {
	return &ExecutionRepositoryImpl{
		Collection: mongodb.DB.Collection("auto_action_logs"),
	}
}

func (r *ExecutionRepositoryImpl) Create(ctx context.Context, record *ExecutionRecord) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	record.ID = primitive.NewObjectID()
	record.CentreID = centreID
	if record.ExecutedAt.IsZero() {
		record.ExecutedAt = time.Now()
	}

	_, err = r.Collection.InsertOne(ctx, record)
	return err
}

// List returns one page of execution history, newest first, with the
// rule name, case reference and client name joined in.
func (r *ExecutionRepositoryImpl) List(ctx context.Context, page, limit int64) ([]ExecutionLogEntry, int64, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, 0, err
	}

	match := bson.M{"centre_id": centreID}
	total, err := r.Collection.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "executed_at", Value: -1}}}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "auto_action_rules",
			"localField":   "rule_id",
			"foreignField": "_id",
			"as":           "rule",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "cases",
			"let":  bson.M{"cid": "$case_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{
					bson.M{"$toString": "$_id"}, "$$cid",
				}}}},
			},
			"as": "case",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "clients",
			"let":  bson.M{"clid": bson.M{"$first": "$case.client_id"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$clid"}}}},
			},
			"as": "client",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"rule_name":      bson.M{"$ifNull": bson.A{bson.M{"$first": "$rule.name"}, ""}},
			"case_reference": bson.M{"$ifNull": bson.A{bson.M{"$first": "$case.reference"}, ""}},
			"client_name": bson.M{"$trim": bson.M{"input": bson.M{"$concat": bson.A{
				bson.M{"$ifNull": bson.A{bson.M{"$first": "$client.first_name"}, ""}},
				" ",
				bson.M{"$ifNull": bson.A{bson.M{"$first": "$client.last_name"}, ""}},
			}}}},
		}}},
		{{Key: "$project", Value: bson.M{"rule": 0, "case": 0, "client": 0}}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []ExecutionLogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
