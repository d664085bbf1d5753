package task

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

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	ListByCase(ctx context.Context, caseID string) ([]Task, error)
	UpdateStatus(ctx context.Context, id string, status TaskStatus) error
	Delete(ctx context.Context, id string) error
}

type TaskRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTaskRepository(mongodb *database.MongodbDB) TaskRepository {
	return &TaskRepositoryImpl{
		Collection: mongodb.DB.Collection("tasks"),
	}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, t *Task) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	t.ID = primitive.NewObjectID()
	t.CentreID = centreID
	if t.Status == "" {
		t.Status = TaskPending
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()

	_, err = r.Collection.InsertOne(ctx, t)
	return err
}

func (r *TaskRepositoryImpl) ListByCase(ctx context.Context, caseID string) ([]Task, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	caseOID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"case_id": caseOID, "centre_id": centreID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) UpdateStatus(ctx context.Context, id string, status TaskStatus) error {
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

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id string) error {
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
