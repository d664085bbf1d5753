package autoaction

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

type RuleRepository interface {
	Create(ctx context.Context, rule *Rule) error
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context) ([]Rule, error)
	FindForEvent(ctx context.Context, event string) ([]Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Enable(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type RuleRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRuleRepository(mongodb *database.MongodbDB) RuleRepository {
	return &RuleRepositoryImpl{
		Collection: mongodb.DB.Collection("auto_action_rules"),
	}
}

func (r *RuleRepositoryImpl) Create(ctx context.Context, rule *Rule) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	rule.ID = primitive.NewObjectID()
	rule.CentreID = centreID
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt

	_, err = r.Collection.InsertOne(ctx, rule)
	return err
}

func (r *RuleRepositoryImpl) GetByID(ctx context.Context, id string) (*Rule, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var rule Rule
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid, "centre_id": centreID}).Decode(&rule)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// List returns the centre's active rules. Disabled rules stay queryable
// by id until they are deleted.
func (r *RuleRepositoryImpl) List(ctx context.Context) ([]Rule, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "priority", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := r.Collection.Find(ctx, bson.M{
		"centre_id": centreID,
		"is_active": true,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []Rule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// FindForEvent returns the centre's active rules for one trigger event,
// highest priority first. The _id tie-break keeps the order stable when
// priorities collide.
func (r *RuleRepositoryImpl) FindForEvent(ctx context.Context, event string) ([]Rule, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "priority", Value: -1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.Collection.Find(ctx, bson.M{
		"centre_id":     centreID,
		"trigger_event": event,
		"is_active":     true,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []Rule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *RuleRepositoryImpl) Update(ctx context.Context, rule *Rule) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	rule.CentreID = centreID
	rule.UpdatedAt = time.Now()

	_, err = r.Collection.UpdateOne(ctx,
		bson.M{"_id": rule.ID, "centre_id": centreID},
		bson.M{"$set": rule},
	)
	return err
}

func (r *RuleRepositoryImpl) Enable(ctx context.Context, id string, active bool) error {
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
		bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}},
	)
	return err
}

func (r *RuleRepositoryImpl) Delete(ctx context.Context, id string) error {
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
