package user

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

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByRole(ctx context.Context, role string) (*User, error)
	FindByIDs(ctx context.Context, ids []string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
}

type UserRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewUserRepository(mongodb *database.MongodbDB) UserRepository {
	return &UserRepositoryImpl{
		Collection: mongodb.DB.Collection("users"),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *User) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	u.ID = primitive.NewObjectID()
	u.CentreID = centreID
	u.Active = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt

	_, err = r.Collection.InsertOne(ctx, u)
	return err
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*User, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var u User
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid, "centre_id": centreID}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername is not centre scoped: it backs login, which runs before
// any centre context exists.
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.Collection.FindOne(ctx, bson.M{"username": username, "active": true}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByRole returns the longest-serving active user holding the role
// within the caller's centre, or mongo.ErrNoDocuments if none exists.
func (r *UserRepositoryImpl) FindByRole(ctx context.Context, role string) (*User, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	var u User
	err = r.Collection.FindOne(ctx, bson.M{"centre_id": centreID, "role": role, "active": true}, opts).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepositoryImpl) FindByIDs(ctx context.Context, ids []string) ([]User, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}, "centre_id": centreID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]User, error) {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"centre_id": centreID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, id string, update bson.M) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update["updated_at"] = time.Now()
	_, err = r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid, "centre_id": centreID},
		bson.M{"$set": update},
	)
	return err
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id string) error {
	centreID, err := common_models.CentreID(ctx)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	// soft delete keeps historical references in notes and tasks valid
	_, err = r.Collection.UpdateOne(ctx,
		bson.M{"_id": oid, "centre_id": centreID},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	return err
}
