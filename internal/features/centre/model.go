package centre

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Centre is the tenant: one advice centre with its own users, clients
// and cases. Every scoped collection carries its id.
type Centre struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"owner_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
