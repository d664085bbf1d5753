package note

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CentreID  primitive.ObjectID `bson:"centre_id" json:"centre_id"`
	CaseID    primitive.ObjectID `bson:"case_id" json:"case_id"`
	AuthorID  primitive.ObjectID `bson:"author_id,omitempty" json:"author_id,omitempty"`
	Content   string             `bson:"content" json:"content"`
	System    bool               `bson:"system" json:"system"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
