package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CentreID    primitive.ObjectID `bson:"centre_id" json:"centre_id"`
	CaseID      primitive.ObjectID `bson:"case_id" json:"case_id"`
	FileName    string             `bson:"file_name" json:"file_name"`
	StoredKey   string             `bson:"stored_key" json:"stored_key"`
	ContentType string             `bson:"content_type,omitempty" json:"content_type,omitempty"`
	Size        int64              `bson:"size" json:"size"`
	UploadedBy  string             `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
