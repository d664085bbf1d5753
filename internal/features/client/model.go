package client

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Client struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CentreID           primitive.ObjectID `bson:"centre_id" json:"centre_id"`
	FirstName          string             `bson:"first_name" json:"first_name"`
	LastName           string             `bson:"last_name" json:"last_name"`
	Phone              string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	PreferredLanguage  string             `bson:"preferred_language,omitempty" json:"preferred_language,omitempty"`
	Vulnerable         bool               `bson:"vulnerable" json:"vulnerable"`
	VulnerabilityNotes string             `bson:"vulnerability_notes,omitempty" json:"vulnerability_notes,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

func (c *Client) DisplayName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}
