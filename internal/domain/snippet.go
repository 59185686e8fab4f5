package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snippet is the stored text + AI-generated summary pair.
// Records are created exactly once, never mutated and never deleted:
// a record exists if and only if summarization for its text succeeded.
type Snippet struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Text      string             `bson:"text" json:"text"`
	Summary   string             `bson:"summary" json:"summary"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
