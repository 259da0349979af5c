package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a piece of writing stored in MongoDB. Exactly one of
// IsDraft/IsPublished is true for a persisted post; a post is visible to
// readers other than its author only when IsPublished is true.
type Post struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID string             `json:"author_id" bson:"author_id"` // Firebase UID of the author
	Title    string             `json:"title" bson:"title"`
	Body     string             `json:"body" bson:"body"`
	Excerpt  string             `json:"excerpt" bson:"excerpt"`
	Tags     []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Category string             `json:"category,omitempty" bson:"category,omitempty"`

	IsDraft     bool `json:"is_draft" bson:"is_draft"`
	IsPublished bool `json:"is_published" bson:"is_published"`

	// Denormalized counters. The likes/comments tables are the source of
	// truth; these are a cache reconciled on read.
	LikesCount    int64 `json:"likes_count" bson:"likes_count"`
	CommentsCount int64 `json:"comments_count" bson:"comments_count"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// PostInput is the request body shared by saveDraft, publish, preview and
// autosave. ID is empty for a post that has never been saved.
type PostInput struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Body     string   `json:"body" validate:"required,min=1"`
	Excerpt  string   `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
	Category string   `json:"category,omitempty" validate:"omitempty,max=40"`
}
