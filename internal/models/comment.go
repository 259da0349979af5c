package models

import "gorm.io/gorm"

// Comment is an append-only reply to a post. Comments are never edited or
// deleted; ParentID is stored for threading but not otherwise interpreted.
type Comment struct {
	gorm.Model
	PostID   string `json:"post_id" gorm:"index"`   // MongoDB ObjectID as string
	AuthorID string `json:"author_id" gorm:"index"` // Firebase UID
	Body     string `json:"body" gorm:"type:text"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// CreateCommentRequest defines the request body for adding a comment
type CreateCommentRequest struct {
	Body     string `json:"body" validate:"required,min=1,max=2000"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// CommenterCount is one row of the comment-activity ranking: how many
// comments an author wrote inside the ranking window.
type CommenterCount struct {
	AuthorID string `json:"author_id"`
	Count    int64  `json:"count"`
}
