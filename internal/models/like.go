package models

import "gorm.io/gorm"

// Like records one user's endorsement of one post. The composite unique
// index guarantees at most one row per (post, user) pair.
type Like struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index:idx_likes_post_user,unique"` // MongoDB ObjectID as string
	UserID string `json:"user_id" gorm:"index:idx_likes_post_user,unique"` // Firebase UID
}

// ToggleLikeRequest defines the request body for toggling a like.
// CurrentlyLiked is the caller's current view of its own like state.
type ToggleLikeRequest struct {
	CurrentlyLiked bool `json:"currently_liked"`
}
