package repositories

import (
	"errors"

	"github.com/poetscorner/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrLikeExists is returned by CreateLike when the (post, user) pair
	// already has a row. Duplicate inserts are detected, not silently
	// counted, so callers can skip the counter increment.
	ErrLikeExists = errors.New("like already exists")
	// ErrLikeNotFound is returned by DeleteLike when no row matched.
	ErrLikeNotFound = errors.New("like not found")
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID, userID string) error
	HasUserLikedPost(postID, userID string) (bool, error)
	GetLikesCountByPostID(postID string) (int64, error)
	CountLikesForPosts(postIDs []string) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like row. The insert relies on the composite unique
// index on (post_id, user_id): a conflicting insert affects zero rows and
// is reported as ErrLikeExists.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeExists
	}
	return nil
}

// DeleteLike removes the like row for the given (post, user) pair. The
// delete is unscoped: a soft-deleted row would still occupy the unique
// index and block the user from liking the post again.
func (r *PostgresLikeRepository) DeleteLike(postID, userID string) error {
	res := r.db.Unscoped().Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesCountByPostID counts the like rows referencing a post. This is
// the authoritative count the cached likes_count is reconciled against.
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountLikesForPosts counts like rows across a set of posts, used to
// compute an author's total likes received.
func (r *PostgresLikeRepository) CountLikesForPosts(postIDs []string) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id IN ?", postIDs).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
