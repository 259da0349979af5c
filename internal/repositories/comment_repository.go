package repositories

import (
	"time"

	"github.com/poetscorner/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Comments are append-only; there are no update or delete operations.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	GetCommentsCountByPostID(postID string) (int64, error)
	CountCommentsByAuthor(authorID string) (int64, error)
	TopCommentersSince(since time.Time, limit int) ([]models.CommenterCount, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment appends a new comment row.
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsByPostID retrieves all comments for a post, oldest first.
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsCountByPostID counts the comment rows referencing a post.
func (r *PostgresCommentRepository) GetCommentsCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCommentsByAuthor counts all comments a user has written.
func (r *PostgresCommentRepository) CountCommentsByAuthor(authorID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TopCommentersSince groups comments written at or after since by author
// and returns the most active authors, count descending with author_id as
// the stable tie-break.
func (r *PostgresCommentRepository) TopCommentersSince(since time.Time, limit int) ([]models.CommenterCount, error) {
	var counts []models.CommenterCount
	err := r.db.Model(&models.Comment{}).
		Select("author_id, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("author_id").
		Order("count DESC, author_id ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
