package services

import (
	"context"
	"errors"
	"strings"

	"github.com/poetscorner/backend/internal/models"
	"github.com/poetscorner/backend/internal/repositories"
	"go.uber.org/zap"
)

// CommentService appends comments and keeps the post's cached comment
// counter in step. Comments have no edit or delete path.
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	log      *zap.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, log *zap.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, log: log}
}

// AddComment validates the body, appends a comment row and increments the
// post's comment counter.
func (s *CommentService) AddComment(ctx context.Context, postID, authorID, body string, parentID *uint) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, newValidationError("body", "must not be empty")
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, newNotFoundError("post", postID)
		}
		return nil, newPersistenceError("get post", err)
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
		ParentID: parentID,
	}
	if err := s.comments.CreateComment(comment); err != nil {
		return nil, newPersistenceError("create comment", err)
	}

	if err := s.posts.IncrementCommentsCount(ctx, postID); err != nil {
		s.log.Warn("comment counter increment failed, row count remains authoritative",
			zap.String("post_id", postID), zap.Error(err))
	}
	return comment, nil
}

// ListComments returns a post's comments ordered oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, newNotFoundError("post", postID)
		}
		return nil, newPersistenceError("get post", err)
	}

	comments, err := s.comments.GetCommentsByPostID(postID)
	if err != nil {
		return nil, newPersistenceError("list comments", err)
	}
	return comments, nil
}
