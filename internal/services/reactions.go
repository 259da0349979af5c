package services

import (
	"context"
	"errors"

	"github.com/poetscorner/backend/internal/models"
	"github.com/poetscorner/backend/internal/repositories"
	"go.uber.org/zap"
)

// LikeState is the reconciled outcome of a toggle: the caller's new like
// state and the authoritative like count recomputed from the like rows.
type LikeState struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// ReactionService applies and reverses likes while keeping the post's
// cached like counter in step with the like rows.
type ReactionService struct {
	likes repositories.LikeRepository
	posts repositories.PostRepository
	log   *zap.Logger
}

// NewReactionService creates a ReactionService.
func NewReactionService(likes repositories.LikeRepository, posts repositories.PostRepository, log *zap.Logger) *ReactionService {
	return &ReactionService{likes: likes, posts: posts, log: log}
}

// ToggleLike reverses the caller's like on a post. currentlyLiked is the
// caller's view of its own state; toggling is idempotent against a stale
// view. A duplicate insert affects nothing and does not bump the counter,
// so repeated rapid toggles cannot inflate it. The returned count is
// recomputed from the like rows, which are the source of truth, so any
// counter drift is corrected on this read.
func (s *ReactionService) ToggleLike(ctx context.Context, postID, userID string, currentlyLiked bool) (*LikeState, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, newNotFoundError("post", postID)
		}
		return nil, newPersistenceError("get post", err)
	}

	if currentlyLiked {
		err := s.likes.DeleteLike(postID, userID)
		switch {
		case err == nil:
			if derr := s.posts.DecrementLikesCount(ctx, postID); derr != nil {
				s.log.Warn("like counter decrement failed, row count remains authoritative",
					zap.String("post_id", postID), zap.Error(derr))
			}
		case errors.Is(err, repositories.ErrLikeNotFound):
			// Already unliked elsewhere; nothing to decrement.
		default:
			return nil, newPersistenceError("delete like", err)
		}
	} else {
		err := s.likes.CreateLike(&models.Like{PostID: postID, UserID: userID})
		switch {
		case err == nil:
			if ierr := s.posts.IncrementLikesCount(ctx, postID); ierr != nil {
				s.log.Warn("like counter increment failed, row count remains authoritative",
					zap.String("post_id", postID), zap.Error(ierr))
			}
		case errors.Is(err, repositories.ErrLikeExists):
			// Row already present; counting it again would inflate the cache.
		default:
			return nil, newPersistenceError("create like", err)
		}
	}

	count, err := s.likes.GetLikesCountByPostID(postID)
	if err != nil {
		return nil, newPersistenceError("count likes", err)
	}
	return &LikeState{Liked: !currentlyLiked, LikesCount: count}, nil
}

// LikeStatus returns the caller's like state and the authoritative count,
// used to reconcile an optimistic client-side adjustment.
func (s *ReactionService) LikeStatus(ctx context.Context, postID, userID string) (*LikeState, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, newNotFoundError("post", postID)
		}
		return nil, newPersistenceError("get post", err)
	}

	liked, err := s.likes.HasUserLikedPost(postID, userID)
	if err != nil {
		return nil, newPersistenceError("check like", err)
	}
	count, err := s.likes.GetLikesCountByPostID(postID)
	if err != nil {
		return nil, newPersistenceError("count likes", err)
	}
	return &LikeState{Liked: liked, LikesCount: count}, nil
}
