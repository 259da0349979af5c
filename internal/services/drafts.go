package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/poetscorner/backend/internal/models"
	"github.com/poetscorner/backend/internal/repositories"
	"go.uber.org/zap"
)

// excerptWords is how many leading words of the body form the default
// excerpt when the author did not supply one.
const excerptWords = 30

// DraftService owns the post lifecycle: unsaved -> draft -> published.
// Re-saving a draft keeps it a draft, re-saving a published post keeps it
// published; there is no way back from published to draft.
type DraftService struct {
	posts     repositories.PostRepository
	autosaver *Autosaver
	log       *zap.Logger
}

// NewDraftService creates a DraftService.
func NewDraftService(posts repositories.PostRepository, log *zap.Logger) *DraftService {
	return &DraftService{posts: posts, log: log}
}

// AttachAutosaver registers the autosaver whose pending timers Publish
// cancels. Optional; a nil autosaver is tolerated.
func (s *DraftService) AttachAutosaver(a *Autosaver) { s.autosaver = a }

// SaveDraft validates and persists the input as a draft. With no ID it
// creates the post; with an ID it updates the existing post in place,
// preserving its published/draft state. Saving the same input twice
// converges on the same stored state, which is what makes a late
// autosave harmless.
func (s *DraftService) SaveDraft(ctx context.Context, userID string, input models.PostInput) (*models.Post, error) {
	if err := validateContent(input); err != nil {
		return nil, err
	}

	if input.ID == "" {
		post := buildPost(userID, input)
		post.IsDraft = true
		post.IsPublished = false
		if err := s.posts.CreatePost(ctx, post); err != nil {
			return nil, newPersistenceError("create draft", err)
		}
		s.log.Debug("draft created", zap.String("post_id", post.ID.Hex()), zap.String("author_id", userID))
		return post, nil
	}

	existing, err := s.ownedPost(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	applyInput(existing, input)
	if err := s.posts.UpdatePost(ctx, input.ID, existing); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, newNotFoundError("post", input.ID)
		}
		return nil, newPersistenceError("update draft", err)
	}
	return existing, nil
}

// Publish validates and persists the input as a published post. Any
// pending autosave for the post is cancelled first so a debounced save
// cannot land after the publish.
func (s *DraftService) Publish(ctx context.Context, userID string, input models.PostInput) (*models.Post, error) {
	if s.autosaver != nil {
		s.autosaver.Cancel(userID, input.ID)
	}
	if err := validateContent(input); err != nil {
		return nil, err
	}

	if input.ID == "" {
		post := buildPost(userID, input)
		post.IsDraft = false
		post.IsPublished = true
		if err := s.posts.CreatePost(ctx, post); err != nil {
			return nil, newPersistenceError("create post", err)
		}
		s.log.Info("post published", zap.String("post_id", post.ID.Hex()), zap.String("author_id", userID))
		return post, nil
	}

	existing, err := s.ownedPost(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	applyInput(existing, input)
	existing.IsDraft = false
	existing.IsPublished = true
	if err := s.posts.UpdatePost(ctx, input.ID, existing); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, newNotFoundError("post", input.ID)
		}
		return nil, newPersistenceError("publish post", err)
	}
	s.log.Info("post published", zap.String("post_id", input.ID), zap.String("author_id", userID))
	return existing, nil
}

// Preview builds the view model a publish would produce without touching
// the store.
func (s *DraftService) Preview(userID string, input models.PostInput) (*models.Post, error) {
	if err := validateContent(input); err != nil {
		return nil, err
	}
	post := buildPost(userID, input)
	post.IsDraft = false
	post.IsPublished = true
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	return post, nil
}

// ownedPost loads a post and verifies the caller is its author. A post
// owned by someone else is reported as not found rather than forbidden.
func (s *DraftService) ownedPost(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, newNotFoundError("post", postID)
		}
		return nil, newPersistenceError("get post", err)
	}
	if post.AuthorID != userID {
		return nil, newNotFoundError("post", postID)
	}
	return post, nil
}

func validateContent(input models.PostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return newValidationError("title", "must not be empty")
	}
	if strings.TrimSpace(input.Body) == "" {
		return newValidationError("body", "must not be empty")
	}
	return nil
}

func buildPost(userID string, input models.PostInput) *models.Post {
	return &models.Post{
		AuthorID: userID,
		Title:    strings.TrimSpace(input.Title),
		Body:     strings.TrimSpace(input.Body),
		Excerpt:  resolveExcerpt(input),
		Tags:     input.Tags,
		Category: input.Category,
	}
}

func applyInput(post *models.Post, input models.PostInput) {
	post.Title = strings.TrimSpace(input.Title)
	post.Body = strings.TrimSpace(input.Body)
	post.Excerpt = resolveExcerpt(input)
	post.Tags = input.Tags
	post.Category = input.Category
}

func resolveExcerpt(input models.PostInput) string {
	if e := strings.TrimSpace(input.Excerpt); e != "" {
		return e
	}
	return generateExcerpt(input.Body)
}

// generateExcerpt takes the first 30 words of the body, with a trailing
// ellipsis when the body is longer.
func generateExcerpt(body string) string {
	words := strings.Fields(body)
	if len(words) <= excerptWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:excerptWords], " ") + "..."
}
