package services

import (
	"context"
	"errors"
	"math"

	"github.com/poetscorner/backend/internal/achievements"
	"github.com/poetscorner/backend/internal/models"
	"github.com/poetscorner/backend/internal/repositories"
	"go.uber.org/zap"
)

// ActivityStats are a user's derived counters, recomputed from the raw
// activity rows on every request so they cannot drift.
type ActivityStats struct {
	PostsPublished int64 `json:"posts_published"`
	LikesReceived  int64 `json:"likes_received"`
	CommentsMade   int64 `json:"comments_made"`
	Points         int   `json:"points"`
}

// AchievementProgress is one achievement's standing for a user.
type AchievementProgress struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"max_progress"`
	Earned      bool   `json:"earned"`
}

// ProgressReport is the full achievement view for a user.
type ProgressReport struct {
	Stats             ActivityStats         `json:"stats"`
	Badges            []string              `json:"badges"`
	Achievements      []AchievementProgress `json:"achievements"`
	EarnedCount       int                   `json:"earned_count"`
	TotalCount        int                   `json:"total_count"`
	CompletionPercent int                   `json:"completion_percent"`
}

// ProgressService computes achievement progress from raw activity counts.
// It only reads: granting badges or awarding points is an external
// operation, never triggered from here.
type ProgressService struct {
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	profiles repositories.ProfileRepository
	log      *zap.Logger
}

// NewProgressService creates a ProgressService.
func NewProgressService(
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	profiles repositories.ProfileRepository,
	log *zap.Logger,
) *ProgressService {
	return &ProgressService{posts: posts, likes: likes, comments: comments, profiles: profiles, log: log}
}

// GetAchievementProgress evaluates every achievement in the catalog
// against the user's derived counters and persisted badges.
func (s *ProgressService) GetAchievementProgress(ctx context.Context, userID string) (*ProgressReport, error) {
	profile, err := s.profiles.GetProfileByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			// A user who has never earned anything simply has zero standing.
			profile = &models.Profile{ID: userID}
		} else {
			return nil, newPersistenceError("get profile", err)
		}
	}

	stats, err := s.collectStats(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	defs := achievements.All()
	progress := make([]AchievementProgress, 0, len(defs))
	earned := 0
	for _, def := range defs {
		p := evaluate(def, stats, profile)
		if p.Earned {
			earned++
		}
		progress = append(progress, p)
	}

	total := len(defs)
	return &ProgressReport{
		Stats:             stats,
		Badges:            profile.Badges,
		Achievements:      progress,
		EarnedCount:       earned,
		TotalCount:        total,
		CompletionPercent: int(math.Round(float64(earned) / float64(total) * 100)),
	}, nil
}

func (s *ProgressService) collectStats(ctx context.Context, userID string, profile *models.Profile) (ActivityStats, error) {
	postsPublished, err := s.posts.CountPublishedByAuthor(ctx, userID)
	if err != nil {
		return ActivityStats{}, newPersistenceError("count published posts", err)
	}

	postIDs, err := s.posts.GetPublishedPostIDsByAuthor(ctx, userID)
	if err != nil {
		return ActivityStats{}, newPersistenceError("list published post ids", err)
	}
	likesReceived, err := s.likes.CountLikesForPosts(postIDs)
	if err != nil {
		return ActivityStats{}, newPersistenceError("count likes received", err)
	}

	commentsMade, err := s.comments.CountCommentsByAuthor(userID)
	if err != nil {
		return ActivityStats{}, newPersistenceError("count comments", err)
	}

	return ActivityStats{
		PostsPublished: postsPublished,
		LikesReceived:  likesReceived,
		CommentsMade:   commentsMade,
		Points:         profile.Points,
	}, nil
}

// evaluate scores one achievement: progress = min(metric, target), earned
// when the metric reaches the target or the badge is already held.
// Badge-only achievements are judged purely from badge presence.
func evaluate(def achievements.Definition, stats ActivityStats, profile *models.Profile) AchievementProgress {
	hasBadge := profile.HasBadge(def.BadgeName())

	var metric int
	switch def.Metric {
	case achievements.MetricPostsPublished:
		metric = int(stats.PostsPublished)
	case achievements.MetricLikesReceived:
		metric = int(stats.LikesReceived)
	case achievements.MetricCommentsMade:
		metric = int(stats.CommentsMade)
	case achievements.MetricPoints:
		metric = stats.Points
	case achievements.MetricBadgeOnly:
		if hasBadge {
			metric = def.Target
		}
	}

	progress := metric
	if progress > def.Target {
		progress = def.Target
	}

	earned := hasBadge
	if def.Metric != achievements.MetricBadgeOnly && metric >= def.Target {
		earned = true
	}

	return AchievementProgress{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Requirement: def.Requirement,
		Progress:    progress,
		MaxProgress: def.Target,
		Earned:      earned,
	}
}
