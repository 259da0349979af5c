package services

import (
	"context"
	"time"

	"github.com/poetscorner/backend/internal/repositories"
	"go.uber.org/zap"
)

const (
	// DefaultWindowDays is the trailing window for the activity rankings.
	DefaultWindowDays = 30

	pointsLimit   = 50
	activityLimit = 20
)

// Rank tiers for the top three positions.
const (
	TierGold   = "gold"
	TierSilver = "silver"
	TierBronze = "bronze"
)

// PointsEntry is one row of the points ranking.
type PointsEntry struct {
	Rank   int      `json:"rank"`
	Tier   string   `json:"tier,omitempty"`
	UserID string   `json:"user_id"`
	Points int      `json:"points"`
	Badges []string `json:"badges,omitempty"`
}

// PostEntry is one row of the post-popularity ranking.
type PostEntry struct {
	Rank       int       `json:"rank"`
	Tier       string    `json:"tier,omitempty"`
	PostID     string    `json:"post_id"`
	Title      string    `json:"title"`
	AuthorID   string    `json:"author_id"`
	LikesCount int64     `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommenterEntry is one row of the comment-activity ranking.
type CommenterEntry struct {
	Rank     int    `json:"rank"`
	Tier     string `json:"tier,omitempty"`
	UserID   string `json:"user_id"`
	Comments int64  `json:"comments"`
}

// LeaderboardService computes the three rankings. Each is a pure read
// recomputed per request; nothing is cached or incrementally maintained.
type LeaderboardService struct {
	profiles repositories.ProfileRepository
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	log      *zap.Logger

	now func() time.Time
}

// NewLeaderboardService creates a LeaderboardService.
func NewLeaderboardService(
	profiles repositories.ProfileRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	log *zap.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		profiles: profiles,
		posts:    posts,
		comments: comments,
		log:      log,
		now:      time.Now,
	}
}

// ByPoints ranks profiles by points descending. Ties keep a stable order
// (profile id ascending, applied in the store query).
func (s *LeaderboardService) ByPoints(ctx context.Context) ([]PointsEntry, error) {
	profiles, err := s.profiles.TopByPoints(pointsLimit)
	if err != nil {
		return nil, newPersistenceError("rank profiles", err)
	}

	entries := make([]PointsEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, PointsEntry{
			Rank:   i + 1,
			Tier:   tierForRank(i + 1),
			UserID: p.ID,
			Points: p.Points,
			Badges: p.Badges,
		})
	}
	return entries, nil
}

// TopPosts ranks published posts created inside the trailing window by
// like count descending, limited to the top 20.
func (s *LeaderboardService) TopPosts(ctx context.Context, windowDays int) ([]PostEntry, error) {
	posts, err := s.posts.TopByLikesSince(ctx, s.windowStart(windowDays), activityLimit)
	if err != nil {
		return nil, newPersistenceError("rank posts", err)
	}

	entries := make([]PostEntry, 0, len(posts))
	for i, p := range posts {
		entries = append(entries, PostEntry{
			Rank:       i + 1,
			Tier:       tierForRank(i + 1),
			PostID:     p.ID.Hex(),
			Title:      p.Title,
			AuthorID:   p.AuthorID,
			LikesCount: p.LikesCount,
			CreatedAt:  p.CreatedAt,
		})
	}
	return entries, nil
}

// TopCommenters ranks users by comments written inside the trailing
// window, count descending, limited to the top 20.
func (s *LeaderboardService) TopCommenters(ctx context.Context, windowDays int) ([]CommenterEntry, error) {
	counts, err := s.comments.TopCommentersSince(s.windowStart(windowDays), activityLimit)
	if err != nil {
		return nil, newPersistenceError("rank commenters", err)
	}

	entries := make([]CommenterEntry, 0, len(counts))
	for i, c := range counts {
		entries = append(entries, CommenterEntry{
			Rank:     i + 1,
			Tier:     tierForRank(i + 1),
			UserID:   c.AuthorID,
			Comments: c.Count,
		})
	}
	return entries, nil
}

func (s *LeaderboardService) windowStart(windowDays int) time.Time {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return s.now().AddDate(0, 0, -windowDays)
}

func tierForRank(rank int) string {
	switch rank {
	case 1:
		return TierGold
	case 2:
		return TierSilver
	case 3:
		return TierBronze
	default:
		return ""
	}
}
