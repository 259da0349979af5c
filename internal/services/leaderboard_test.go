package services

import (
	"context"
	"testing"
	"time"

	"github.com/poetscorner/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type leaderboardFixture struct {
	svc      *LeaderboardService
	profiles *fakeProfileRepo
	posts    *fakePostRepo
	comments *fakeCommentRepo
	now      time.Time
}

func newLeaderboardFixture(t *testing.T) *leaderboardFixture {
	t.Helper()
	f := &leaderboardFixture{
		profiles: newFakeProfileRepo(),
		posts:    newFakePostRepo(),
		comments: newFakeCommentRepo(),
		now:      time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewLeaderboardService(f.profiles, f.posts, f.comments, zap.NewNop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestByPointsOrderingAndTiers(t *testing.T) {
	f := newLeaderboardFixture(t)

	f.profiles.seed(models.Profile{ID: "carol", Points: 50})
	f.profiles.seed(models.Profile{ID: "bob", Points: 80})
	f.profiles.seed(models.Profile{ID: "alice", Points: 80})
	f.profiles.seed(models.Profile{ID: "dave", Points: 10})

	entries, err := f.svc.ByPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	points := []int{entries[0].Points, entries[1].Points, entries[2].Points, entries[3].Points}
	assert.Equal(t, []int{80, 80, 50, 10}, points)

	// Equal points keep a stable id-ascending order instead of erroring.
	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, "bob", entries[1].UserID)

	assert.Equal(t, TierGold, entries[0].Tier)
	assert.Equal(t, TierSilver, entries[1].Tier)
	assert.Equal(t, TierBronze, entries[2].Tier)
	assert.Empty(t, entries[3].Tier)
	assert.Equal(t, 4, entries[3].Rank)
}

func TestTopPostsWindowAndOrdering(t *testing.T) {
	f := newLeaderboardFixture(t)

	f.posts.seed(models.Post{Title: "recent popular", AuthorID: "a", IsPublished: true,
		LikesCount: 9, CreatedAt: f.now.AddDate(0, 0, -5)})
	f.posts.seed(models.Post{Title: "recent modest", AuthorID: "b", IsPublished: true,
		LikesCount: 4, CreatedAt: f.now.AddDate(0, 0, -10)})
	f.posts.seed(models.Post{Title: "old viral", AuthorID: "c", IsPublished: true,
		LikesCount: 99, CreatedAt: f.now.AddDate(0, 0, -40)})
	f.posts.seed(models.Post{Title: "recent draft", AuthorID: "d", IsDraft: true,
		LikesCount: 50, CreatedAt: f.now.AddDate(0, 0, -2)})

	entries, err := f.svc.TopPosts(context.Background(), 0) // default 30-day window
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "recent popular", entries[0].Title)
	assert.Equal(t, int64(9), entries[0].LikesCount)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "recent modest", entries[1].Title)
}

func TestTopPostsCustomWindowIncludesOlderPosts(t *testing.T) {
	f := newLeaderboardFixture(t)

	f.posts.seed(models.Post{Title: "old viral", AuthorID: "c", IsPublished: true,
		LikesCount: 99, CreatedAt: f.now.AddDate(0, 0, -40)})

	entries, err := f.svc.TopPosts(context.Background(), 60)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "old viral", entries[0].Title)
}

func TestTopCommentersGroupsWithinWindow(t *testing.T) {
	f := newLeaderboardFixture(t)

	inWindow := f.now.AddDate(0, 0, -3)
	outside := f.now.AddDate(0, 0, -45)

	f.comments.seed("p1", "A", inWindow)
	f.comments.seed("p2", "A", inWindow.Add(time.Hour))
	f.comments.seed("p1", "B", inWindow.Add(2*time.Hour))
	f.comments.seed("p1", "C", outside)

	entries, err := f.svc.TopCommenters(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "A", entries[0].UserID)
	assert.Equal(t, int64(2), entries[0].Comments)
	assert.Equal(t, TierGold, entries[0].Tier)
	assert.Equal(t, "B", entries[1].UserID)
	assert.Equal(t, int64(1), entries[1].Comments)
}

func TestRankingsAreRecomputedPerRequest(t *testing.T) {
	f := newLeaderboardFixture(t)

	f.profiles.seed(models.Profile{ID: "alice", Points: 10})
	entries, err := f.svc.ByPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f.profiles.seed(models.Profile{ID: "bob", Points: 20})
	entries, err = f.svc.ByPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].UserID)
}
