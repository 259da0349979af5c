package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/poetscorner/backend/internal/models"
	"github.com/poetscorner/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePostRepo is an in-memory PostRepository. failWith, when set, is
// returned from every mutating operation to exercise the persistence
// error paths.
type fakePostRepo struct {
	mu       sync.Mutex
	posts    map[string]models.Post
	failWith error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]models.Post)}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	f.posts[post.ID.Hex()] = *post
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	out := p
	return &out, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id string, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	existing, ok := f.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	existing.Title = post.Title
	existing.Body = post.Body
	existing.Excerpt = post.Excerpt
	existing.Tags = post.Tags
	existing.Category = post.Category
	existing.IsDraft = post.IsDraft
	existing.IsPublished = post.IsPublished
	existing.UpdatedAt = time.Now()
	f.posts[id] = existing
	post.UpdatedAt = existing.UpdatedAt
	return nil
}

func (f *fakePostRepo) GetPublishedPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Post
	for _, p := range f.posts {
		if p.IsPublished {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if skip > int64(len(out)) {
		return nil, nil
	}
	out = out[skip:]
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) GetDraftsByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Post
	for _, p := range f.posts {
		if p.IsDraft && p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetPublishedPostIDsByAuthor(_ context.Context, authorID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, p := range f.posts {
		if p.IsPublished && p.AuthorID == authorID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakePostRepo) CountPublishedByAuthor(_ context.Context, authorID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.posts {
		if p.IsPublished && p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (f *fakePostRepo) TopByLikesSince(_ context.Context, since time.Time, limit int64) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Post
	for _, p := range f.posts {
		if p.IsPublished && !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LikesCount != out[j].LikesCount {
			return out[i].LikesCount > out[j].LikesCount
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepo) IncrementLikesCount(_ context.Context, postID string) error {
	return f.addToCounter(postID, 1, false)
}

func (f *fakePostRepo) DecrementLikesCount(_ context.Context, postID string) error {
	return f.addToCounter(postID, -1, false)
}

func (f *fakePostRepo) IncrementCommentsCount(_ context.Context, postID string) error {
	return f.addToCounter(postID, 1, true)
}

func (f *fakePostRepo) addToCounter(postID string, delta int64, comments bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	p, ok := f.posts[postID]
	if !ok {
		return repositories.ErrPostNotFound
	}
	if comments {
		p.CommentsCount += delta
	} else {
		p.LikesCount += delta
	}
	f.posts[postID] = p
	return nil
}

// seed inserts a post directly, bypassing the service layer.
func (f *fakePostRepo) seed(post models.Post) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	f.posts[post.ID.Hex()] = post
	return post.ID.Hex()
}

// fakeLikeRepo is an in-memory LikeRepository keyed by (post, user).
type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]map[string]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]map[string]bool)}
}

func (f *fakeLikeRepo) CreateLike(like *models.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	byUser := f.likes[like.PostID]
	if byUser == nil {
		byUser = make(map[string]bool)
		f.likes[like.PostID] = byUser
	}
	if byUser[like.UserID] {
		return repositories.ErrLikeExists
	}
	byUser[like.UserID] = true
	return nil
}

func (f *fakeLikeRepo) DeleteLike(postID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.likes[postID][userID] {
		return repositories.ErrLikeNotFound
	}
	delete(f.likes[postID], userID)
	return nil
}

func (f *fakeLikeRepo) HasUserLikedPost(postID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[postID][userID], nil
}

func (f *fakeLikeRepo) GetLikesCountByPostID(postID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.likes[postID])), nil
}

func (f *fakeLikeRepo) CountLikesForPosts(postIDs []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range postIDs {
		n += int64(len(f.likes[id]))
	}
	return n, nil
}

// fakeCommentRepo is an in-memory append-only CommentRepository. A
// monotonically advancing clock keeps created_at ordering deterministic.
type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []models.Comment
	nextID   uint
	clock    time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1, clock: time.Now()}
}

func (f *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = f.nextID
	f.nextID++
	f.clock = f.clock.Add(time.Millisecond)
	comment.CreatedAt = f.clock
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCommentRepo) GetCommentsCountByPostID(postID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) CountCommentsByAuthor(authorID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.comments {
		if c.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) TopCommentersSince(since time.Time, limit int) ([]models.CommenterCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byAuthor := make(map[string]int64)
	for _, c := range f.comments {
		if !c.CreatedAt.Before(since) {
			byAuthor[c.AuthorID]++
		}
	}
	var out []models.CommenterCount
	for author, count := range byAuthor {
		out = append(out, models.CommenterCount{AuthorID: author, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].AuthorID < out[j].AuthorID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// seed appends a comment with an explicit timestamp.
func (f *fakeCommentRepo) seed(postID, authorID string, createdAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     "seeded",
	})
	f.comments[len(f.comments)-1].ID = f.nextID
	f.nextID++
	f.comments[len(f.comments)-1].CreatedAt = createdAt
}

// fakeProfileRepo is an in-memory ProfileRepository.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]models.Profile)}
}

func (f *fakeProfileRepo) GetProfileByID(id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	out := p
	return &out, nil
}

func (f *fakeProfileRepo) TopByPoints(limit int) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProfileRepo) AddPoints(id string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.Points += delta
	f.profiles[id] = p
	return nil
}

func (f *fakeProfileRepo) GrantBadge(id string, badge string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	for _, b := range p.Badges {
		if b == badge {
			return nil
		}
	}
	p.Badges = append(p.Badges, badge)
	f.profiles[id] = p
	return nil
}

func (f *fakeProfileRepo) seed(profile models.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[profile.ID] = profile
}
