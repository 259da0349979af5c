package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/poetscorner/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound is returned when a post id does not resolve to a document.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	GetPublishedPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetDraftsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	GetPublishedPostIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	CountPublishedByAuthor(ctx context.Context, authorID string) (int64, error)
	TopByLikesSince(ctx context.Context, since time.Time, limit int64) ([]models.Post, error)
	IncrementLikesCount(ctx context.Context, postID string) error
	DecrementLikesCount(ctx context.Context, postID string) error
	IncrementCommentsCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost inserts a new post document, assigning its ID and timestamps.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by its hex ID. An ID that is not valid
// ObjectID hex cannot reference any document, so it reports not-found
// rather than a store failure.
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces the mutable fields of an existing post in place and
// refreshes updated_at. Counters and created_at are never touched here.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":        post.Title,
			"body":         post.Body,
			"excerpt":      post.Excerpt,
			"tags":         post.Tags,
			"category":     post.Category,
			"is_draft":     post.IsDraft,
			"is_published": post.IsPublished,
			"updated_at":   post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// GetPublishedPosts retrieves the public feed, newest first.
func (r *MongoPostRepository) GetPublishedPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_published": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetDraftsByAuthor retrieves an author's unpublished drafts, newest first.
func (r *MongoPostRepository) GetDraftsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID, "is_draft": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPublishedPostIDsByAuthor returns the hex IDs of an author's published
// posts, used to aggregate likes received across the like table.
func (r *MongoPostRepository) GetPublishedPostIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID, "is_published": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID.Hex())
	}
	return ids, nil
}

// CountPublishedByAuthor counts an author's published posts.
func (r *MongoPostRepository) CountPublishedByAuthor(ctx context.Context, authorID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"author_id": authorID, "is_published": true})
}

// TopByLikesSince retrieves published posts created at or after since,
// ordered by likes_count descending then _id for a stable tie-break.
func (r *MongoPostRepository) TopByLikesSince(ctx context.Context, since time.Time, limit int64) ([]models.Post, error) {
	filter := bson.M{
		"is_published": true,
		"created_at":   bson.M{"$gte": since},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "likes_count", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// IncrementLikesCount increments the cached likes counter of a post.
func (r *MongoPostRepository) IncrementLikesCount(ctx context.Context, postID string) error {
	return r.incField(ctx, postID, "likes_count", 1)
}

// DecrementLikesCount decrements the cached likes counter of a post.
func (r *MongoPostRepository) DecrementLikesCount(ctx context.Context, postID string) error {
	return r.incField(ctx, postID, "likes_count", -1)
}

// IncrementCommentsCount increments the cached comments counter of a post.
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	return r.incField(ctx, postID, "comments_count", 1)
}

func (r *MongoPostRepository) incField(ctx context.Context, postID, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: delta}})
	return err
}
