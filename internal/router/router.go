package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/poetscorner/backend/internal/handlers"
	"github.com/poetscorner/backend/internal/middleware"
	"github.com/poetscorner/backend/internal/models"
	"github.com/poetscorner/backend/internal/repositories"
	"github.com/poetscorner/backend/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDatabase string, firebaseAuthClient *auth.Client, log *zap.Logger) error {
	if err := pgdb.AutoMigrate(
		&models.Like{},
		&models.Comment{},
		&models.Profile{},
	); err != nil {
		return err
	}
	log.Info("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories (the Engagement Store) ---
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(mongoDatabase))
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)

	// --- Services ---
	drafts := services.NewDraftService(postRepo, log)
	autosaver := services.NewAutosaver(services.DefaultAutosaveDelay, drafts.SaveDraft, log)
	drafts.AttachAutosaver(autosaver)
	reactions := services.NewReactionService(likeRepo, postRepo, log)
	comments := services.NewCommentService(commentRepo, postRepo, log)
	progress := services.NewProgressService(postRepo, likeRepo, commentRepo, profileRepo, log)
	leaderboard := services.NewLeaderboardService(profileRepo, postRepo, commentRepo, log)

	// --- Authenticated API ---
	api := e.Group("/api", middleware.FirebaseAuthMiddleware(firebaseAuthClient))

	handlers.NewPostHandler(drafts, autosaver, postRepo).RegisterPostRoutes(api)
	handlers.NewLikeHandler(reactions).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(comments).RegisterCommentRoutes(api)
	handlers.NewAchievementHandler(progress).RegisterAchievementRoutes(api)
	handlers.NewLeaderboardHandler(leaderboard).RegisterLeaderboardRoutes(api)

	return nil
}
