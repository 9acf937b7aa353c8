package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/loopline/backend/internal/handlers"
	"github.com/loopline/backend/internal/middleware"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"github.com/loopline/backend/internal/services"
	"github.com/loopline/backend/pkg/config"
	"github.com/loopline/backend/pkg/logging"
	"github.com/loopline/backend/pkg/token"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes migrates the schema, builds the dependency graph and mounts
// every route group under /api/v1.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, tokens *token.Manager) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.CommentLike{},
		&models.Follow{},
		&models.Story{},
		&models.StoryView{},
		&models.Highlight{},
		&models.HighlightStory{},
		&models.Notification{},
		&models.Hashtag{},
		&models.PostHashtag{},
		&models.Report{},
		&models.Message{},
	); err != nil {
		return err
	}
	logging.GetLogger().Info("schema migrated")

	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", cfg.UploadDir)

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	storyRepo := repositories.NewPostgresStoryRepository(db)
	highlightRepo := repositories.NewPostgresHighlightRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	hashtagRepo := repositories.NewPostgresHashtagRepository(db)
	reportRepo := repositories.NewPostgresReportRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)

	notifier := services.NewNotifier(notificationRepo, logging.WithComponent("notifier"))
	hashtagSvc := services.NewHashtagService(hashtagRepo, logging.WithComponent("hashtags"))
	uploadSvc := services.NewUploadService(cfg.UploadDir, cfg.UploadMaxBytes)

	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	postHandler := handlers.NewPostHandler(postRepo, hashtagSvc)
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, likeRepo, bookmarkRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, notifier)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, postRepo)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, commentLikeRepo, notifier)
	storyHandler := handlers.NewStoryHandler(storyRepo, userRepo, followRepo)
	highlightHandler := handlers.NewHighlightHandler(highlightRepo, storyRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	hashtagHandler := handlers.NewHashtagHandler(hashtagRepo, postRepo)
	reportHandler := handlers.NewReportHandler(reportRepo, userRepo, postRepo)
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo)
	adminHandler := handlers.NewAdminHandler(userRepo, postRepo)
	uploadHandler := handlers.NewUploadHandler(uploadSvc)

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	authHandler.RegisterAuthRoutes(auth)

	protected := api.Group("", middleware.JWTAuthMiddleware(tokens))
	userHandler.RegisterUserRoutes(protected)
	postHandler.RegisterPostRoutes(protected)
	feedHandler.RegisterFeedRoutes(protected)
	likeHandler.RegisterLikeRoutes(protected)
	bookmarkHandler.RegisterBookmarkRoutes(protected)
	followHandler.RegisterFollowRoutes(protected)
	commentHandler.RegisterCommentRoutes(protected)
	storyHandler.RegisterStoryRoutes(protected)
	highlightHandler.RegisterHighlightRoutes(protected)
	notificationHandler.RegisterNotificationRoutes(protected)
	hashtagHandler.RegisterHashtagRoutes(protected)
	reportHandler.RegisterReportRoutes(protected)
	messageHandler.RegisterMessageRoutes(protected)
	uploadHandler.RegisterUploadRoutes(protected)

	admin := protected.Group("/admin", middleware.AdminOnly())
	adminHandler.RegisterAdminRoutes(admin)
	storyHandler.RegisterAdminStoryRoutes(admin)
	hashtagHandler.RegisterAdminHashtagRoutes(admin)
	reportHandler.RegisterAdminReportRoutes(admin)
	notificationHandler.RegisterAdminNotificationRoutes(admin)

	logging.GetLogger().Info("routes mounted", zap.String("base_path", "/api/v1"))
	return nil
}
