// Package server assembles the gin engine: middleware chain, handlers and routes.
package server

import (
	"art-gallery-backend/internal/cache"
	"art-gallery-backend/internal/config"
	"art-gallery-backend/internal/handlers"
	"art-gallery-backend/internal/logging"
	"art-gallery-backend/internal/metrics"
	"art-gallery-backend/internal/middleware"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"
	"art-gallery-backend/internal/storage"
	"art-gallery-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Dependencies struct {
	Config  *config.Config
	Log     logrus.FieldLogger
	Repo    store.Repository
	Cache   cache.Cache
	Storage storage.Backend
	Auth    *services.AuthService
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(d Dependencies) *gin.Engine {
	if d.Cache == nil {
		d.Cache = cache.Nop{}
	}

	users := services.NewUserService(d.Repo)
	categories := services.NewCategoryService(d.Repo, d.Cache, d.Log)
	paintings := services.NewPaintingService(d.Repo, d.Log)
	ratings := services.NewRatingService(d.Repo)
	comments := services.NewCommentService(d.Repo)
	images := storage.NewImageService(d.Storage, d.Config.MaxFileSize, d.Config.AllowedExtensions(), d.Log)

	healthHandler := handlers.NewHealthHandler(d.Repo, d.Log)
	authHandler := handlers.NewAuthHandler(users, d.Auth, d.Log)
	usersHandler := handlers.NewUsersHandler(users, paintings, d.Log)
	categoriesHandler := handlers.NewCategoriesHandler(categories, d.Log)
	paintingsHandler := handlers.NewPaintingsHandler(paintings, images, d.Log)
	ratingsHandler := handlers.NewRatingsHandler(ratings, d.Log)
	commentsHandler := handlers.NewCommentsHandler(comments, d.Log)

	router := gin.New()
	// multipart bodies beyond this spill to temp files; size limits are enforced by ImageService
	router.MaxMultipartMemory = d.Config.MaxFileSize

	router.Use(gin.Recovery())
	router.Use(logging.RequestLogger(d.Log))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORS(d.Config.AllowedOrigins()))
	if d.RateLimiter != nil {
		router.Use(d.RateLimiter.Handler())
	}

	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if local, ok := d.Storage.(*storage.LocalBackend); ok {
		router.Static(storage.UploadsRoute, local.Root())
	}

	requireAuth := middleware.AuthMiddleware(d.Auth)
	requireArtist := middleware.RequireRole(models.RoleArtist)

	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	userRoutes := router.Group("/users")
	userRoutes.GET("/me", requireAuth, usersHandler.GetMe)
	userRoutes.PUT("/me", requireAuth, usersHandler.UpdateMe)
	userRoutes.GET("/:id", usersHandler.GetUser)
	userRoutes.GET("/:id/paintings", usersHandler.ListUserPaintings)

	categoryRoutes := router.Group("/categories")
	categoryRoutes.GET("", categoriesHandler.ListCategories)
	categoryRoutes.GET("/:id", categoriesHandler.GetCategory)
	categoryRoutes.POST("", requireAuth, requireArtist, categoriesHandler.CreateCategory)

	paintingRoutes := router.Group("/paintings")
	paintingRoutes.GET("", paintingsHandler.ListPaintings)
	paintingRoutes.GET("/:id", paintingsHandler.GetPainting)
	paintingRoutes.POST("", requireAuth, requireArtist, paintingsHandler.CreatePainting)
	paintingRoutes.PUT("/:id", requireAuth, paintingsHandler.UpdatePainting)
	paintingRoutes.DELETE("/:id", requireAuth, paintingsHandler.DeletePainting)

	ratingRoutes := router.Group("/ratings")
	ratingRoutes.POST("", requireAuth, ratingsHandler.RatePainting)
	ratingRoutes.GET("/:painting_id/rating/:user_id", ratingsHandler.GetUserRating)

	commentRoutes := router.Group("/comments")
	commentRoutes.POST("", requireAuth, commentsHandler.CreateComment)
	commentRoutes.GET("/painting/:painting_id", commentsHandler.ListComments)
	commentRoutes.PUT("/:id", requireAuth, commentsHandler.UpdateComment)
	commentRoutes.DELETE("/:id", requireAuth, commentsHandler.DeleteComment)

	return router
}
