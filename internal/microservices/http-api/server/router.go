package server

import (
	"log/slog"
	"net/http"
	"time"

	"musify/internal/config"
	"musify/internal/microservices/http-api/cache"
	"musify/internal/microservices/http-api/handler"
	"musify/internal/microservices/http-api/middleware"
	"musify/internal/microservices/http-api/repository"
	"musify/internal/microservices/http-api/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are the long-lived collaborators the HTTP API is built from.
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
	Store  repository.Store
	Cache  cache.AlbumCache
}

// SetupRouter builds the gin engine. The returned func stops background workers.
func SetupRouter(deps Dependencies) (*gin.Engine, func()) {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	_ = router.SetTrustedProxies(nil)

	// Services
	aggregator := service.NewRatingAggregator()
	repos := deps.Store.Repos()
	authService := service.NewAuthService(repos.Users, cfg, deps.Logger)
	albumService := service.NewAlbumService(deps.Store, deps.Cache, deps.Logger)
	reviewService := service.NewReviewService(deps.Store, aggregator, deps.Cache, deps.Logger)
	userService := service.NewUserService(deps.Store, aggregator, deps.Cache, deps.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, deps.Logger)
	albumHandler := handler.NewAlbumHandler(albumService, deps.Logger, cfg.RequestTimeout)
	reviewHandler := handler.NewReviewHandler(reviewService, deps.Logger, cfg.RequestTimeout)
	userHandler := handler.NewUserHandler(userService, deps.Logger, cfg.RequestTimeout)

	authRateLimiter := middleware.NewIPRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst, 10*time.Minute)
	requireAuth := middleware.AuthMiddleware(authService)
	requireAdmin := middleware.RequireAdmin()

	router.GET("/health", handler.Health(deps.Store))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	})

	authGroup := api.Group("/auth", authRateLimiter.Middleware())
	{
		authGroup.POST("/sign-up", authHandler.SignUp)
		authGroup.POST("/sign-in", authHandler.SignIn)
	}

	albums := api.Group("/albums")
	{
		albums.GET("", albumHandler.ListAlbums)
		albums.GET("/:album_id", albumHandler.GetAlbum)
		albums.GET("/:album_id/reviews", albumHandler.ListAlbumReviews)
		albums.POST("", requireAuth, requireAdmin, albumHandler.CreateAlbum)
		albums.PUT("/:album_id", requireAuth, requireAdmin, albumHandler.UpdateAlbum)
		albums.DELETE("/:album_id", requireAuth, requireAdmin, albumHandler.DeleteAlbum)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/:review_id", reviewHandler.GetReview)
		reviews.POST("", requireAuth, reviewHandler.CreateReview)
		reviews.PUT("/:review_id", requireAuth, reviewHandler.UpdateReview)
		reviews.DELETE("/:review_id", requireAuth, reviewHandler.DeleteReview)
	}

	users := api.Group("/users", requireAuth)
	{
		users.GET("", requireAdmin, userHandler.ListUsers)
		users.GET("/me", userHandler.GetMe)
		users.PUT("/:user_id", userHandler.UpdateUser)
		users.DELETE("/:user_id", userHandler.DeleteUser)
	}

	return router, authRateLimiter.Stop
}
