package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/screenrate/screenrate-backend/internal/handlers"
	"github.com/screenrate/screenrate-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler           *handlers.AuthHandler
	AuthMiddleware        *middleware.AuthMiddleware
	UserHandler           *handlers.UserHandler
	ContentHandler        *handlers.ContentHandler
	ReviewHandler         *handlers.ReviewHandler
	HeroHandler           *handlers.HeroHandler
	RecommendationHandler *handlers.RecommendationHandler
	GamificationHandler   *handlers.GamificationHandler
	AdminHandler          *handlers.AdminHandler
	StaticDir             string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)

		api.GET("/content", cfg.ContentHandler.Search)
		api.GET("/content/:id", cfg.ContentHandler.Get)
		api.GET("/content/:id/reviews", cfg.ReviewHandler.ListByContent)
		api.GET("/coming-soon", cfg.ContentHandler.ComingSoon)
		api.GET("/hero", cfg.HeroHandler.ListActive)
		api.GET("/users/:id", cfg.UserHandler.GetUser)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/users/me", cfg.UserHandler.GetMe)
	protected.PATCH("/users/me", cfg.UserHandler.UpdateMe)
	protected.GET("/users/me/taste-profile", cfg.UserHandler.GetMyTasteProfile)
	protected.GET("/users/me/level", cfg.GamificationHandler.GetMyLevel)
	protected.GET("/users/me/achievements", cfg.GamificationHandler.GetMyAchievements)
	protected.GET("/users/me/reviews", cfg.ReviewHandler.ListMine)
	// Reviews
	protected.POST("/reviews", cfg.ReviewHandler.Create)
	protected.PUT("/reviews/:id", cfg.ReviewHandler.Update)
	protected.DELETE("/reviews/:id", cfg.ReviewHandler.Delete)
	// Recommendations
	protected.GET("/recommendations", cfg.RecommendationHandler.List)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	// Catalog
	admin.POST("/content", cfg.ContentHandler.Create)
	admin.PUT("/content/:id", cfg.ContentHandler.Update)
	admin.DELETE("/content/:id", cfg.ContentHandler.Delete)
	admin.POST("/coming-soon", cfg.ContentHandler.CreateComingSoon)
	admin.DELETE("/coming-soon/:id", cfg.ContentHandler.DeleteComingSoon)
	// Hero carousel
	admin.GET("/hero", cfg.HeroHandler.ListAll)
	admin.POST("/hero", cfg.HeroHandler.Create)
	admin.PUT("/hero/:id", cfg.HeroHandler.Update)
	admin.DELETE("/hero/:id", cfg.HeroHandler.Delete)
	// External imports
	admin.GET("/external/status", cfg.AdminHandler.ExternalStatus)
	admin.POST("/import/movie/:tmdbId", cfg.AdminHandler.ImportMovie)
	admin.POST("/import/tv/:tmdbId", cfg.AdminHandler.ImportTVShow)
	admin.POST("/import/game/:igdbId", cfg.AdminHandler.ImportGame)
	admin.POST("/import/bulk/movies", cfg.AdminHandler.BulkImportMovies)
	admin.POST("/import/bulk/games", cfg.AdminHandler.BulkImportGames)

	return router
}
