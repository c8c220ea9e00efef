package main

import (
	"fmt"
	"os"
	"time"

	"github.com/screenrate/screenrate-backend/internal/clients/igdb"
	"github.com/screenrate/screenrate-backend/internal/clients/redisx"
	"github.com/screenrate/screenrate-backend/internal/clients/tmdb"
	"github.com/screenrate/screenrate-backend/internal/db"
	"github.com/screenrate/screenrate-backend/internal/handlers"
	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/middleware"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/server"
	"github.com/screenrate/screenrate-backend/internal/services"
	"github.com/screenrate/screenrate-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	staticDir := utils.GetEnv("STATIC_DIR", "./static", log)
	fontPath := utils.GetEnv("AVATAR_FONT_PATH", "./assets/fonts/Inter-Bold.ttf", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (optional, taste profiles fall back to uncached builds)
	redisClient, err := redisx.New(log)
	if err != nil {
		log.Warn("Redis init failed, running without profile cache", "error", err)
		redisClient = nil
	}

	// External catalog clients
	tmdbClient := tmdb.NewClient(log)
	igdbClient := igdb.NewClient(log)

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	contentRepo := repos.NewContentRepo(thePG, log)
	reviewRepo := repos.NewReviewRepo(thePG, log)
	heroRepo := repos.NewHeroRepo(thePG, log)
	comingSoonRepo := repos.NewComingSoonRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	avatarService, err := services.NewAvatarService(log, staticDir, fontPath)
	if err != nil {
		log.Warn("Avatar service init failed, new users get no avatar", "error", err)
		avatarService = nil
	}
	authService := services.NewAuthService(
		thePG, log, userRepo, userTokenRepo, avatarService,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(thePG, log, userRepo)
	contentService := services.NewContentService(thePG, log, contentRepo, comingSoonRepo)
	reviewService := services.NewReviewService(thePG, log, reviewRepo, contentRepo, userRepo)
	heroService := services.NewHeroService(thePG, log, heroRepo)
	tasteProfileService := services.NewTasteProfileService(log, reviewRepo, redisClient)
	recommendationService := services.NewRecommendationService(log, tasteProfileService, contentRepo, services.DefaultScoreConfig())
	gamificationService := services.NewGamificationService(thePG, log, reviewRepo)
	importService := services.NewImportService(thePG, log, tmdbClient, igdbClient, contentRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, tasteProfileService)
	contentHandler := handlers.NewContentHandler(contentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	heroHandler := handlers.NewHeroHandler(heroService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService)
	adminHandler := handlers.NewAdminHandler(importService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:           authHandler,
		AuthMiddleware:        authMiddleware,
		UserHandler:           userHandler,
		ContentHandler:        contentHandler,
		ReviewHandler:         reviewHandler,
		HeroHandler:           heroHandler,
		RecommendationHandler: recommendationHandler,
		GamificationHandler:   gamificationHandler,
		AdminHandler:          adminHandler,
		StaticDir:             staticDir,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
