package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jukevox/backend/internal/catalog"
	"github.com/jukevox/backend/internal/config"
	"github.com/jukevox/backend/internal/handlers"
	"github.com/jukevox/backend/internal/middleware"
	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/services"
	"github.com/jukevox/backend/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis and the KV store backing sessions, queues and policies
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()
	kv := store.NewRedisKV(redisClient)

	// Initialize services
	sessionService := services.NewSessionService(kv, cfg)
	queueService := services.NewQueueService(kv)
	policyService := services.NewPolicyService(kv)
	authService := services.NewAuthService(db, cfg)
	authService.AttachSessionService(sessionService)
	authService.AttachPolicyService(policyService)
	qrService := services.NewQRService(cfg)

	aggregator := catalog.NewAggregator(cfg.ProviderSearchLimit,
		catalog.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret),
		catalog.NewAppleMusicClient(cfg.AppleMusicDevToken, cfg.AppleMusicStorefront),
	)
	catalogService := services.NewCatalogService(aggregator, sessionService, policyService)

	// Periodic cleanup for expired refresh tokens
	go func() {
		for {
			if err := authService.CleanupExpiredTokens(); err != nil {
				log.Printf("Refresh token cleanup error: %v", err)
			}
			time.Sleep(1 * time.Hour)
		}
	}()

	// Create admin user if not exists
	if err := authService.CreateDefaultAdmin(context.Background()); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	queueHandler := handlers.NewQueueHandler(queueService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(queueService, sessionService, policyService, qrService, authService)
	displayHandler := handlers.NewDisplayHandler(sessionService, queueService)

	// Health check outside API group (no /api/v1 prefix)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.Auth(authService), authHandler.Logout)
		}

		// Patron/TV routes (no login; polled every few seconds)
		api.GET("/sessions/active", sessionHandler.ListActiveSessions)
		api.GET("/sessions/:sessionId", sessionHandler.GetSession)
		api.POST("/sessions", middleware.OptionalAuth(authService), sessionHandler.CreateSession)
		api.GET("/queue/:sessionId", queueHandler.ListQueue)
		api.POST("/queue/:sessionId/requests", queueHandler.AddRequest)
		api.GET("/search", catalogHandler.Search)

		// TV display surface: one token, one session, one polling endpoint
		api.GET("/display", middleware.DisplayAuth(authService), displayHandler.GetState)

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(authService))
		{
			admin.POST("/queue/:sessionId/skip", adminHandler.SkipTrack)
			admin.GET("/filters", adminHandler.GetFilters)
			admin.PUT("/filters", adminHandler.UpdateFilters)
			admin.PUT("/sessions/:sessionId/settings", adminHandler.UpdateSessionSettings)
			admin.POST("/sessions/:sessionId/open", adminHandler.OpenSession)
			admin.POST("/sessions/:sessionId/close", adminHandler.CloseSession)
			admin.POST("/sessions/:sessionId/display-token", adminHandler.CreateDisplayToken)
			admin.GET("/sessions/:sessionId/qr.pdf", adminHandler.GetSessionQR)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
