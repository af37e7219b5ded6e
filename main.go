// api/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Loganbn2/Simula-Data-Dash/config"
	"github.com/Loganbn2/Simula-Data-Dash/database"
	"github.com/Loganbn2/Simula-Data-Dash/handlers"
	"github.com/Loganbn2/Simula-Data-Dash/insights"
	"github.com/Loganbn2/Simula-Data-Dash/middleware"
	"github.com/Loganbn2/Simula-Data-Dash/pipeline"
	"github.com/Loganbn2/Simula-Data-Dash/store"
)

func main() {
	seedCount := flag.Int("seed", 0, "generate and ingest N sample conversations before serving")
	flag.Parse()

	// Load .env file at the very start.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL Database (for dashboard users) ---
	dbClient, err := database.NewPostgresDB(cfg.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- Initialize ClickHouse Database (for chat analytics) ---
	chClient, err := database.NewClickHouseDB(cfg.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Initialize Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	chatLogStore := store.NewChatLogStore(chClient)

	// --- Initialize Pipeline and Services ---
	ingestPipeline := pipeline.New(pipeline.KeywordClassifier{}, pipeline.StaticEnricher{}, chatLogStore)
	insightService := insights.NewService(cfg.OpenAIAPIKey)

	if *seedCount > 0 {
		if err := seedSampleData(ingestPipeline, *seedCount); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	// --- Initialize Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore, []byte(cfg.JWTSecret))
	chatLogHandlers := handlers.NewChatLogHandlers(ingestPipeline, chatLogStore)
	insightHandlers := handlers.NewInsightHandlers(chatLogStore, insightService)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigin))

	api := r.Group("/api")
	{
		// Authentication Endpoints (no authentication required)
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)
		// Protected Routes (require a valid JWT token or the API key)
		protected := api.Group("/")
		protected.Use(middleware.AuthRequired([]byte(cfg.JWTSecret), cfg.AuthAPIKey))
		{
			protected.POST("/conversations", chatLogHandlers.IngestConversations)
			protected.GET("/logs", chatLogHandlers.GetChatLogs)
			protected.GET("/logs/summary", chatLogHandlers.GetChatLogSummary)
			protected.GET("/logs/filters", chatLogHandlers.GetFilterOptions)
			protected.POST("/insights", insightHandlers.AskInsight)

			protected.GET("/profile", func(c *gin.Context) {
				userID := c.MustGet("user_id").(int)
				userEmail := c.MustGet("user_email").(string)

				c.JSON(http.StatusOK, gin.H{
					"message":    "Welcome to your profile!",
					"user_id":    userID,
					"user_email": userEmail,
					"ip_address": c.ClientIP(),
				})
			})
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Chat analytics API server starting on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
