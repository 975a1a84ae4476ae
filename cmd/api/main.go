package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/missoes-dashboard-api/internal/cache"
	"github.com/missoes-dashboard-api/internal/config"
	"github.com/missoes-dashboard-api/internal/database"
	"github.com/missoes-dashboard-api/internal/handlers"
	"github.com/missoes-dashboard-api/internal/middleware"
	"github.com/missoes-dashboard-api/internal/permissions"
	"github.com/missoes-dashboard-api/internal/repository"
	"github.com/missoes-dashboard-api/internal/services"
	"github.com/missoes-dashboard-api/internal/storage"
)

// API do painel de missoes: paginas publicas por subdominio/slug, painel de
// membros, financeiro e chat interno.
func main() {
	log.Println("Starting Mission Dashboard API...")

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	// Banco indisponivel nao derruba a API: leituras degradam para vazio e
	// escritas respondem como nao aplicadas
	var pool *pgxpool.Pool
	pool, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		log.Printf("DB unavailable, serving degraded data: %v", err)
		pool = nil
	}

	// Initialize Redis client
	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
	}

	// Initialize storage driver for receipts
	storageDriver, err := storage.NewDriver(&storage.Config{
		Driver:             cfg.Storage.Driver,
		UploadsPath:        cfg.Storage.UploadsPath,
		AWSAccessKeyID:     cfg.Storage.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.Storage.AWSSecretAccessKey,
		AWSRegion:          cfg.Storage.AWSRegion,
		AWSBucket:          cfg.Storage.AWSBucket,
		R2AccessKeyID:      cfg.Storage.R2AccessKeyID,
		R2SecretAccessKey:  cfg.Storage.R2SecretAccessKey,
		R2AccountID:        cfg.Storage.R2AccountID,
		R2Bucket:           cfg.Storage.R2Bucket,
		R2PublicURL:        cfg.Storage.R2PublicURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage driver: %v", err)
	}

	// Initialize repositories and services
	missionRepo := repository.NewMissionRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	missionService := services.NewMissionService(
		missionRepo,
		redisClient,
		time.Duration(cfg.Redis.TTLMission)*time.Second,
		time.Duration(cfg.Redis.TTLList)*time.Second,
	)
	receiptService := services.NewReceiptService(storageDriver, redisClient)

	// Initialize handlers
	missionHandler := handlers.NewMissionHandler(missionService)
	financeHandler := handlers.NewFinanceHandler(missionService, receiptService)
	chatHandler := handlers.NewChatHandler()
	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo)

	router := setupRouter(cfg, missionService, missionHandler, financeHandler, chatHandler, feedbackHandler)

	// Comprovantes do driver local sao servidos pelo proprio processo
	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		router.Static("/uploads", cfg.Storage.UploadsPath)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Mission Dashboard API listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Mission Dashboard API...")

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if pool != nil {
		pool.Close()
	}
	redisClient.Close()

	log.Println("Mission Dashboard API exited")
}

func setupRouter(
	cfg *config.Config,
	missionService *services.MissionService,
	missionHandler *handlers.MissionHandler,
	financeHandler *handlers.FinanceHandler,
	chatHandler *handlers.ChatHandler,
	feedbackHandler *handlers.FeedbackHandler,
) *gin.Engine {
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "mission-dashboard-api"})
	})

	// Raiz resolve a missao pelo subdominio; sem subdominio, lista todas
	router.GET("/", missionHandler.Index)

	api := router.Group("/api/v1")

	api.GET("/missions", missionHandler.List)
	api.POST("/feedback", feedbackHandler.Create)

	// Rotas por missao (resolucao obrigatoria de tenant)
	mission := api.Group("/missions/:slug")
	mission.Use(middleware.MissionMiddleware(missionService))
	{
		mission.GET("", missionHandler.Get)
		mission.GET("/sobre", missionHandler.About)
		mission.GET("/projetos", missionHandler.Projects)
		mission.GET("/projetos/:project_id", missionHandler.ProjectDetail)
		mission.GET("/ajuda", missionHandler.Help)
		mission.GET("/contato", missionHandler.Contact)

		// Area de membros: identidade + vinculo com a missao obrigatorios
		member := mission.Group("")
		member.Use(middleware.AuthMiddleware(cfg))
		member.Use(middleware.RequireMember())
		{
			member.GET("/painel", missionHandler.Dashboard)
			member.GET("/chat", chatHandler.Conversation)

			member.PUT("/meeting-link",
				middleware.RequireCapability(permissions.CapOperationsUse),
				missionHandler.UpdateMeetingLink)
			member.PUT("/projetos/:project_id/meeting-link",
				middleware.RequireCapability(permissions.CapOperationsUse),
				missionHandler.UpdateProjectMeetingLink)

			finance := member.Group("/financeiro")
			{
				finance.GET("",
					middleware.RequireCapability(permissions.CapFinanceRead),
					financeHandler.View)
				finance.GET("/export",
					middleware.RequireCapability(permissions.CapFinanceRead),
					financeHandler.ExportCSV)
				finance.POST("/lancamentos",
					middleware.RequireCapability(permissions.CapFinanceWrite),
					financeHandler.AddEntry)
				finance.POST("/relatorios",
					middleware.RequireCapability(permissions.CapFinanceWrite),
					financeHandler.AddReport)
				finance.POST("/recibos",
					middleware.RequireCapability(permissions.CapFinanceWrite),
					financeHandler.UploadReceipt)
			}

			member.PUT("/projetos/:project_id/budget",
				middleware.RequireCapability(permissions.CapFinanceWrite),
				financeHandler.UpdateBudget)
		}
	}

	return router
}
