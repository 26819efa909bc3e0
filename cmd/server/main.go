package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nikskoz/AutoAdvisor/internal/config"
	"github.com/Nikskoz/AutoAdvisor/internal/handler"
	"github.com/Nikskoz/AutoAdvisor/internal/repository"
	"github.com/Nikskoz/AutoAdvisor/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Logging)

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("AutoAdvisor API")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	db, err := repository.NewDB(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Connected to PostgreSQL database")

	listingRepo := repository.NewListingRepository(db)
	modelRepo := repository.NewModelInfoRepository(db)

	// Initialize OpenAI client
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
	if cfg.OpenAI.Enabled {
		log.Info().
			Str("api_base", cfg.OpenAI.APIBase).
			Str("model", cfg.OpenAI.Model).
			Float64("temperature", cfg.OpenAI.Temperature).
			Int("max_input_tokens", cfg.OpenAI.MaxInputTokens).
			Int("max_completion_tokens", cfg.OpenAI.MaxCompletionTokens).
			Msg("OpenAI client initialized")
	} else {
		log.Warn().Msg("OPENAI_API_KEY is not set - search requests will fail at the analysis step")
	}

	// Initialize services
	priority := service.NewPriorityScorer()
	matcher := service.NewMatchScorer(
		cfg.Scoring.WeightPrice,
		cfg.Scoring.WeightMileage,
		cfg.Scoring.WeightAge,
	)
	packer := service.NewPayloadPacker(service.NewTokenCounter(), cfg.OpenAI.MaxInputTokens)
	advisor := service.NewAdvisorService(
		listingRepo,
		modelRepo,
		openaiClient,
		priority,
		matcher,
		packer,
		cfg.Scoring.CandidateLimit,
	)

	log.Info().Msg("Services initialized")

	searchHandler := handler.NewSearchHandler(advisor)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Root and health endpoints
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "AutoAdvisor API is running!"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "autoadvisor",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/search", searchHandler.Search)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("Starting server")

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
