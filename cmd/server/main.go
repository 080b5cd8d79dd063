package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"mercato/server/config"
	"mercato/server/internal/api"
	"mercato/server/internal/cache"
	"mercato/server/internal/database"
	"mercato/server/internal/processor"
	"mercato/server/internal/queue"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Warn("Failed to load .env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.DatabasePath)
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	mapCache := cache.New(cfg.RedisAddr, time.Duration(cfg.MapCacheTTL)*time.Second, logger)
	defer mapCache.Close()
	if mapCache != nil {
		logger.Infof("Map response cache enabled via %s", cfg.RedisAddr)
	}

	// Start the ingest pipeline
	ingestQueue := queue.NewListingQueue(cfg.Ingest.QueueSize, logger)
	ingestQueue.Start()
	defer ingestQueue.Close()

	batchProcessor := processor.NewBatchProcessor(db.GetDB(), ingestQueue, cfg, logger)
	batchProcessor.Start()
	defer batchProcessor.Stop()

	handler := api.NewHandler(db, logger, mapCache, ingestQueue)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
