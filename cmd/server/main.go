package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/application/services"
	"github.com/tablescout/tablescout/internal/core/domain/search"
	"github.com/tablescout/tablescout/internal/core/domain/venue"
	"github.com/tablescout/tablescout/internal/core/ports"
	"github.com/tablescout/tablescout/internal/infrastructure/health"
	"github.com/tablescout/tablescout/internal/infrastructure/httpserver"
	"github.com/tablescout/tablescout/internal/infrastructure/memcache"
	"github.com/tablescout/tablescout/internal/infrastructure/places"
	"github.com/tablescout/tablescout/internal/infrastructure/redis"
	"github.com/tablescout/tablescout/internal/infrastructure/resy"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting tablescout...")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Persistent photo tier, namespaced in Redis
	photoBlobCache := redis.NewBlobCache(redisClient, "venue_photos")

	// Process-local caches
	searchCache := memcache.NewTTLCache[search.CacheEntry](cfg.Search.CacheTTL)
	photoMemory := memcache.NewStore[venue.PhotoRecord]()

	// Upstream transports
	resyClient := resy.NewClient(&cfg.Resy, logger)
	placesClient := places.NewClient(&cfg.Places, logger)

	// Wire services
	photoService := services.NewPhotoService(photoMemory, photoBlobCache, placesClient, cfg.Places.City, logger)
	availabilityService := services.NewAvailabilityService(resyClient, &cfg.Search, logger)
	enrichmentScheduler := services.NewEnrichmentScheduler(availabilityService, cfg.Search.EnrichmentConcurrency, logger)

	// Listings embed a lazy link to our own photo proxy rather than the
	// resolved photo host, so clients never fetch photos cross-origin.
	photoURL := func(venueID, venueName string) string {
		return fmt.Sprintf("/api/v1/venues/%s/photo/raw?name=%s", url.PathEscape(venueID), url.QueryEscape(venueName))
	}

	searchService := services.NewSearchService(resyClient, searchCache, enrichmentScheduler, photoURL, &cfg.Search, logger)
	venueService := services.NewVenueService(resyClient, photoService, placesClient, &cfg.Resy, logger)

	hcSlice := []ports.HealthChecker{
		health.NewRedisHealthChecker(redisClient),
		health.NewUpstreamHealthChecker("resy", cfg.Resy.BaseURL),
	}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		SearchService:  searchService,
		VenueService:   venueService,
		PhotoResolver:  photoService,
		ImageFetcher:   placesClient,
		SearchConfig:   &cfg.Search,
		HealthCheckers: hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
