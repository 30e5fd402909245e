package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/api"
	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/logger"
	"github.com/talentmatch/go-match-engine/internal/recommend"
	"github.com/talentmatch/go-match-engine/internal/scheduler"
	"github.com/talentmatch/go-match-engine/internal/scoring"
	"github.com/talentmatch/go-match-engine/internal/store"
	"github.com/talentmatch/go-match-engine/internal/tasks"
	"github.com/talentmatch/go-match-engine/services"
)

const maxRequestBodySize = 1 << 20 // 1 MiB

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		configPath = flag.String("config", "", "Path to a config file (optional)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Match Engine - Hybrid candidate/job matching and recommendations\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                               # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                   # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config ./match.yaml         # Use a config file\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Match Engine v1.0.0\n")
		fmt.Printf("TF-IDF content similarity, collaborative heuristics, hybrid scoring\n")
		return
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		settings.Port = *port
	}

	zapLogger, err := logger.New(settings.LogJSON, settings.Debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	// Snapshot and history providers: Postgres when configured, otherwise
	// the in-memory store (demo mode).
	var (
		snapshots services.SnapshotProvider
		history   services.ApplicationHistoryProvider
		recency   services.RecencyStore
	)
	memStore := store.NewMemoryStore()
	snapshots, history, recency = memStore, memStore, memStore

	if settings.DatabaseURL != "" {
		pool, err := store.NewPostgresPool(ctx, settings.DatabaseURL)
		if err != nil {
			zapLogger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()
		pg := store.NewPostgresStore(pool)
		snapshots, history = pg, pg
		zapLogger.Info("using postgres snapshot store")
	} else {
		zapLogger.Warn("no database_url configured, using in-memory store")
	}

	if settings.RedisURL != "" {
		rdb, err := store.NewRedisClient(ctx, settings.RedisURL)
		if err != nil {
			zapLogger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		recency = store.NewRedisRecencyStore(rdb)
		zapLogger.Info("using redis recency store")
	}

	engine, err := scoring.NewEngine(settings, history, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to build scoring engine", zap.Error(err))
	}

	notifier := recommend.NewLogNotifier(zapLogger)
	service, err := recommend.NewService(settings, snapshots, history, engine, recency, notifier, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to build recommendation service", zap.Error(err))
	}

	manager := tasks.NewManager(settings.MaxTaskWorker, zapLogger)
	manager.Start()
	defer manager.Stop()

	if settings.Notifications.SweepSchedule != "" {
		sweep := scheduler.New(snapshots, service, settings.Notifications.SweepSchedule, zapLogger)
		if err := sweep.Start(ctx); err != nil {
			zapLogger.Fatal("failed to start notification sweep", zap.Error(err))
		}
		defer sweep.Stop()
	}

	// Initialize Gin router
	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodySize))
	router.Use(api.RequestLogMiddleware(zapLogger))

	// Setup API routes
	api.SetupRoutes(router, api.NewAPI(service, engine, snapshots, manager, zapLogger))

	// Start the server
	zapLogger.Info("starting server", zap.String("port", settings.Port))
	if err := router.Run(":" + settings.Port); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}
