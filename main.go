package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"rentdesk/internal/api"
	"rentdesk/internal/cache"
	"rentdesk/internal/config"
	"rentdesk/internal/db"
	"rentdesk/internal/kv"
	"rentdesk/internal/notify"
	"rentdesk/internal/services"
	"rentdesk/internal/store"
	"rentdesk/internal/tasks"
)

var runMode = flag.String("m", "all", "Run mode: 'api', 'bg' (background worker + scheduler), 'all' (default)")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Redis backs the redis storage backend, the notification feed and the
	// background task queue. Only the api mode on a non-redis backend can
	// run without it.
	needRedis := cfg.StorageBackend == "redis" || cfg.RunMode == "bg" || cfg.RunMode == "all"

	var redisClient *redis.Client
	if needRedis {
		redisClient, err = cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer func() {
			if err := cache.DisconnectRedis(redisClient); err != nil {
				log.Printf("Error disconnecting from Redis: %v", err)
			}
		}()
	}

	// Initialize the storage backend
	var kvStore kv.Store
	switch cfg.StorageBackend {
	case "memory":
		kvStore = kv.NewMemory()
	case "file":
		kvStore, err = kv.NewFile(cfg.StorageDir)
		if err != nil {
			log.Fatalf("Failed to initialize file storage in '%s': %v", cfg.StorageDir, err)
		}
	case "redis":
		kvStore = kv.NewRedis(redisClient, "rentdesk")
	case "mongo":
		mongoClient, mongoDb, err := db.ConnectDB(cfg.MongoURI, cfg.MongoDbName)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer func() {
			if err := db.DisconnectDB(mongoClient); err != nil {
				log.Printf("Error disconnecting from MongoDB: %v", err)
			}
		}()
		kvStore = kv.NewMongo(mongoDb)
	default:
		log.Fatalf("Invalid storage backend: %s", cfg.StorageBackend)
	}
	stores := store.NewStores(kvStore)

	// Setup Composite Notification Sink
	// The composite sink always includes the log sink.
	compositeSink := notify.NewCompositeSink(notify.NewLogSink())

	// Optionally add the file sink if NOTIFY_LOG_PATH is set
	if cfg.NotifyLogPath != "" {
		fileSink, err := notify.NewFileSink(cfg.NotifyLogPath)
		if err != nil {
			log.Printf("WARNING: Failed to initialize file notification sink (NOTIFY_LOG_PATH='%s'): %v. Proceeding without file logging.", cfg.NotifyLogPath, err)
		} else {
			compositeSink.AddSink(fileSink)
			fmt.Printf("File notification sink enabled at '%s'.\n", cfg.NotifyLogPath)
		}
	}

	// Optionally publish notifications to Redis for external consumers
	if redisClient != nil {
		compositeSink.AddSink(notify.NewRedisSink(redisClient, ""))
	}

	// The sink passed to services will be the composite sink.
	sink := notify.Sink(compositeSink)

	// Seed the default admin account on an empty user store
	userService := services.NewUserService(stores, cfg)
	if err := userService.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatalf("Failed to ensure default admin user: %v", err)
	}

	// WaitGroup for managing goroutines
	var wg sync.WaitGroup

	// --- Mode-specific servers ---
	var mainApiSrv *http.Server
	var backgroundTaskSrv *asynq.Server
	var scheduler *asynq.Scheduler

	fmt.Printf("Starting application in '%s' mode...\n", cfg.RunMode)

	apiMode := func() {
		fmt.Println("Starting main API server...")
		// Router initializes its own needed services
		mainApiRouter := api.SetupRouter(cfg, stores, sink)
		mainApiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: mainApiRouter,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Printf("Main API listening on :%s\n", cfg.ApiPort)
			if err := mainApiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Main API ListenAndServe error: %v", err)
			}
			fmt.Println("Main API server stopped.")
		}()
	}

	bgMode := func() {
		fmt.Println("Starting background worker...")
		propertyService := services.NewPropertyService(stores, sink)
		leaseService := services.NewLeaseService(stores, propertyService, sink)
		taskProcessor := tasks.NewTaskProcessor(cfg, leaseService)

		srv, mux := tasks.SetupServer(redisClient, taskProcessor)
		backgroundTaskSrv = srv
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Println("Background task server starting...")
			if err := backgroundTaskSrv.Run(mux); err != nil {
				log.Fatalf("Background task server error: %v", err)
			}
			fmt.Println("Background task server stopped.")
		}()

		scheduler = tasks.SetupScheduler(redisClient, cfg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Println("Task scheduler starting...")
			if err := scheduler.Run(); err != nil {
				log.Fatalf("Task scheduler error: %v", err)
			}
			fmt.Println("Task scheduler stopped.")
		}()
	}

	switch cfg.RunMode {
	case "api":
		apiMode()
	case "bg":
		bgMode()
	case "all":
		apiMode()
		bgMode()
	default:
		log.Fatalf("Invalid run mode specified in config: %s.", cfg.RunMode)
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)

	// Create context with timeout for shutdown
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if mainApiSrv != nil {
		fmt.Println("Shutting down Main API server...")
		if err := mainApiSrv.Shutdown(ctxShutdown); err != nil {
			log.Printf("Main API server shutdown error: %v", err)
		}
	}

	if scheduler != nil {
		fmt.Println("Shutting down task scheduler...")
		scheduler.Shutdown()
	}
	if backgroundTaskSrv != nil {
		fmt.Println("Shutting down Background Task server...")
		backgroundTaskSrv.Shutdown()
	}

	// Wait for all server goroutines to finish
	fmt.Println("Waiting for servers to stop...")
	wg.Wait()

	fmt.Println("Server gracefully stopped")
}
