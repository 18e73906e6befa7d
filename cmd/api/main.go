package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/moremori/moremori-api/internal/cache"
	"github.com/moremori/moremori-api/internal/config"
	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/handler"
	"github.com/moremori/moremori-api/internal/middleware"
	"github.com/moremori/moremori-api/internal/repository"
	"github.com/moremori/moremori-api/internal/service"
	"github.com/moremori/moremori-api/internal/worker"
)

// main is the application entrypoint for the MoreMori site API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting moremori api")

	// 3. Connect database (restricted read role + privileged write role)
	db, err := database.ConnectPair(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations on the privileged handle
	if err := runMigrations(db.Write.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis when configured
	var listCache *cache.ListCache
	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		listCache = cache.NewListCache(redisClient, cfg.Cache.TTL)
		log.Info().Dur("ttl", cfg.Cache.TTL).Msg("redis connected, list cache enabled")
	} else {
		log.Info().Msg("redis not configured, list cache disabled")
	}

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	allergyRepo := repository.NewAllergyRepository(db)
	contentRepo := repository.NewContentRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	// 5. Initialize services and the resource registry
	registry := service.NewRegistry()
	registry.Register("products", service.NewProductService(productRepo))
	registry.Register("prices", service.NewPriceService(priceRepo))
	registry.Register("calendar", service.NewCalendarService(calendarRepo))
	registry.Register("banners", service.NewBannerService(bannerRepo))
	registry.Register("faq", service.NewFAQService(faqRepo))
	registry.Register("allergies", service.NewAllergyService(allergyRepo))
	registry.Register("content", service.NewContentService(contentRepo))
	registry.Register("settings", service.NewSettingService(settingRepo))
	registry.Register("contact", service.NewContactService(contactRepo))
	registry.Register("newsletter", service.NewNewsletterService(newsletterRepo))

	// 5a. Initialize storage + upload when configured
	var uploadSvc *service.UploadService
	if cfg.StorageEnabled() {
		storageSvc, err := service.NewStorageService(&cfg.Storage)
		if err != nil {
			log.Error().Err(err).Msg("storage service initialization failed")
			fmt.Fprintf(os.Stderr, "storage service initialization failed: %v\n", err)
			os.Exit(1)
		}
		uploadSvc = service.NewUploadService(storageSvc, productRepo)
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("image upload enabled")
	} else {
		log.Warn().Msg("storage not configured, image upload disabled")
	}

	// 6. Initialize handlers
	apiHandler := handler.NewAPIHandler(registry, uploadSvc, listCache)
	healthHandler := handler.NewHealthHandler(db)

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	router.Any("/api", apiHandler.Handle)
	router.GET("/health", healthHandler.GetHealth)

	// 8. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 9. Start calendar sweep worker
	if cfg.Worker.CalendarSweepInterval > 0 {
		if listCache != nil {
			go worker.NewCalendarWorker(calendarRepo, listCache, cfg.Worker.CalendarSweepInterval).Start(ctx)
		} else {
			go worker.NewCalendarWorker(calendarRepo, nil, cfg.Worker.CalendarSweepInterval).Start(ctx)
		}
	}

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Cancel context to stop workers
	cancel()

	// 13. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
