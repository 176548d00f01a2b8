package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asanaflow/yoga-app/internal/api"
	"asanaflow/yoga-app/internal/catalog"
	"asanaflow/yoga-app/internal/config"
	"asanaflow/yoga-app/internal/generator"
	"asanaflow/yoga-app/internal/repository"
	filerepo "asanaflow/yoga-app/internal/repository/file"
	mongorepo "asanaflow/yoga-app/internal/repository/mongo"
	"asanaflow/yoga-app/internal/service"

	"github.com/gin-gonic/gin"
)

// @title Yoga Session API
// @version 1.0
// @description API for generating, storing, and playing back personalized yoga sessions.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Yoga Session Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Pose Catalog ---
	// Catalog load failure is recovered by substituting an empty catalog;
	// generation then fails per request until a restart fixes the source.
	cat := loadCatalog(cfg)
	log.Printf("Pose catalog ready (%d poses).", cat.Len())

	// --- Session Store ---
	sessionRepo, cleanup, err := buildSessionRepository(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize session store: %v", err)
	}
	defer cleanup()
	log.Printf("Session store initialized (driver: %s).", cfg.Store.Driver)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	gen := generator.New(nil)
	sessionService := service.NewSessionService(cat, gen, sessionRepo)
	authService := service.NewAuthService(cfg.Auth.PasswordHash, cfg.JWT.Secret, cfg.JWT.Expiration)
	playbackManager := service.NewPlaybackManager(sessionRepo)
	defer playbackManager.Shutdown()

	if !authService.Enabled() {
		log.Println("WARN: No auth.password_hash configured; API is running without authentication.")
	}

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, sessionService, playbackManager, cat)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// loadCatalog fetches the catalog once. Any failure degrades to an empty
// catalog with a logged diagnostic; it is never surfaced as a startup error.
func loadCatalog(cfg config.Config) *catalog.Catalog {
	src, err := catalog.NewSource(cfg.Catalog, cfg.S3)
	if err != nil {
		log.Printf("ERROR: Invalid catalog source %q: %v", cfg.Catalog.URL, err)
		return catalog.Empty()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.Timeout)
	defer cancel()

	cat, err := catalog.Load(ctx, src)
	if err != nil {
		log.Printf("ERROR: Failed to load pose catalog from %q: %v", cfg.Catalog.URL, err)
		return catalog.Empty()
	}
	return cat
}

// buildSessionRepository selects the store driver. The returned cleanup
// closes any underlying connection.
func buildSessionRepository(cfg config.Config) (repository.SessionRepository, func(), error) {
	switch cfg.Store.Driver {
	case "mongo":
		dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, nil, err
		}
		appDB := dbClient.Database(cfg.Database.Name)

		// Run index creation in the background; it is best effort.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			mongorepo.EnsureSessionIndexes(ctx, appDB.Collection("sessions"))
		}()

		cleanup := func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongorepo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}
		return mongorepo.NewMongoSessionRepository(appDB), cleanup, nil
	case "file":
		return filerepo.NewSessionRepository(cfg.Store.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
