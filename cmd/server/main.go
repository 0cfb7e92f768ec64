package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"songsync/internal/cache"
	"songsync/internal/config"
	"songsync/internal/handlers"
	"songsync/internal/models"
	"songsync/internal/repositories"
	"songsync/internal/services"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := models.NewDatabase(ctx, cfg.MongodbURL, "songsync")
	cancel()
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.CreateIndexes(ctx); err != nil {
		slog.Error("Failed to create indexes", "error", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	valkeyCache, err := cache.NewValkeyCache(cfg.ValkeyURL)
	if err != nil {
		slog.Error("Failed to connect to Valkey", "error", err)
		os.Exit(1)
	}

	// The validation cache lives for the whole process and never evicts;
	// entries are tiny and idempotent.
	validationCache := cache.NewMemoryCache()

	catalog := services.NewCachedCatalogService(services.NewSpotifyEmbedService(), validationCache)
	validator := services.NewSongListValidator(catalog)
	discord := services.NewDiscordService(
		cfg.DiscordClientID,
		cfg.DiscordClientSecret,
		cfg.DiscordRedirectURL,
		cfg.StateSecret,
	)

	saves := repositories.NewCachedSaveRepository(repositories.NewMongoSaveRepository(db), valkeyCache)

	router := handlers.NewRouter(
		handlers.NewSaveHandler(saves),
		handlers.NewAuthHandler(discord),
		validator,
		discord,
		saves,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}

	valkeyCache.Close()
	validationCache.Close()
	if err := db.Close(ctx); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}
