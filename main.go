package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mqlstam/vinylplatz2025/internal/config"
	"github.com/mqlstam/vinylplatz2025/internal/handler"
	"github.com/mqlstam/vinylplatz2025/internal/repository/sqlite"
	"github.com/mqlstam/vinylplatz2025/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	authService := service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost)
	genreService := service.NewGenreService(db.Genres())
	vinylService := service.NewVinylService(db.Vinyls(), db.Users(), db.Genres())
	orderService := service.NewOrderService(db.Orders(), db.Vinyls())
	favoriteService := service.NewFavoriteService(db.Favorites(), db.Users(), db.Vinyls())

	if cfg.Seed {
		seedService := service.NewSeedService(db.Users(), db.Genres(), db.Vinyls(), db.Orders(), db.Favorites(), cfg.BcryptCost)
		if err := seedService.Run(context.Background()); err != nil {
			slog.Error("seed database", "error", err)
			os.Exit(1)
		}
	}

	// Allow a handful of login attempts per IP, refilling one every 6 seconds.
	loginLimiter := service.NewLoginLimiter(1.0/6, 5)

	router := handler.NewRouter(handler.Services{
		Auth:         authService,
		Genres:       genreService,
		Vinyls:       vinylService,
		Orders:       orderService,
		Favorites:    favoriteService,
		LoginLimiter: loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
