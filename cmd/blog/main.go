// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/blog-go/internal/auth"
	"github.com/olegiv/blog-go/internal/config"
	"github.com/olegiv/blog-go/internal/handler"
	"github.com/olegiv/blog-go/internal/handler/api"
	"github.com/olegiv/blog-go/internal/logging"
	"github.com/olegiv/blog-go/internal/middleware"
	"github.com/olegiv/blog-go/internal/store"
	"github.com/olegiv/blog-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "blog - personal blog/portfolio backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_JWT_SECRET        Token signing secret (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_ADMIN_PASSWORD    Admin credential, preferably an argon2id hash (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_DB_PATH           SQLite database path (default: ./data/blog.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_SERVER_PORT       Server port (default: 3001)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_CORS_ORIGINS      Comma-separated allowed origins for the SPA (default: *)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_DO_SEED           Seed demo content on startup (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("blog %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	queries := store.New(db)

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, queries)))
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed demo content if enabled
	ctx := context.Background()
	if err := store.Seed(ctx, queries, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Token issuer: verifies the admin credential and signs bearer tokens
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AdminPassword)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.CORS(cfg.CORSOrigins))
	slog.Info("CORS middleware initialized", "origins", cfg.CORSOrigins)

	// Rate limiters: a global API limit plus a tighter one on the auth
	// endpoint (credential guessing defense)
	apiRateLimiter := middleware.NewGlobalRateLimiter(100, 200)
	authRateLimiter := middleware.NewGlobalRateLimiter(1, 5)
	slog.Info("rate limiters initialized", "api", "100 req/s", "auth", "1 req/s")

	apiHandler := api.NewHandler(db, issuer)
	adminOnly := middleware.RequireAdmin(issuer)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiRateLimiter.Middleware())

		r.Get(handler.RouteHealth, apiHandler.Health)

		// Credential verification (rate limited per IP)
		r.With(authRateLimiter.Middleware()).Post(handler.RouteAuthVerify, apiHandler.VerifyCredential)

		// Posts: public reads, admin mutations
		r.Get(handler.RoutePosts, apiHandler.ListPosts)
		r.Get(handler.RoutePostsID, apiHandler.GetPost)
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post(handler.RoutePosts, apiHandler.CreatePost)
			r.Put(handler.RoutePostsID, apiHandler.UpdatePost)
			r.Delete(handler.RoutePostsID, apiHandler.DeletePost)
		})

		// Friend links: public listing and application, admin moderation
		r.Get(handler.RouteFriends, apiHandler.ListFriends)
		r.Post(handler.RouteFriendsApply, apiHandler.ApplyFriend)
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get(handler.RouteFriendsPending, apiHandler.ListPendingFriends)
			r.Post(handler.RouteFriends, apiHandler.CreateFriend)
			r.Put(handler.RouteFriendsApprove, apiHandler.ApproveFriend)
			r.Delete(handler.RouteFriendsID, apiHandler.DeleteFriend)
		})

		// Message board: public append, admin delete
		r.Get(handler.RouteMessages, apiHandler.ListMessages)
		r.Post(handler.RouteMessages, apiHandler.CreateMessage)
		r.With(adminOnly).Delete(handler.RouteMessagesID, apiHandler.DeleteMessage)

		// Projects and songs: public reads, admin creation
		r.Get(handler.RouteProjects, apiHandler.ListProjects)
		r.With(adminOnly).Post(handler.RouteProjects, apiHandler.CreateProject)
		r.Get(handler.RouteSongs, apiHandler.ListSongs)
		r.With(adminOnly).Post(handler.RouteSongs, apiHandler.CreateSong)
	})
	slog.Info("API mounted at /api", "version", versionInfo.Version)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Mitigates slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
