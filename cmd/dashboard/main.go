// Copyright (c) 2026 dashboarDelta contributors
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

	"github.com/preston16161/dashboarDelta/internal/auth"
	"github.com/preston16161/dashboarDelta/internal/config"
	"github.com/preston16161/dashboarDelta/internal/db"
	"github.com/preston16161/dashboarDelta/internal/geoip"
	"github.com/preston16161/dashboarDelta/internal/handler"
	"github.com/preston16161/dashboarDelta/internal/kv"
	"github.com/preston16161/dashboarDelta/internal/logging"
	"github.com/preston16161/dashboarDelta/internal/media"
	"github.com/preston16161/dashboarDelta/internal/middleware"
	"github.com/preston16161/dashboarDelta/internal/model"
	"github.com/preston16161/dashboarDelta/internal/scheduler"
	"github.com/preston16161/dashboarDelta/internal/session"
	"github.com/preston16161/dashboarDelta/internal/store"
	"github.com/preston16161/dashboarDelta/internal/transfer"
	"github.com/preston16161/dashboarDelta/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	importLegacy := flag.Bool("import-legacy", false, "Import the legacy portal database (DELTA_LEGACY_DSN) and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "dashboarDelta - unit management portal\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DELTA_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DELTA_DB_PATH          SQLite database path (default: ./data/delta.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DELTA_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DELTA_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DELTA_REDIS_URL        Redis URL for the snapshot medium (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DELTA_GEOIP_DB_PATH    GeoLite2-Country.mmdb path for login localization (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DELTA_LEGACY_DSN       MySQL DSN of the old PHP portal (for -import-legacy)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("dashboard %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(*importLegacy); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(importLegacy bool) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	sqlDB, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(sqlDB *sql.DB) {
		if err := sqlDB.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(sqlDB)

	slog.Info("running database migrations")
	if err := db.Migrate(sqlDB); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Snapshot medium: Redis when configured, SQLite otherwise.
	medium, err := kv.New(sqlDB, kv.Config{
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.SnapshotPrefix,
		FallbackToSQLite: true,
	})
	if err != nil {
		return fmt.Errorf("initializing snapshot medium: %w", err)
	}
	defer func() {
		if err := medium.Close(); err != nil {
			slog.Error("error closing snapshot medium", "error", err)
		}
	}()

	ctx := context.Background()
	roles := store.NewRoles(ctx, medium)
	notifications := store.NewNotifications(ctx, medium)
	activity := store.NewActivityLog(ctx, medium)
	comms := store.NewComms(ctx, medium)
	prefs := store.NewPreferences(ctx, medium)
	personnel := store.NewPersonnel(ctx, medium)
	events := store.NewEvents(ctx, medium)
	reports := store.NewReports(sqlDB)

	if importLegacy {
		if cfg.LegacyDSN == "" {
			return errors.New("DELTA_LEGACY_DSN is required for -import-legacy")
		}
		importer := transfer.NewImporter(personnel, reports, logger)
		sum, err := importer.Run(ctx, cfg.LegacyDSN)
		if err != nil {
			return fmt.Errorf("importing legacy database: %w", err)
		}
		slog.Info("legacy import done", "users", sum.Users, "reports", sum.Reports)
		return nil
	}

	// Upgrade logger: WARN and ERROR records also land in the notification
	// center as admin-only warnings.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewNotifierHandler(textHandler, notifications))
	slog.SetDefault(logger)

	slog.Info("starting dashboarDelta", "version", versionInfo.String())

	// GeoIP lookup for audit entry localization (optional)
	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip disabled", "error", err)
		}
	}
	defer func() {
		if err := geo.Close(); err != nil {
			slog.Error("error closing geoip database", "error", err)
		}
	}()

	gate := auth.NewGate(personnel, activity, geo, logger)
	sessionManager := session.New(sqlDB, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	apiRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)
	guard := middleware.NewGuard(roles, notifications)

	processor := media.NewProcessor(cfg.UploadsDir)

	authHandler := handler.NewAuthHandler(gate, sessionManager, loginProtection, logger)
	rolesHandler := handler.NewRolesHandler(roles)
	notificationsHandler := handler.NewNotificationsHandler(notifications)
	activityHandler := handler.NewActivityHandler(activity)
	commsHandler := handler.NewCommsHandler(comms, logger)
	prefsHandler := handler.NewPrefsHandler(prefs)
	usersHandler := handler.NewUsersHandler(personnel, notifications, activity)
	reportsHandler := handler.NewReportsHandler(reports, personnel, notifications, activity, logger)
	eventsHandler := handler.NewEventsHandler(events, notifications)
	mediaHandler := handler.NewMediaHandler(processor, logger)

	backups := scheduler.NewBackups(medium, cfg.BackupDir, logger)
	adminHandler := handler.NewAdminHandler(backups, logger)

	sched := scheduler.New(backups, cfg.BackupCron, geo, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	r.Use(middleware.LoadIdentity(sessionManager, personnel))

	// Uploaded chat attachments
	r.Handle("/chat/*", http.StripPrefix("/", http.FileServer(http.Dir(cfg.UploadsDir))))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiRateLimiter.Middleware())

		r.With(loginProtection.Middleware()).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		// Everything below requires a session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth())

			r.Get("/me", authHandler.Me)

			r.Get("/roles", rolesHandler.List)
			r.Get("/roles/probe", rolesHandler.Probe)
			r.Group(func(r chi.Router) {
				r.Use(guard.RequirePermission(model.PermManageRoles))
				r.Post("/roles", rolesHandler.Create)
				r.Put("/roles/{id}", rolesHandler.Update)
				r.Delete("/roles/{id}", rolesHandler.Delete)
			})

			r.Get("/notifications", notificationsHandler.List)
			r.Get("/notifications/unread-count", notificationsHandler.UnreadCount)
			r.Post("/notifications/{id}/read", notificationsHandler.MarkRead)
			r.Delete("/notifications/{id}", notificationsHandler.Remove)
			r.Delete("/notifications", notificationsHandler.Clear)

			r.Get("/activity", activityHandler.List)
			r.With(guard.RequireAdmin()).Delete("/activity", activityHandler.Clear)

			r.Post("/messages", commsHandler.SendMessage)
			r.Get("/messages", commsHandler.Channel)
			r.Get("/messages/unread-count", commsHandler.UnreadMessages)
			r.Post("/messages/{id}/read", commsHandler.MarkMessageRead)

			r.Get("/presence", commsHandler.Presence)
			r.Post("/presence", commsHandler.Join)
			r.Delete("/presence", commsHandler.Leave)

			r.Get("/announcements", commsHandler.Announcements)
			r.Group(func(r chi.Router) {
				r.Use(guard.RequireAdmin())
				r.Post("/announcements", commsHandler.CreateAnnouncement)
				r.Delete("/announcements/{id}", commsHandler.DeleteAnnouncement)
				r.Post("/announcements/{id}/pin", commsHandler.TogglePin)
			})

			r.Get("/preferences", prefsHandler.Get)
			r.Put("/preferences", prefsHandler.Set)

			r.Get("/users", usersHandler.List)
			r.Get("/users/{id}", usersHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(guard.RequirePermission(model.PermManageUsers))
				r.Post("/users", usersHandler.Create)
				r.Put("/users/{id}", usersHandler.Update)
				r.Post("/users/{id}/toggle-status", usersHandler.ToggleStatus)
				r.Delete("/users/{id}", usersHandler.Delete)
			})

			r.Get("/reports", reportsHandler.List)
			r.Get("/reports/{id}", reportsHandler.Get)
			r.Post("/reports", reportsHandler.Create)
			r.With(guard.RequirePermission(model.PermDeleteReport)).Delete("/reports/{id}", reportsHandler.Delete)

			r.Get("/events", eventsHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(guard.RequirePermission(model.PermManageEvents))
				r.Post("/events", eventsHandler.Create)
				r.Delete("/events/{id}", eventsHandler.Delete)
			})

			r.Post("/media", mediaHandler.Upload)
			r.Delete("/media/{id}", mediaHandler.Delete)

			r.With(guard.RequireAdmin()).Post("/admin/backup", adminHandler.Backup)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
