// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/lingvoclass/backoffice/internal/auth"
	"github.com/lingvoclass/backoffice/internal/config"
	"github.com/lingvoclass/backoffice/internal/email"
	"github.com/lingvoclass/backoffice/internal/handler"
	"github.com/lingvoclass/backoffice/internal/metrics"
	"github.com/lingvoclass/backoffice/internal/middleware"
	"github.com/lingvoclass/backoffice/internal/model"
	"github.com/lingvoclass/backoffice/internal/repository"
	"github.com/lingvoclass/backoffice/internal/service"
	"github.com/lingvoclass/backoffice/migrations"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, relying on environment")
	}
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service
	emailService, err := email.NewEmailService(cfg, email.ProviderSendgrid)
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}

	// Initialize services
	reconciliationService := service.NewReconciliationService(
		teacherRepo,
		profileRepo,
		invitationRepo,
		roleRepo,
		passwordHasher,
		emailService,
		cfg,
	)
	permissionService := service.NewPermissionService(roleRepo, profileRepo)
	repairService := service.NewFamilyRepairService(familyRepo, service.RepairConfig{
		MaxGuardianEdges: cfg.Repair.MaxGuardianEdges,
		GroupNamePrefix:  cfg.Repair.GroupNamePrefix,
	})
	libraryService := service.NewLibraryService(libraryRepo)
	authnService := service.NewAuthnService(profileRepo, roleRepo, passwordHasher, tokenManager)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authnService)
	teacherHandler := handler.NewTeacherHandler(reconciliationService, profileRepo)
	roleHandler := handler.NewRoleHandler(permissionService)
	familyHandler := handler.NewFamilyHandler(repairService, familyRepo, profileRepo)
	libraryHandler := handler.NewLibraryHandler(libraryService, profileRepo)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus endpoint
	r.Handle("/metrics", metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))

			r.Post("/auth/login", authHandler.LoginHandler)
			r.Post("/invitations/{token}/complete", teacherHandler.CompleteInvitation)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenManager))

			r.Get("/sections", roleHandler.Sections)

			r.Route("/teachers", func(r chi.Router) {
				r.With(middleware.RequirePermission(permissionService, model.VerbRead, model.ResourceTeachers)).
					Get("/", teacherHandler.ListTeachers)
				r.With(middleware.RequirePermission(permissionService, model.VerbCreate, model.ResourceTeachers)).
					Post("/", teacherHandler.CreateTeacher)
				r.With(middleware.RequirePermission(permissionService, model.VerbRead, model.ResourceTeachers)).
					Get("/{id}/match", teacherHandler.SuggestMatch)
				r.With(middleware.RequirePermission(permissionService, model.VerbUpdate, model.ResourceTeachers)).
					Post("/{id}/link", teacherHandler.ApplyLink)
				r.With(middleware.RequirePermission(permissionService, model.VerbUpdate, model.ResourceTeachers)).
					Post("/bulk-link", teacherHandler.BulkLink)
				r.With(middleware.RequirePermission(permissionService, model.VerbDelete, model.ResourceTeachers)).
					Post("/{id}/deactivate", teacherHandler.DeactivateTeacher)
			})

			r.Route("/invitations", func(r chi.Router) {
				r.Use(middleware.RequirePermission(permissionService, model.VerbUpdate, model.ResourceTeachers))

				r.Get("/", teacherHandler.ListInvitations)
				r.Delete("/{id}", teacherHandler.RevokeInvitation)
			})

			r.Route("/profiles/{id}", func(r chi.Router) {
				r.With(middleware.RequirePermission(permissionService, model.VerbRead, model.ResourceRoles)).
					Get("/permissions", roleHandler.Permissions)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(permissionService, model.VerbUpdate, model.ResourceRoles))

					r.Post("/roles", roleHandler.AssignRole)
					r.Delete("/roles", roleHandler.RevokeRole)
					r.Post("/permissions", roleHandler.SetOverride)
					r.Delete("/permissions", roleHandler.ClearOverride)
				})
			})

			r.Route("/families", func(r chi.Router) {
				r.With(middleware.RequirePermission(permissionService, model.VerbRead, model.ResourceFamilies)).
					Get("/issues", familyHandler.DetectIssues)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(permissionService, model.VerbUpdate, model.ResourceFamilies))

					r.Post("/groups/{id}/deduplicate", familyHandler.DeduplicateGroup)
					r.Post("/deduplicate", familyHandler.DeduplicateAll)
					r.Post("/groups/{id}/split", familyHandler.SplitGroup)
					r.Post("/reorganize", familyHandler.ReorganizeAll)
					r.Post("/restore-guardians", familyHandler.RestoreGuardianLinks)
				})
			})

			r.With(middleware.RequirePermission(permissionService, model.VerbRead, model.ResourceLibrary)).
				Get("/library/tree", libraryHandler.FolderTree)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(sqlDB, ".")
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Write([]byte("{\"error\":\"error encountered\"}"))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
