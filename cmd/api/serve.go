package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"go-cv-backend/config"
	v1 "go-cv-backend/internal/delivery/http/v1"
	"go-cv-backend/internal/repository/postgres"
	"go-cv-backend/internal/usecase"
	"go-cv-backend/migrations"
	"go-cv-backend/pkg/auth"
	"go-cv-backend/pkg/database"
	"go-cv-backend/pkg/email"
	"go-cv-backend/pkg/logger"
	"go-cv-backend/pkg/redis"
	"go-cv-backend/pkg/security"
	"go-cv-backend/pkg/security/antivirus"
	"go-cv-backend/pkg/storage"
)

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cobraflags.RegisterMap(serveCmd, serverFlags)
	return serveCmd
}

// loadConfig reads the environment and applies the command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if port := serverFlags[portFlag].GetString(); port != "" {
		cfg.Port = port
	}
	if dbURL := serverFlags[databaseURLFlag].GetString(); dbURL != "" {
		cfg.DBUrl = dbURL
	}
	logger.Init(cfg.LogLevel)
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting cv backend", "port", cfg.Port)

	if cfg.MigrateOnStart {
		if err := database.NewMigrator(migrations.FS, cfg.DBUrl, database.WithLogger(logger.Log)).Up(); err != nil {
			return err
		}
	}

	// 1. Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolConfig{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer dbPool.Close()

	// 2. Redis (optional)
	var redisPing usecase.Pinger
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	} else {
		redisPing = redis.HealthCheck
		defer redis.Close()
	}

	// 3. Security
	secLog := security.NewSecurityLogger("cv-backend", cfg.GinMode)
	secLog.SetPersistFunc(security.NewSecurityEventRepository(dbPool).PersistEvent)
	security.SetDefaultLogger(secLog)
	defer secLog.Sync()

	tracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		TrackIP:       true,
	}, redis.Client, secLog)
	uploads := security.NewActionLimiter("image-upload", 20, time.Hour, redis.Client)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// 4. Outbound services
	mailer := email.NewEmailService(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - activation and CV mails will fail")
	}
	store, err := storage.New(ctx, storage.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}
	var storePing usecase.Pinger
	if store.Enabled() {
		storePing = store.Ping
	} else {
		logger.Log.Warn("Object storage not configured - image upload and CV archiving disabled")
	}

	var scanner antivirus.Scanner = antivirus.NoOp{}
	var scannerPing usecase.Pinger
	if cfg.ClamAVAddress != "" {
		clam := antivirus.NewClamAV(cfg.ClamAVAddress, 30*time.Second)
		scanner, scannerPing = clam, clam.Ping
	}

	// 5. Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	taxonomyRepo := postgres.NewTaxonomyRepository(dbPool)
	posteRepo := postgres.NewPosteRepository(dbPool)
	collectionRepo := postgres.NewCollectionRepository(dbPool)
	filterRepo := postgres.NewSavedFilterRepository(dbPool)

	// 6. Usecases
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         usecase.NewAuthUsecase(userRepo, mailer, tokens, tracker, secLog, cfg.FrontendURL),
		ProfileUC:      usecase.NewProfileUsecase(profileRepo, userRepo, store, uploads, usecase.WithImageScanner(scanner)),
		TaxonomyUC:     usecase.NewTaxonomyUsecase(taxonomyRepo),
		PosteUC:        usecase.NewPosteUsecase(posteRepo),
		CollectionUC:   usecase.NewCollectionUsecase(collectionRepo),
		FilterUC:       usecase.NewFilterUsecase(filterRepo, profileRepo),
		NotificationUC: usecase.NewNotificationUsecase(profileRepo, mailer, store),
		Health: usecase.NewHealthUsecase(map[string]usecase.Pinger{
			"postgres": dbPool.Ping,
			"redis":    redisPing,
			"storage":  storePing,
			"clamav":   scannerPing,
		}),
		Tokens:      tokens,
		SecurityLog: secLog,
		Config:      cfg,
	})

	// 7. Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
