package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	grpcapi "members-lounge-backend/internal/api/grpc"
	httpapi "members-lounge-backend/internal/api/http"
	"members-lounge-backend/internal/cache"
	"members-lounge-backend/internal/config"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/repository/postgres"
	"members-lounge-backend/internal/security"
	"members-lounge-backend/internal/service"
	"members-lounge-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Members Lounge Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "health_address", cfg.GetHealthAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	// Membership cache
	membershipCache := cache.NewNoopMembershipCache()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, membership reads will hit the database", "addr", cfg.Redis.Addr, "error", err)
		}
		membershipCache = cache.NewRedisMembershipCache(rdb, time.Duration(cfg.Cache.MembershipTTLSeconds)*time.Second)
		logger.Info("Membership cache enabled", "addr", cfg.Redis.Addr)
	}

	// Delivery channels
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	pushSvc := service.NewNoopPushService()
	if cfg.Push.Enabled {
		pushSvc, err = service.NewPushService(ctx, cfg.Push.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize push notifications: %v", err)
		}
		logger.Info("Push notifications enabled")
	}
	billing := service.NewBillingClient(cfg.Billing.CancelURL, cfg.Billing.APIKey, time.Duration(cfg.Billing.TimeoutSeconds)*time.Second)

	mediaStore, err := storage.NewLocalStore(storage.Config{Dir: cfg.Storage.Dir, BaseURL: cfg.Storage.BaseURL})
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	logger.Info("Media storage ready", "dir", cfg.Storage.Dir)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())

	// Initialize Services
	notifier := service.NewNotifier(store.NotificationRepository, store.ProfileRepository, emailSvc, pushSvc, cfg.Email.SiteURL)
	membershipSvc := service.NewMembershipService(store.MembershipRepository, membershipCache, billing)
	svcs := httpapi.Services{
		Auth:       service.NewAuthService(store.ProfileRepository, tokenManager),
		Profile:    service.NewProfileService(store.ProfileRepository, mediaStore),
		Membership: membershipSvc,
		Matching: service.NewMatchingService(
			store.MatchingRequestRepository,
			store.ProfileRepository,
			notifier,
			time.Duration(cfg.Matching.PendingTTLDays)*24*time.Hour,
		),
		VisitPlan:    service.NewVisitPlanService(store.VisitPlanRepository, membershipSvc, cfg.VisitPlans.MaxRangeDays),
		Notification: service.NewNotificationService(store.NotificationRepository),

		Avatar:         service.NewAvatarService(store.ProfileRepository, mediaStore, cfg.Storage.MaxAvatarBytes),
		Media:          mediaStore,
		MaxAvatarBytes: cfg.Storage.MaxAvatarBytes,
	}

	// Health server
	if addr := cfg.GetHealthAddress(); addr != "" {
		health := grpcapi.NewHealthServer(db, 10*time.Second)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			log.Fatalf("Failed to listen on health address %s: %v", addr, err)
		}
		go health.Watch(ctx)
		go func() {
			logger.Info("gRPC health server listening", "address", addr)
			if err := health.GRPCServer().Serve(lis); err != nil {
				logger.Error("gRPC health server error", "error", err)
			}
		}()
		defer health.GRPCServer().GracefulStop()
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      httpapi.NewRouter(svcs, tokenManager),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
	}
	fmt.Println("Members Lounge Backend stopped")
}
