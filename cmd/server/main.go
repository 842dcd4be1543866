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

	httphandler "github.com/propview/estate-service/internal/adapter/http/handler"
	"github.com/propview/estate-service/internal/adapter/http/router"
	natsadapter "github.com/propview/estate-service/internal/adapter/messaging/nats"
	"github.com/propview/estate-service/internal/adapter/repository/cache"
	"github.com/propview/estate-service/internal/adapter/repository/mongodb"
	redisrepo "github.com/propview/estate-service/internal/adapter/repository/redis"
	"github.com/propview/estate-service/internal/adapter/storage/s3"
	"github.com/propview/estate-service/internal/config"
	"github.com/propview/estate-service/internal/listing/usecase"
	"github.com/propview/estate-service/internal/mailer"
	"github.com/propview/estate-service/internal/platform/logger"
	"github.com/propview/estate-service/internal/platform/metrics"
	"github.com/propview/estate-service/internal/platform/tracer"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const serviceName = "estate_service"

func main() {
	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracer.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
		if err != nil {
			appLogger.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				appLogger.Error("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	// MongoDB is the primary store for listings and users.
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := mongoClient.Ping(connectCtx, readpref.Primary()); err != nil {
		appLogger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("MongoDB disconnect failed", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDB)
	appLogger.Info("connected to MongoDB", zap.String("database", cfg.MongoDB))

	// One Redis client serves both draft sessions and the listing cache.
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	if err := redisClient.Ping(connectCtx).Err(); err != nil {
		appLogger.Fatal("failed to ping Redis", zap.String("address", cfg.RedisAddress), zap.Error(err))
	}
	defer redisClient.Close()

	publisher, err := natsadapter.NewPublisher(cfg.NATSURL)
	if err != nil {
		appLogger.Fatal("failed to connect to NATS", zap.String("url", cfg.NATSURL), zap.Error(err))
	}
	defer publisher.Close()

	storage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Email:    cfg.SMTPEmail,
		Password: cfg.SMTPPassword,
	})

	listingRepo := mongodb.NewListingRepository(db, appLogger)
	userRepo := mongodb.NewUserRepository(db, appLogger)
	draftStore := redisrepo.NewDraftStore(redisClient)
	listingCache := cache.NewListingCache(redisClient)

	listingUC := usecase.NewListingUsecase(listingRepo, listingCache, publisher, appLogger)
	draftUC := usecase.NewDraftUsecase(draftStore, listingRepo, userRepo, publisher, smtpMailer, appLogger)
	favoriteUC := usecase.NewFavoriteUsecase(userRepo, listingRepo, appLogger)
	userUC := usecase.NewUserUsecase(userRepo, appLogger)
	imageUC := usecase.NewImageUsecase(storage, listingRepo)

	mm := metrics.NewMetricsManager(serviceName)
	go func() {
		if err := metrics.StartMetricsServer(cfg.MetricsPort, appLogger, mm.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	handlers := router.Handlers{
		Listings:   httphandler.NewListingHandler(listingUC, mm, appLogger),
		Drafts:     httphandler.NewDraftHandler(draftUC, mm, appLogger),
		Favourites: httphandler.NewFavoriteHandler(favoriteUC, mm, appLogger),
		Users:      httphandler.NewUserHandler(userUC, appLogger),
		Images:     httphandler.NewImageHandler(imageUC, appLogger),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router.New(handlers, cfg.JWTSecret, appLogger, mm),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server starting", zap.Int("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
