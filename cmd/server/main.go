// @title Building Risk Assessment API
// @version 1.0
// @description Conditional questionnaires per building type, answer-time scoring, per-topic progress and risk reports

// @contact.name Risk Assessment Support
// @contact.email support@riskassess.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

// Package main is the entry point for the risk assessment API server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/auth"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/cache"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/config"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/database"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/events"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/handlers"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/logger"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/metrics"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/middleware"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/repository"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/services"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/tracing"

	// Swagger docs
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MMARAGAO/RiskAssessment-sub000/docs"
)

// Build-time variables (set via ldflags)
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const serviceName = "riskassess-api"

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	_ = zlog.Sync()
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(serviceName, Version, cfg.JaegerEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			zlog.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	dbCfg := database.DefaultConfig()
	dbCfg.URI = cfg.DatabaseURI
	dbCfg.Database = cfg.DatabaseName

	dbClient, err := database.NewClient(dbCfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := dbClient.Close(context.Background()); closeErr != nil {
			zlog.Warn("error closing database connection", zap.Error(closeErr))
		}
	}()

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		PublicKeyPath: cfg.JWTPublicKeyPath,
		Issuer:        cfg.JWTIssuer,
	})
	if err != nil {
		return err
	}

	zlog.Info("creating database indexes")
	if indexErr := dbClient.EnsureIndexes(ctx, zlog); indexErr != nil {
		zlog.Warn("failed to create indexes", zap.Error(indexErr))
	}

	if cfg.SeedOnStartup {
		if seedErr := dbClient.SeedData(ctx, zlog); seedErr != nil {
			zlog.Warn("failed to seed data", zap.Error(seedErr))
		}
	}

	healthChecks := []handlers.DependencyCheck{
		{Name: "mongodb", Critical: true, Check: dbClient.HealthCheck},
	}

	// #IMPLEMENTATION_DECISION: Redis and RabbitMQ are optional; without them evaluation is uncached and events are dropped
	evalCache := cache.NewNopEvaluationCache()
	if cfg.CacheEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = redisClient.Close() }()

		evalCache = cache.NewRedisEvaluationCache(redisClient, cfg.CacheTTL)
		healthChecks = append(healthChecks, handlers.DependencyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		zlog.Info("evaluation cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	publisher := events.NewNopPublisher()
	if cfg.EventsEnabled() {
		amqpPublisher, pubErr := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, zlog)
		if pubErr != nil {
			zlog.Warn("event publishing disabled", zap.Error(pubErr))
		} else {
			publisher = amqpPublisher
			zlog.Info("event publishing enabled", zap.String("exchange", cfg.AMQPExchange))
		}
	}
	defer publisher.Close()

	m := metrics.New()

	// Repositories
	topicRepo := repository.NewTopicRepository(dbClient)
	questionRepo := repository.NewQuestionRepository(dbClient)
	assessmentRepo := repository.NewAssessmentRepository(dbClient)

	// Services
	questionnaireService := services.NewQuestionnaireService(topicRepo, questionRepo)
	assessmentService := services.NewAssessmentService(
		assessmentRepo,
		questionnaireService,
		evalCache,
		publisher,
		m,
		zlog,
	)

	// Handlers
	healthHandler := handlers.NewHealthHandler(Version, healthChecks...)
	topicHandler := handlers.NewTopicHandler(questionnaireService)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)

	router := gin.New()

	router.Use(middleware.Recovery(zlog))
	router.Use(middleware.RequestID())
	router.Use(tracing.GinMiddleware())
	router.Use(middleware.Logger(zlog))
	router.Use(m.Middleware())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecureHeaders())

	// Health and metrics stay outside the rate limit
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", m.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	apiV1 := router.Group("/api/v1", rateLimiter.RateLimit())

	authMiddleware := middleware.AuthMiddleware(jwtService)
	topicHandler.RegisterRoutes(apiV1, authMiddleware)
	assessmentHandler.RegisterRoutes(apiV1, authMiddleware)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("starting risk assessment API",
			zap.String("version", Version),
			zap.String("build_time", BuildTime),
			zap.String("commit", GitCommit),
			zap.String("port", cfg.ServerPort),
			zap.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server shutdown complete")
	return nil
}
