package main

import (
	"context"
	"log"

	"memories-chain/config"
	"memories-chain/internal/events"
	"memories-chain/internal/handler"
	"memories-chain/internal/redis"
	"memories-chain/internal/repository"
	"memories-chain/internal/server"
	"memories-chain/internal/services"
	"memories-chain/internal/storage"
	"memories-chain/internal/websocket"
	"memories-chain/pkg/database"
	"memories-chain/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)
	logger.SetGlobalLogger(l)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})

	provider, err := newStorageProvider(cfg, l)
	if err != nil {
		log.Fatalf("Failed to initialize storage provider: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	memoryRepo := repository.NewMemoryRepository(db)

	publisher := services.NewChangePublisher(redis.NewPublisher(redisClient), events.NewChannelResolver(), l)
	authService := services.NewAuthService(cfg.AuthSecret, cfg.AuthDomain)
	userService := services.NewUserService(userRepo, publisher, l)
	memoryService := services.NewMemoryService(memoryRepo, userRepo, publisher, l)
	uploadService := services.NewUploadService(provider, l)

	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	bridge := websocket.NewRedisBridge(redis.NewSubscriber(redisClient), hub)
	go func() {
		if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
			l.Errorf("realtime bridge stopped: %s", err)
		}
	}()

	limiterCfg := redis.DefaultRateLimitConfig()
	limiterCfg.UploadLimit = cfg.UploadLimitPerMin
	limiterCfg.WriteLimit = cfg.WriteLimitPerMin
	limiter := redis.NewRateLimiter(redisClient, limiterCfg)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		User:   handler.NewUserHandler(userService, l),
		Memory: handler.NewMemoryHandler(memoryService, l),
		Upload: handler.NewUploadHandler(uploadService, l),
		Diag:   handler.NewDiagHandler(db, userRepo, l),
		WS:     websocket.NewHandler(authService, hub),
	}, authService, limiter, db)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

func newStorageProvider(cfg *config.Config, l *logger.Logger) (storage.Provider, error) {
	if cfg.StorageProvider == "s3" {
		return storage.NewS3Client(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
	}
	return storage.NewPinataClient(storage.PinataConfig{
		UploadURL:   cfg.PinataUploadURL,
		JWT:         cfg.PinataJWT,
		GatewayHost: cfg.PinataGatewayHost,
	}, l)
}
