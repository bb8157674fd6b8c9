package main

import (
	"context"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"treasure_backend/internal/app/di"
	"treasure_backend/internal/app/router"
	"treasure_backend/internal/feature/target/domain/catalog"
	targethandler "treasure_backend/internal/feature/target/transport/handler"
	targetusecase "treasure_backend/internal/feature/target/usecase"
	validationhandler "treasure_backend/internal/feature/validation/transport/handler"
	"treasure_backend/internal/platform/config"
	infradb "treasure_backend/internal/platform/db"
	"treasure_backend/internal/platform/http/handler"
	"treasure_backend/internal/platform/logger"
	infraredis "treasure_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logger.Setup(cfg.Log.Level, cfg.Server.Environment)

	cat, err := catalog.Load()
	if err != nil {
		logrus.Fatalf("failed to load target catalog: %v", err)
	}

	checks := map[string]handler.Checker{}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		logrus.Warn("Redis unavailable. Running without cache.")
	} else if tmp != nil {
		rdb = tmp
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		defer func() {
			if err := rdb.Close(); err != nil {
				logrus.WithError(err).Error("Failed to close Redis client")
			}
		}()
	}

	// db（Redisがない場合の利用台帳）
	var db *gorm.DB
	if rdb == nil {
		db, err = infradb.OpenDB(infradb.Config{
			Driver:         cfg.Database.Driver,
			DSN:            cfg.Database.DSN,
			ConnectTimeout: cfg.Database.ConnectTimeout,
		})
		if err != nil {
			logrus.Fatalf("failed to open database: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			logrus.Fatalf("failed to get sql.DB: %v", err)
		}
		checks["database"] = sqlDB.PingContext
		defer func() { _ = sqlDB.Close() }()
	}

	// Describer
	base, closeDescriber, err := di.NewBaseDescriber(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to create describer: %v", err)
	}
	defer func() {
		if err := closeDescriber(); err != nil {
			logrus.WithError(err).Error("Failed to close describer")
		}
	}()
	describer := di.WrapDescriber(base, cfg, rdb, db)

	// Usecase
	targetUC := targetusecase.NewTargetUsecase(cat)
	validationUC := di.NewValidationUsecase(describer, cat, cfg)

	// Handler
	healthH := handler.NewHealthHandler(checks)
	targetH := targethandler.NewTargetHandler(targetUC)
	validationH := validationhandler.NewValidationHandler(targetUC, validationUC, cfg.Image.MaxSizeBytes())

	// ルータ生成
	r := router.NewRouter(healthH, targetH, validationH, cfg.Server.AllowedOrigins)

	logrus.WithFields(logrus.Fields{
		"port":      cfg.Server.Port,
		"describer": describer.Tag(),
		"locale":    cfg.Locale,
	}).Info("starting treasure backend")

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logrus.Fatal(err)
	}
}
