package app

import (
	"go-grafik/internal/config"
	"go-grafik/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, migrates the schema and mounts every
// module on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", cfg.DB.Driver))

	if err := gormDB.AutoMigrate(Entities()...); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	// redis is optional; without it nothing is cached and idempotency is off
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("redis.addr not set, caching disabled")
	}

	// Register Modules & Routes
	registerModules(router, cfg, sqlDB, gormDB, redisClient, zap.L())

	cleanup := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		_ = sqlDB.Close()
	}
	return cleanup, nil
}
