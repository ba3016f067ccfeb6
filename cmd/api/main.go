package main

import (
	"os"

	"go-grafik/internal/app"
	"go-grafik/internal/bootstrap"
	"go-grafik/internal/config"
	"go-grafik/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	auditLogger := bootstrap.NewStdoutAuditLogger()
	if err := bootstrap.StartHTTPServer(r, cfg.Port, cfg.Server, auditLogger, logger); err != nil {
		logger.Error("http server failed", zap.Error(err))
		cleanup()
		_ = logger.Sync()
		os.Exit(1)
	}
}
