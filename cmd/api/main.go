package main

import (
	"time"

	"github.com/zainabHashem/Employee-Data-Platform/internal/app"
	"github.com/zainabHashem/Employee-Data-Platform/internal/bootstrap"
	"github.com/zainabHashem/Employee-Data-Platform/internal/config"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.IsProd() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// build dependencies + routes
	if err := app.BuildApp(r, cfg, logger); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	)
}
