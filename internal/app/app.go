package app

import (
	"github.com/zainabHashem/Employee-Data-Platform/internal/config"
	"github.com/zainabHashem/Employee-Data-Platform/internal/employee"
	"github.com/zainabHashem/Employee-Data-Platform/internal/filestore"
	"github.com/zainabHashem/Employee-Data-Platform/internal/session"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) error {
	// 1. Infrastructure
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&employee.Employee{}, &employee.EmployeeFile{}); err != nil {
		return err
	}
	logger.Info("database migrated")

	files, err := filestore.New(cfg.UploadDir, logger)
	if err != nil {
		return err
	}
	logger.Info("upload root ready", zap.String("root", files.Root()))

	sessions := session.NewManager(cfg.SessionSecret, cfg.IsProd())

	// 2. Register modules & routes
	return registerModules(router, db, files, sessions, cfg, logger)
}
