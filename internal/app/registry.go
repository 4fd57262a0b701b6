package app

import (
	"github.com/zainabHashem/Employee-Data-Platform/internal/auth"
	"github.com/zainabHashem/Employee-Data-Platform/internal/config"
	"github.com/zainabHashem/Employee-Data-Platform/internal/employee"
	"github.com/zainabHashem/Employee-Data-Platform/internal/filestore"
	"github.com/zainabHashem/Employee-Data-Platform/internal/middleware"
	"github.com/zainabHashem/Employee-Data-Platform/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	files *filestore.Store,
	sessions *session.Manager,
	cfg config.Config,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(db)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, files, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(sessions, cfg.AdminUser, cfg.AdminPass, logger)
	employeeHandler := employee.NewHandler(employeeService, sessions, logger)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.MaxRequestBody(int64(cfg.MaxUploadMB) << 20))

	// --- Routes registration ---
	auth.RegisterRoutes(router, authHandler, sessions)
	employee.RegisterRoutes(router, employeeHandler, sessions, logger)

	return nil
}
