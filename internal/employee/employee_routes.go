package employee

import (
	"github.com/zainabHashem/Employee-Data-Platform/internal/middleware"
	"github.com/zainabHashem/Employee-Data-Platform/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.Engine,
	handler *Handler,
	sessions *session.Manager,
	logger *zap.Logger,
) {
	authed := r.Group("/")
	authed.Use(middleware.RequireLogin(sessions))
	authed.Use(middleware.ContextLogger(logger))
	{
		authed.GET("", handler.List)
		authed.GET("/employees/new", handler.NewForm)
		authed.POST("/employees/new", handler.Create)
		authed.GET("/employees/:id", handler.View)
		authed.GET("/employees/:id/edit", handler.EditForm)
		authed.POST("/employees/:id/edit", handler.Update)
		authed.POST("/employees/:id/delete", handler.Delete)
		authed.POST("/employees/:id/file/:fid/delete", handler.DeleteAttachment)
		authed.GET("/files/*relpath", handler.ServeFile)
	}
}
