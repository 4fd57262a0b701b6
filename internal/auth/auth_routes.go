package auth

import (
	"github.com/zainabHashem/Employee-Data-Platform/internal/middleware"
	"github.com/zainabHashem/Employee-Data-Platform/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *Handler, sessions *session.Manager) {
	r.GET("/login", handler.ShowLogin)
	r.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
	r.GET("/logout", middleware.RequireLogin(sessions), handler.Logout)
}
