package middleware

import (
	"net/http"
	"net/url"

	"github.com/zainabHashem/Employee-Data-Platform/internal/session"

	"github.com/gin-gonic/gin"
)

// RequireLogin gates every route behind the admin session. Anonymous
// callers are bounced to the login form with the originally requested
// URI preserved, so a successful login lands them where they started.
func RequireLogin(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.IsAuthenticated(c.Request) {
			c.Next()
			return
		}

		next := c.Request.URL.RequestURI()
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(next))
		c.Abort()
	}
}
