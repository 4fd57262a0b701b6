package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zainabHashem/Employee-Data-Platform/internal/middleware"
	"github.com/zainabHashem/Employee-Data-Platform/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager("test-secret", false)

	r := gin.New()
	r.Use(middleware.RequireLogin(sessions))
	r.GET("/employees/:id/edit", func(c *gin.Context) {
		c.String(http.StatusOK, "edit form")
	})

	t.Run("anonymous request is bounced with next preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/employees/5/edit?q=ali", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?next=%2Femployees%2F5%2Fedit%3Fq%3Dali", w.Header().Get("Location"))
	})

	t.Run("authenticated session passes through", func(t *testing.T) {
		login := httptest.NewRecorder()
		assert.NoError(t, sessions.Login(login, httptest.NewRequest(http.MethodPost, "/login", nil)))

		req := httptest.NewRequest(http.MethodGet, "/employees/5/edit", nil)
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "edit form", w.Body.String())
	})
}
