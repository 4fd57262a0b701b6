package auth_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/zainabHashem/Employee-Data-Platform/internal/auth"
	"github.com/zainabHashem/Employee-Data-Platform/internal/session"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func loginRequest(target, username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAuthHandler_Login(t *testing.T) {
	sessions := session.NewManager("test-secret", false)

	t.Run("correct credentials redirect to dashboard", func(t *testing.T) {
		h := auth.NewHandler(sessions, "admin", "admin123")
		r := setupRouter()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest("/login", "admin", "admin123"))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.NotEmpty(t, w.Result().Cookies())
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		h := auth.NewHandler(sessions, "admin", "admin123")
		r := setupRouter()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest("/login", "  admin  ", " admin123 "))

		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		h := auth.NewHandler(sessions, "admin", "admin123")
		r := setupRouter()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest("/login", "admin", "nope"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeUnauthorized)
		assert.Contains(t, w.Body.String(), "Invalid username or password")
	})

	t.Run("wrong username is unauthorized even with right password", func(t *testing.T) {
		h := auth.NewHandler(sessions, "admin", "admin123")
		r := setupRouter()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest("/login", "root", "admin123"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bcrypt hashed admin pass", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		assert.NoError(t, err)

		h := auth.NewHandler(sessions, "admin", string(hash))
		r := setupRouter()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest("/login", "admin", "s3cret"))
		assert.Equal(t, http.StatusFound, w.Code)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest("/login", "admin", "wrong"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("next parameter survives the redirect", func(t *testing.T) {
		h := auth.NewHandler(sessions, "admin", "admin123")
		r := setupRouter()
		r.POST("/login", h.Login)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, loginRequest("/login?next=%2Femployees%2F5%2Fedit", "admin", "admin123"))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/employees/5/edit", w.Header().Get("Location"))
	})

	t.Run("offsite next falls back to dashboard", func(t *testing.T) {
		h := auth.NewHandler(sessions, "admin", "admin123")
		r := setupRouter()
		r.POST("/login", h.Login)

		for _, next := range []string{
			"https%3A%2F%2Fevil.example",
			"%2F%2Fevil.example",
			"evil.example%2Fphish",
		} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, loginRequest("/login?next="+next, "admin", "admin123"))

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
		}
	})
}

func TestAuthHandler_ShowLogin(t *testing.T) {
	sessions := session.NewManager("test-secret", false)
	h := auth.NewHandler(sessions, "admin", "admin123")

	r := setupRouter()
	r.GET("/login", h.ShowLogin)

	req := httptest.NewRequest(http.MethodGet, "/login?next=%2Femployees%2Fnew", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"login_required":true`)
	assert.Contains(t, w.Body.String(), "/employees/new")
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := session.NewManager("test-secret", false)
	h := auth.NewHandler(sessions, "admin", "admin123")

	r := setupRouter()
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	// log in first so there is a session to clear
	w := httptest.NewRecorder()
	r.ServeHTTP(w, loginRequest("/login", "admin", "admin123"))
	assert.Equal(t, http.StatusFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// the cleared cookie must no longer authenticate
	check := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		check.AddCookie(c)
	}
	assert.False(t, sessions.IsAuthenticated(check))
}
