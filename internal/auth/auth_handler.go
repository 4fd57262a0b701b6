package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	autherrors "github.com/zainabHashem/Employee-Data-Platform/internal/auth/errors"
	"github.com/zainabHashem/Employee-Data-Platform/internal/session"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	sessions  *session.Manager
	adminUser string
	adminPass string
	logger    *zap.Logger
}

func NewHandler(sessions *session.Manager, adminUser, adminPass string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{
		sessions:  sessions,
		adminUser: adminUser,
		adminPass: adminPass,
		logger:    l,
	}
}

// ShowLogin is the target of every unauthenticated redirect. Rendering
// is the UI layer's job; this returns the queued flash messages so the
// form can display them.
func (h *Handler) ShowLogin(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"login_required": true,
		"next":           c.Query("next"),
		"flashes":        h.sessions.PopFlashes(c.Writer, c.Request),
	})
}

// Login performs the Anonymous -> Authenticated transition: both
// submitted values must match the single configured admin credential
// pair. On success the caller is sent back to the destination it
// originally requested.
func (h *Handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := strings.TrimSpace(c.PostForm("password"))

	if !h.credentialsMatch(username, password) {
		h.logger.Warn("login failed",
			zap.String("username", username),
			zap.String("client_ip", c.ClientIP()),
		)
		response.Error(c,
			autherrors.ErrInvalidCredentials.HTTPStatus,
			autherrors.ErrInvalidCredentials.Code,
			autherrors.ErrInvalidCredentials.Message,
			nil,
		)
		return
	}

	if err := h.sessions.Login(c.Writer, c.Request); err != nil {
		h.logger.Error("session save failed", zap.Error(err))
		response.Error(c,
			autherrors.ErrSessionSaveFailed.HTTPStatus,
			autherrors.ErrSessionSaveFailed.Code,
			autherrors.ErrSessionSaveFailed.Message,
			nil,
		)
		return
	}

	if err := h.sessions.Flash(c.Writer, c.Request, "success", "Logged in"); err != nil {
		h.logger.Warn("flash save failed", zap.Error(err))
	}

	h.logger.Info("login success", zap.String("username", username))
	c.Redirect(http.StatusFound, safeNext(c.Query("next")))
}

// Logout clears the session and returns the caller to the login form.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		h.logger.Warn("logout session clear failed", zap.Error(err))
	}
	h.logger.Info("logout")
	c.Redirect(http.StatusFound, "/login")
}

// credentialsMatch checks the submitted pair against the configured one.
// When ADMIN_PASS holds a bcrypt hash the comparison uses bcrypt;
// otherwise it is a constant-time exact match, which is all this
// single-admin tool needs.
func (h *Handler) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.adminUser)) == 1

	var passOK bool
	if strings.HasPrefix(h.adminPass, "$2a$") || strings.HasPrefix(h.adminPass, "$2b$") {
		passOK = bcrypt.CompareHashAndPassword([]byte(h.adminPass), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(h.adminPass)) == 1
	}

	return userOK && passOK
}

// safeNext keeps the post-login redirect on this host: only rooted
// relative paths pass, anything else falls back to the dashboard.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
