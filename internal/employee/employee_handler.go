package employee

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	employeeerrors "github.com/zainabHashem/Employee-Data-Platform/internal/employee/errors"
	"github.com/zainabHashem/Employee-Data-Platform/internal/session"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/apperror"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service  Service
	sessions *session.Manager
	logger   *zap.Logger
}

func NewHandler(service Service, sessions *session.Manager, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, sessions: sessions, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) flash(c *gin.Context, category, message string) {
	if err := h.sessions.Flash(c.Writer, c.Request, category, message); err != nil {
		h.logger.Warn("flash save failed", zap.Error(err))
	}
}

// List serves the dashboard data: every employee matching the two
// optional substring filters, newest first.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := strings.TrimSpace(c.Query("q"))
	specialty := strings.TrimSpace(c.Query("specialty"))
	h.logger.Debug("http list employees",
		zap.String("q", q),
		zap.String("specialty", specialty),
	)

	resp, err := h.service.Search(ctx, q, specialty)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"employees": resp,
		"q":         q,
		"specialty": specialty,
		"flashes":   h.sessions.PopFlashes(c.Writer, c.Request),
	})
}

// NewForm returns the empty scaffold the create form renders from.
func (h *Handler) NewForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"employee": nil,
		"flashes":  h.sessions.PopFlashes(c.Writer, c.Request),
	})
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var form EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	cv, attachments, closeUploads, err := formUploads(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Could not read uploaded files", err.Error())
		return
	}
	defer closeUploads()

	resp, warnings, err := h.service.Create(ctx, form, cv, attachments)
	for _, w := range warnings {
		h.flash(c, "warning", w)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.flash(c, "success", "Employee added")
	h.logger.Debug("http create employee done", zap.Uint("employee_id", resp.ID))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) View(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"employee": resp,
		"flashes":  h.sessions.PopFlashes(c.Writer, c.Request),
	})
}

// EditForm returns the current record for form pre-fill.
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"employee": resp,
		"flashes":  h.sessions.PopFlashes(c.Writer, c.Request),
	})
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var form EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	cv, attachments, closeUploads, err := formUploads(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Could not read uploaded files", err.Error())
		return
	}
	defer closeUploads()

	resp, warnings, err := h.service.Update(ctx, id, form, cv, attachments)
	for _, w := range warnings {
		h.flash(c, "warning", w)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.flash(c, "success", "Employee updated")
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/employees/%d", resp.ID))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.flash(c, "info", "Employee deleted")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) DeleteAttachment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	fileID, ok := h.pathID(c, "fid")
	if !ok {
		return
	}

	if err := h.service.DeleteAttachment(c.Request.Context(), id, fileID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.flash(c, "info", "File deleted")
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/employees/%d/edit", id))
}

// ServeFile streams a stored blob. Traversal attempts come back 403,
// unknown paths 404.
func (h *Handler) ServeFile(c *gin.Context) {
	relpath := strings.TrimPrefix(c.Param("relpath"), "/")

	abs, err := h.service.ResolveFile(c.Request.Context(), relpath)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.File(abs)
}

func (h *Handler) pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		h.writeServiceError(c, employeeerrors.ErrEmployeeNotFound)
		return 0, false
	}
	return uint(id), true
}

// formUploads extracts the single CV plus the attachment batch from the
// multipart form. The returned closer must be called after the service
// is done reading.
func formUploads(c *gin.Context) (*Upload, []Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	open := func(fh *multipart.FileHeader) (io.Reader, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		opened = append(opened, f)
		return f, nil
	}

	var cv *Upload
	if fh, err := c.FormFile("cv_file"); err == nil && fh.Filename != "" {
		r, err := open(fh)
		if err != nil {
			closeAll()
			return nil, nil, nil, err
		}
		cv = &Upload{Filename: fh.Filename, Content: r}
	}

	var attachments []Upload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["attachments"] {
			if fh.Filename == "" {
				continue
			}
			r, err := open(fh)
			if err != nil {
				closeAll()
				return nil, nil, nil, err
			}
			attachments = append(attachments, Upload{Filename: fh.Filename, Content: r})
		}
	}

	return cv, attachments, closeAll, nil
}
