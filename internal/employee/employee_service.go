package employee

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	employeeerrors "github.com/zainabHashem/Employee-Data-Platform/internal/employee/errors"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	hireDateLayout = "2006-01-02"
	cvSubdir       = "cv"

	// DefaultAttachmentLabel is used when the form supplies no label for
	// an attachment batch.
	DefaultAttachmentLabel = "Attachment"

	// WarnInvalidHireDate is surfaced to the caller when the submitted
	// hire date cannot be parsed. The operation still goes through with
	// the date unset.
	WarnInvalidHireDate = "Invalid hire date format, expected YYYY-MM-DD; the date was not saved"
)

// FileStore is the slice of the upload store the service needs.
//
//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type FileStore interface {
	Save(r io.Reader, originalName, subdir string) (string, error)
	Resolve(relpath string) (string, error)
}

type Service interface {
	Create(ctx context.Context, form EmployeeForm, cv *Upload, attachments []Upload) (EmployeeResponse, []string, error)
	Update(ctx context.Context, id uint, form EmployeeForm, cv *Upload, attachments []Upload) (EmployeeResponse, []string, error)
	Delete(ctx context.Context, id uint) error
	DeleteAttachment(ctx context.Context, employeeID, fileID uint) error
	Search(ctx context.Context, q, specialty string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	ResolveFile(ctx context.Context, relpath string) (string, error)
}

type service struct {
	repo   Repository
	files  FileStore
	logger *zap.Logger
}

func NewService(repo Repository, files FileStore, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, files: files, logger: l}
}

// Create stores the CV first (it needs no employee id), persists the
// employee to obtain the generated id, then stores each attachment under
// the employee's own subdirectory. A rejected attachment aborts the rest
// of the batch but leaves the already-created employee in place.
func (s *service) Create(
	ctx context.Context,
	form EmployeeForm,
	cv *Upload,
	attachments []Upload,
) (EmployeeResponse, []string, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("name", form.Name),
	)

	if strings.TrimSpace(form.Name) == "" {
		return EmployeeResponse{}, nil, employeeerrors.ErrNameRequired
	}

	emp := &Employee{}
	warnings := s.applyForm(emp, form)

	if cv != nil {
		rel, err := s.files.Save(cv.Content, cv.Filename, cvSubdir)
		if err != nil {
			s.logger.Warn("create employee cv rejected",
				zap.String("request_id", rid),
				zap.String("filename", cv.Filename),
				zap.Error(err),
			)
			return EmployeeResponse{}, warnings, err
		}
		emp.CVFilename = rel
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("create employee persist failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return EmployeeResponse{}, warnings, mapRepositoryError(err)
	}

	if err := s.storeAttachments(ctx, emp, form.AttachmentLabel, attachments); err != nil {
		return EmployeeResponse{}, warnings, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", emp.ID),
		zap.Int("attachments", len(emp.Files)),
	)
	return mapToResponse(*emp), warnings, nil
}

// Update copies the form over the existing record with the same date
// semantics as Create. A new CV replaces cv_filename; the previous blob
// stays on disk. New attachments append, they never replace.
func (s *service) Update(
	ctx context.Context,
	id uint,
	form EmployeeForm,
	cv *Upload,
	attachments []Upload,
) (EmployeeResponse, []string, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	if strings.TrimSpace(form.Name) == "" {
		return EmployeeResponse{}, nil, employeeerrors.ErrNameRequired
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, nil, mapRepositoryError(err)
	}

	warnings := s.applyForm(emp, form)

	if cv != nil {
		rel, err := s.files.Save(cv.Content, cv.Filename, cvSubdir)
		if err != nil {
			s.logger.Warn("update employee cv rejected",
				zap.String("request_id", rid),
				zap.String("filename", cv.Filename),
				zap.Error(err),
			)
			return EmployeeResponse{}, warnings, err
		}
		if emp.CVFilename != "" {
			s.logger.Debug("cv replaced, previous blob left on disk",
				zap.Uint("employee_id", emp.ID),
				zap.String("previous", emp.CVFilename),
			)
		}
		emp.CVFilename = rel
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return EmployeeResponse{}, warnings, mapRepositoryError(err)
	}

	if err := s.storeAttachments(ctx, emp, form.AttachmentLabel, attachments); err != nil {
		return EmployeeResponse{}, warnings, err
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", emp.ID),
	)
	return mapToResponse(*emp), warnings, nil
}

// Delete cascades the attachment rows with the employee in one
// transaction. The uploaded blobs are orphaned on disk, matching the
// retention behavior this tool has always had.
func (s *service) Delete(ctx context.Context, id uint) error {
	s.logger.Debug("delete employee requested", zap.Uint("employee_id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Uint("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success", zap.Uint("employee_id", id))
	return nil
}

func (s *service) DeleteAttachment(ctx context.Context, employeeID, fileID uint) error {
	s.logger.Debug("delete attachment requested",
		zap.Uint("employee_id", employeeID),
		zap.Uint("file_id", fileID),
	)

	rows, err := s.repo.DeleteFile(ctx, employeeID, fileID)
	if err != nil {
		s.logger.Error("delete attachment failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if rows == 0 {
		return employeeerrors.ErrFileNotFound
	}

	s.logger.Info("delete attachment success",
		zap.Uint("employee_id", employeeID),
		zap.Uint("file_id", fileID),
	)
	return nil
}

func (s *service) Search(ctx context.Context, q, specialty string) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx, strings.TrimSpace(q), strings.TrimSpace(specialty))
	if err != nil {
		s.logger.Error("search employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(emps), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*emp), nil
}

func (s *service) ResolveFile(ctx context.Context, relpath string) (string, error) {
	return s.files.Resolve(relpath)
}

// applyForm copies the form fields onto the entity and returns any
// non-fatal warnings. A malformed hire date is deliberately downgraded
// to a warning rather than failing the whole operation.
func (s *service) applyForm(emp *Employee, form EmployeeForm) []string {
	emp.Name = strings.TrimSpace(form.Name)
	emp.Specialty = strings.TrimSpace(form.Specialty)
	emp.Qualification = strings.TrimSpace(form.Qualification)
	emp.Courses = strings.TrimSpace(form.Courses)
	emp.Experience = strings.TrimSpace(form.Experience)
	emp.CertificatesText = strings.TrimSpace(form.CertificatesText)

	var warnings []string
	if raw := strings.TrimSpace(form.HireDate); raw != "" {
		if d, err := time.Parse(hireDateLayout, raw); err != nil {
			s.logger.Warn("invalid hire_date, leaving it unset",
				zap.String("hire_date", raw),
				zap.Error(err),
			)
			warnings = append(warnings, WarnInvalidHireDate)
		} else {
			emp.HireDate = &d
		}
	}
	return warnings
}

func (s *service) storeAttachments(ctx context.Context, emp *Employee, label string, attachments []Upload) error {
	if len(attachments) == 0 {
		return nil
	}
	if strings.TrimSpace(label) == "" {
		label = DefaultAttachmentLabel
	}

	subdir := fmt.Sprintf("emp_%d", emp.ID)
	for _, att := range attachments {
		rel, err := s.files.Save(att.Content, att.Filename, subdir)
		if err != nil {
			s.logger.Warn("attachment rejected",
				zap.Uint("employee_id", emp.ID),
				zap.String("filename", att.Filename),
				zap.Error(err),
			)
			return err
		}

		file := &EmployeeFile{EmployeeID: emp.ID, Filename: rel, Label: label}
		if err := s.repo.CreateFile(ctx, file); err != nil {
			s.logger.Error("attachment persist failed",
				zap.Uint("employee_id", emp.ID),
				zap.String("relpath", rel),
				zap.Error(err),
			)
			return mapRepositoryError(err)
		}
		emp.Files = append(emp.Files, *file)
	}
	return nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               emp.ID,
		Name:             emp.Name,
		Specialty:        emp.Specialty,
		Qualification:    emp.Qualification,
		Courses:          emp.Courses,
		Experience:       emp.Experience,
		CertificatesText: emp.CertificatesText,
		CVFilename:       emp.CVFilename,
		CreatedAt:        emp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        emp.UpdatedAt.UTC().Format(time.RFC3339),
		FileCount:        len(emp.Files),
	}
	if emp.HireDate != nil {
		resp.HireDate = emp.HireDate.Format(hireDateLayout)
	}
	for _, f := range emp.Files {
		resp.Files = append(resp.Files, EmployeeFileResponse{
			ID:         f.ID,
			Filename:   f.Filename,
			Label:      f.Label,
			UploadedAt: f.UploadedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
