package filestore

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/apperror"

	"go.uber.org/zap"
)

var (
	ErrFileTypeNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"File type not allowed",
		http.StatusBadRequest,
	)
	ErrAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"File path resolves outside the upload root",
		http.StatusForbidden,
	)
	ErrFileNotFound = apperror.New(
		apperror.CodeNotFound,
		"File not found",
		http.StatusNotFound,
	)
)

// allowedExtensions mirrors what the upload forms accept: documents,
// spreadsheets and common image formats.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".xlsx": {},
	".xls":  {},
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store places uploaded blobs under a root directory, namespaced by
// subdirectory ("cv" for CVs, "emp_<id>" for per-employee attachments).
type Store struct {
	root   string
	logger *zap.Logger
}

func New(root string, logger ...*zap.Logger) (*Store, error) {
	l := zap.L().Named("filestore")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("filestore")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("create upload root %s: %w", abs, err)
	}

	return &Store{root: abs, logger: l}, nil
}

// Root returns the absolute upload root directory.
func (s *Store) Root() string {
	return s.root
}

// Save writes the content under <root>/<subdir>/<sanitized name> and
// returns the slash-separated path relative to the root. When the name
// is taken, a numeric suffix is appended before the extension, lowest
// free integer first. Two concurrent saves of the same name may race on
// the existence probe; the O_EXCL create still prevents an overwrite,
// which is the guarantee this low-traffic tool needs.
func (s *Store) Save(r io.Reader, originalName, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrFileTypeNotAllowed
	}

	name := sanitizeFilename(originalName)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name = "file" + ext
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", apperror.Wrap(err, apperror.CodeStorageError, "Could not store file", http.StatusInternalServerError)
	}

	stem := strings.TrimSuffix(name, ext)
	dest := filepath.Join(dir, name)
	for i := 1; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeStorageError, "Could not store file", http.StatusInternalServerError)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dest)
		return "", apperror.Wrap(err, apperror.CodeStorageError, "Could not store file", http.StatusInternalServerError)
	}

	rel, err := filepath.Rel(s.root, dest)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeStorageError, "Could not store file", http.StatusInternalServerError)
	}

	s.logger.Debug("file stored",
		zap.String("original_name", originalName),
		zap.String("relpath", filepath.ToSlash(rel)),
	)
	return filepath.ToSlash(rel), nil
}

// Resolve turns a stored relative path into an absolute one, rejecting
// anything that escapes the root once cleaned. The existence check comes
// after the containment check so traversal probes fail with 403 whether
// or not the target exists.
func (s *Store) Resolve(relpath string) (string, error) {
	if relpath == "" || path.IsAbs(relpath) || filepath.IsAbs(relpath) {
		return "", ErrAccessDenied
	}

	target := filepath.Join(s.root, filepath.FromSlash(relpath))
	if target != s.root && !strings.HasPrefix(target, s.root+string(os.PathSeparator)) {
		s.logger.Warn("path traversal attempt blocked", zap.String("relpath", relpath))
		return "", ErrAccessDenied
	}

	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}

	return target, nil
}

// sanitizeFilename strips directory components and collapses anything
// outside [A-Za-z0-9._-], in the manner of werkzeug's secure_filename.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}
