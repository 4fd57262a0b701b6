package filestore_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zainabHashem/Employee-Data-Platform/internal/filestore"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func newStore(t *testing.T) (*filestore.Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := filestore.New(root)
	assert.NoError(t, err)
	return store, root
}

func TestStore_Save(t *testing.T) {
	t.Run("stores under subdirectory and returns relative path", func(t *testing.T) {
		store, root := newStore(t)

		rel, err := store.Save(strings.NewReader("cv content"), "resume.pdf", "cv")
		assert.NoError(t, err)
		assert.Equal(t, "cv/resume.pdf", rel)

		data, err := os.ReadFile(filepath.Join(root, "cv", "resume.pdf"))
		assert.NoError(t, err)
		assert.Equal(t, "cv content", string(data))
	})

	t.Run("rejects disallowed extension", func(t *testing.T) {
		store, root := newStore(t)

		rel, err := store.Save(strings.NewReader("MZ"), "tool.exe", "emp_1")
		assert.ErrorIs(t, err, filestore.ErrFileTypeNotAllowed)
		assert.Empty(t, rel)

		// nothing was written
		_, statErr := os.Stat(filepath.Join(root, "emp_1"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("extension check is case-insensitive", func(t *testing.T) {
		store, _ := newStore(t)

		rel, err := store.Save(strings.NewReader("x"), "Scan.JPG", "emp_2")
		assert.NoError(t, err)
		assert.Equal(t, "emp_2/Scan.JPG", rel)
	})

	t.Run("identical names never overwrite", func(t *testing.T) {
		store, root := newStore(t)

		first, err := store.Save(strings.NewReader("first"), "cert.pdf", "emp_3")
		assert.NoError(t, err)
		second, err := store.Save(strings.NewReader("second"), "cert.pdf", "emp_3")
		assert.NoError(t, err)
		third, err := store.Save(strings.NewReader("third"), "cert.pdf", "emp_3")
		assert.NoError(t, err)

		assert.Equal(t, "emp_3/cert.pdf", first)
		assert.Equal(t, "emp_3/cert_1.pdf", second)
		assert.Equal(t, "emp_3/cert_2.pdf", third)

		// all three remain independently retrievable
		for rel, want := range map[string]string{first: "first", second: "second", third: "third"} {
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
			assert.NoError(t, err)
			assert.Equal(t, want, string(data))
		}
	})

	t.Run("sanitizes path components out of the name", func(t *testing.T) {
		store, _ := newStore(t)

		rel, err := store.Save(strings.NewReader("x"), "../../etc/passwd.pdf", "cv")
		assert.NoError(t, err)
		assert.Equal(t, "cv/passwd.pdf", rel)

		rel, err = store.Save(strings.NewReader("x"), `..\..\boot plan.docx`, "cv")
		assert.NoError(t, err)
		assert.Equal(t, "cv/boot_plan.docx", rel)
	})
}

func TestStore_Resolve(t *testing.T) {
	t.Run("returns absolute path for stored file", func(t *testing.T) {
		store, root := newStore(t)

		rel, err := store.Save(strings.NewReader("x"), "photo.png", "emp_9")
		assert.NoError(t, err)

		abs, err := store.Resolve(rel)
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "emp_9", "photo.png"), abs)
	})

	t.Run("rejects traversal whether or not the target exists", func(t *testing.T) {
		store, _ := newStore(t)

		// os.TempDir parent always exists; still forbidden
		for _, relpath := range []string{
			"../outside.pdf",
			"cv/../../outside.pdf",
			"/etc/passwd",
		} {
			abs, err := store.Resolve(relpath)
			var appErr *apperror.AppError
			assert.True(t, errors.As(err, &appErr), "relpath %q", relpath)
			assert.Equal(t, apperror.CodeForbidden, appErr.Code, "relpath %q", relpath)
			assert.Empty(t, abs)
		}
	})

	t.Run("missing file is not found, not forbidden", func(t *testing.T) {
		store, _ := newStore(t)

		abs, err := store.Resolve("cv/never-uploaded.pdf")
		assert.ErrorIs(t, err, filestore.ErrFileNotFound)
		assert.Empty(t, abs)
	})

	t.Run("dotdot inside the root is fine once cleaned", func(t *testing.T) {
		store, _ := newStore(t)

		rel, err := store.Save(strings.NewReader("x"), "doc.pdf", "cv")
		assert.NoError(t, err)
		assert.Equal(t, "cv/doc.pdf", rel)

		abs, err := store.Resolve("emp_1/../cv/doc.pdf")
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(abs, filepath.Join("cv", "doc.pdf")))
	})
}
