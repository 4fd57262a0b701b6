package employee

import (
	"errors"
	"net/http"

	employeeerrors "github.com/zainabHashem/Employee-Data-Platform/internal/employee/errors"
	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503: foreign_key_violation, an employee_files row pointing at
		// a row that no longer exists.
		if pgErr.Code == "23503" {
			return employeeerrors.ErrEmployeeNotFound
		}
	}

	return apperror.Wrap(err,
		apperror.CodeStorageError,
		"Could not save the record",
		http.StatusInternalServerError,
	)
}
