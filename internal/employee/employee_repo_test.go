package employee_test

import (
	"context"
	"testing"
	"time"

	"github.com/zainabHashem/Employee-Data-Platform/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (employee.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)

	return employee.NewRepository(gormDB), mock
}

func TestRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	employeeRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "qualification", "specialty", "created_at", "updated_at"}).
			AddRow(2, "Ali", "MBA", "HR", now, now).
			AddRow(1, "Salim", "BSc", "HR", now.Add(-time.Hour), now)
	}
	fileRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "employee_id", "filename", "label", "uploaded_at"})
	}

	t.Run("both filters combine with AND, case-insensitive, newest first", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE \(name ILIKE \$1 OR qualification ILIKE \$2\) AND specialty ILIKE \$3 ORDER BY created_at DESC, id DESC`).
			WithArgs("%ali%", "%ali%", "%hr%").
			WillReturnRows(employeeRows())
		mock.ExpectQuery(`SELECT \* FROM "employee_files"`).
			WillReturnRows(fileRows())

		emps, err := repo.FindAll(ctx, "ali", "hr")
		assert.NoError(t, err)
		assert.Len(t, emps, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filters means no WHERE clause", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(`SELECT \* FROM "employees" ORDER BY created_at DESC, id DESC`).
			WillReturnRows(employeeRows())
		mock.ExpectQuery(`SELECT \* FROM "employee_files"`).
			WillReturnRows(fileRows())

		emps, err := repo.FindAll(ctx, "", "")
		assert.NoError(t, err)
		assert.Len(t, emps, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades employee_files inside one transaction", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "employee_files" WHERE employee_id = \$1`).
			WithArgs(4).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "employees"`).
			WithArgs(4).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, 4))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown employee rolls back", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "employee_files" WHERE employee_id = \$1`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "employees"`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Delete(ctx, 99), gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_DeleteFile(t *testing.T) {
	ctx := context.Background()

	t.Run("reports rows affected for the scoped pair", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(`DELETE FROM "employee_files" WHERE employee_id = \$1 AND id = \$2`).
			WithArgs(4, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.DeleteFile(ctx, 4, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mismatched pair affects zero rows", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(`DELETE FROM "employee_files" WHERE employee_id = \$1 AND id = \$2`).
			WithArgs(4, 999).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.DeleteFile(ctx, 4, 999)
		assert.NoError(t, err)
		assert.Zero(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
