package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, emp *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindAll(ctx context.Context, q, specialty string) ([]Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id uint) error
	CreateFile(ctx context.Context, file *EmployeeFile) error
	DeleteFile(ctx context.Context, employeeID, fileID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Preload("Files").
		First(&emp, id).Error
	return &emp, err
}

// FindAll applies the two optional case-insensitive substring filters
// (name-or-qualification, specialty) and orders newest-first. Ties on
// created_at fall back to id so the ordering stays stable.
func (r *repository) FindAll(ctx context.Context, q, specialty string) ([]Employee, error) {
	tx := r.db.WithContext(ctx).Preload("Files")
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("name ILIKE ? OR qualification ILIKE ?", like, like)
	}
	if specialty != "" {
		tx = tx.Where("specialty ILIKE ?", "%"+specialty+"%")
	}

	var emps []Employee
	err := tx.Order("created_at DESC, id DESC").Find(&emps).Error
	return emps, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

// Delete removes the employee row and every employee_files row that
// references it inside one transaction. The physical blobs are left on
// disk on purpose.
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&EmployeeFile{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Employee{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repository) CreateFile(ctx context.Context, file *EmployeeFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// DeleteFile is scoped to the (employee, file) pair; the rows-affected
// count lets the service distinguish a mismatched pair from success.
func (r *repository) DeleteFile(ctx context.Context, employeeID, fileID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("employee_id = ? AND id = ?", employeeID, fileID).
		Delete(&EmployeeFile{})
	return res.RowsAffected, res.Error
}
