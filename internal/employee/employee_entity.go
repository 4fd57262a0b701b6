package employee

import (
	"time"
)

type Employee struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"size:200;not null"`
	Specialty        string `gorm:"size:200"`
	HireDate         *time.Time
	Qualification    string `gorm:"size:200"`
	Courses          string `gorm:"type:text"` // free text or comma-separated
	Experience       string `gorm:"type:text"`
	CertificatesText string `gorm:"type:text"`
	CVFilename       string `gorm:"size:300;column:cv_filename"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Files []EmployeeFile `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

func (Employee) TableName() string { return "employees" }

type EmployeeFile struct {
	ID         uint   `gorm:"primaryKey"`
	EmployeeID uint   `gorm:"index;not null"`
	Filename   string `gorm:"size:300;not null"`
	Label      string `gorm:"size:200"` // e.g. "Certificate" or "Course"
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

func (EmployeeFile) TableName() string { return "employee_files" }
