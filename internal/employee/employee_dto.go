package employee

import "io"

// EmployeeForm carries the fields of the create/edit form. Only the name
// is mandatory; everything else is free text the admin may leave blank.
type EmployeeForm struct {
	Name             string `form:"name" binding:"required"`
	Specialty        string `form:"specialty"`
	HireDate         string `form:"hire_date"`
	Qualification    string `form:"qualification"`
	Courses          string `form:"courses"`
	Experience       string `form:"experience"`
	CertificatesText string `form:"certificates_text"`
	AttachmentLabel  string `form:"attachment_label"`
}

// Upload is a pending file upload decoupled from the HTTP transport.
type Upload struct {
	Filename string
	Content  io.Reader
}

type EmployeeFileResponse struct {
	ID         uint   `json:"id"`
	Filename   string `json:"filename"`
	Label      string `json:"label,omitempty"`
	UploadedAt string `json:"uploaded_at"`
}

type EmployeeResponse struct {
	ID               uint                   `json:"id"`
	Name             string                 `json:"name"`
	Specialty        string                 `json:"specialty,omitempty"`
	HireDate         string                 `json:"hire_date,omitempty"`
	Qualification    string                 `json:"qualification,omitempty"`
	Courses          string                 `json:"courses,omitempty"`
	Experience       string                 `json:"experience,omitempty"`
	CertificatesText string                 `json:"certificates_text,omitempty"`
	CVFilename       string                 `json:"cv_filename,omitempty"`
	CreatedAt        string                 `json:"created_at"`
	UpdatedAt        string                 `json:"updated_at"`
	FileCount        int                    `json:"file_count"`
	Files            []EmployeeFileResponse `json:"files,omitempty"`
}
