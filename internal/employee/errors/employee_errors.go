package employeeerrors

import (
	"net/http"

	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrFileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attachment not found for this employee",
		http.StatusNotFound,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Name is required",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)
