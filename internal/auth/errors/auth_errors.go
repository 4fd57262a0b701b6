package autherrors

import (
	"net/http"

	"github.com/zainabHashem/Employee-Data-Platform/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid username or password",
		http.StatusUnauthorized,
	)
	ErrSessionSaveFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not establish the session",
		http.StatusInternalServerError,
	)
)
