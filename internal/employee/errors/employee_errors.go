package employeeerrors

import (
	"net/http"

	"github.com/5niurb/timetracker/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidWage = apperror.New(
		apperror.CodeInvalidInput,
		"Hourly wage must be a non-negative decimal",
		http.StatusBadRequest,
	)
)
