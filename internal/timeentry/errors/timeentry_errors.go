package timeentryerrors

import (
	"net/http"

	"github.com/5niurb/timetracker/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Time entry not found",
		http.StatusNotFound,
	)
	ErrDuplicateDate = apperror.New(
		apperror.CodeConflict,
		"A time entry already exists for this date; resubmit with override to replace it",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be a real calendar day in YYYY-MM-DD form",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"Hours must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amounts must be non-negative decimals",
		http.StatusBadRequest,
	)
	ErrNotEntryOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the entry owner or a manager can delete a time entry",
		http.StatusForbidden,
	)
)
