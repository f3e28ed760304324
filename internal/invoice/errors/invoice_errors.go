package invoiceerrors

import (
	"net/http"

	"github.com/5niurb/timetracker/internal/shared/apperror"
)

var (
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeConflict,
		"An invoice has already been submitted for this pay period",
		http.StatusConflict,
	)
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Invoice not found",
		http.StatusNotFound,
	)
	ErrNotInvoiceOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the invoice owner or a manager can view this invoice",
		http.StatusForbidden,
	)
)
