package timeentry

import (
	"net/http"
	"strconv"

	"github.com/5niurb/timetracker/internal/employee"
	"github.com/5niurb/timetracker/internal/shared/apperror"
	"github.com/5niurb/timetracker/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// targetEmployeeID resolves which employee a read applies to: the
// caller, unless a manager asks for someone else via ?employee_id=.
func targetEmployeeID(c *gin.Context) (string, bool) {
	actorID := c.GetString("employee_id")
	requested := c.Query("employee_id")
	if requested == "" || requested == actorID {
		return actorID, true
	}
	if c.GetString("role") != employee.RoleManager {
		return "", false
	}
	return requested, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByPeriod(c *gin.Context) {
	employeeID, ok := targetEmployeeID(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "offset must be an integer", nil)
		return
	}
	descending := c.DefaultQuery("order", "asc") == "desc"

	resp, err := h.service.GetByPeriod(c.Request.Context(), employeeID, offset, descending)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(
		c.Request.Context(),
		c.GetString("employee_id"),
		c.GetString("role"),
		c.Param("id"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
