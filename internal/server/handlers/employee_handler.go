package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/domain/models"
	"github.com/pureclean/platform/internal/service/staff"
)

// EmployeeHandler serves staff records and their attendance calendar.
type EmployeeHandler struct {
	svc    *staff.Service
	logger *zap.Logger
}

// NewEmployeeHandler constructs the HTTP handler adapter.
func NewEmployeeHandler(svc *staff.Service, logger *zap.Logger) *EmployeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeHandler{svc: svc, logger: logger}
}

type createEmployeeRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required"`
	Phone     string `json:"phone"`
	Shift     string `json:"shift"`
	DailyRate int64  `json:"dailyRate"`
}

// Create adds a new employee to the company.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee payload"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), companyIDFrom(c), staff.CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Phone:     req.Phone,
		Shift:     req.Shift,
		DailyRate: req.DailyRate,
	})
	if err != nil {
		h.logger.Error("create employee failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List returns the company's employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), companyIDFrom(c))
	if err != nil {
		h.logger.Error("list employees failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	if list == nil {
		list = []models.Employee{}
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one employee.
func (h *EmployeeHandler) Get(c *gin.Context) {
	found, err := h.svc.Get(c.Request.Context(), c.Param("id"), companyIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// Update applies a partial employee update.
func (h *EmployeeHandler) Update(c *gin.Context) {
	var patch models.EmployeePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee patch"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), companyIDFrom(c), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// MarkAttendance adds a calendar day to the attendance set.
func (h *EmployeeHandler) MarkAttendance(c *gin.Context) {
	updated, err := h.svc.MarkAttendance(c.Request.Context(), c.Param("id"), companyIDFrom(c), c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UnmarkAttendance removes a calendar day from the attendance set.
func (h *EmployeeHandler) UnmarkAttendance(c *gin.Context) {
	updated, err := h.svc.UnmarkAttendance(c.Request.Context(), c.Param("id"), companyIDFrom(c), c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// MonthlyPay returns the derived pay for the current month.
func (h *EmployeeHandler) MonthlyPay(c *gin.Context) {
	pay, err := h.svc.MonthlyPay(c.Request.Context(), c.Param("id"), companyIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthlyPay": pay})
}

// Delete hard-deletes one employee.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), companyIDFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
