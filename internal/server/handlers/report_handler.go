package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/domain/models"
	"github.com/pureclean/platform/internal/service/reporting"
)

// ReportHandler serves expense records and the dashboard/report folds.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

type createExpenseRequest struct {
	Date     string  `json:"date" binding:"required"`
	Product  string  `json:"product" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Amount   int64   `json:"amount" binding:"required"`
	Notes    *string `json:"notes,omitempty"`
}

// CreateExpense records a new expense.
func (h *ReportHandler) CreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense payload"})
		return
	}

	created, err := h.svc.AddExpense(c.Request.Context(), companyIDFrom(c), reporting.ExpenseInput{
		Date:     req.Date,
		Product:  req.Product,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Amount:   req.Amount,
		Notes:    req.Notes,
	})
	if err != nil {
		h.logger.Error("create expense failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListExpenses returns the company's expenses, newest date first.
func (h *ReportHandler) ListExpenses(c *gin.Context) {
	list, err := h.svc.ListExpenses(c.Request.Context(), companyIDFrom(c))
	if err != nil {
		h.logger.Error("list expenses failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	if list == nil {
		list = []models.Expense{}
	}
	c.JSON(http.StatusOK, list)
}

// DeleteExpense hard-deletes one expense record.
func (h *ReportHandler) DeleteExpense(c *gin.Context) {
	if err := h.svc.DeleteExpense(c.Request.Context(), c.Param("id"), companyIDFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Daily returns the trailing 30-day metrics for the dashboard.
func (h *ReportHandler) Daily(c *gin.Context) {
	metrics, err := h.svc.Last30Days(c.Request.Context(), companyIDFrom(c))
	if err != nil {
		h.logger.Error("daily metrics failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Monthly returns the report for the requested calendar month, defaulting
// to the current one.
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if q := c.Query("year"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = v
	}
	if q := c.Query("month"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		month = time.Month(v)
	}

	report, err := h.svc.Month(c.Request.Context(), companyIDFrom(c), year, month)
	if err != nil {
		h.logger.Error("monthly report failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
