package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/server/middleware"
	"github.com/pureclean/platform/internal/service/orders"
)

// IntakeHandler serves the customer-facing order form and the confirmation
// view. No authentication; the tenant context comes from the QR-code path
// or, as a fallback, from a logged-in admin's session.
type IntakeHandler struct {
	svc    *orders.Service
	logger *zap.Logger
}

// NewIntakeHandler constructs the HTTP handler adapter.
func NewIntakeHandler(svc *orders.Service, logger *zap.Logger) *IntakeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeHandler{svc: svc, logger: logger}
}

type intakeRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Telegram    *string `json:"telegram,omitempty"`
	ItemCount   int     `json:"itemCount"`
	ServiceType string  `json:"serviceType" binding:"required"`
	Notes       *string `json:"notes,omitempty"`
	PickupDate  *string `json:"pickupDate,omitempty"`
}

// Create accepts an intake submission. Any price-like fields a crafted
// request might carry are simply not bound: status and payment are forced
// by the service.
func (h *IntakeHandler) Create(c *gin.Context) {
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intake payload"})
		return
	}

	companyID := c.Param("companyId")
	if companyID == "" {
		if session, ok := middleware.SessionFrom(c); ok {
			companyID = session.CompanyID
		}
	}

	order, err := h.svc.CreateIntake(c.Request.Context(), orders.IntakeInput{
		CompanyID:   companyID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Telegram:    req.Telegram,
		ItemCount:   req.ItemCount,
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
		PickupDate:  req.PickupDate,
	})
	if err != nil {
		h.logger.Warn("intake rejected", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Get serves the confirmation view, keyed by the generated order id.
func (h *IntakeHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
