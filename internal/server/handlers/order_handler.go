package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/domain/models"
	"github.com/pureclean/platform/internal/server/middleware"
	"github.com/pureclean/platform/internal/service/orders"
	"github.com/pureclean/platform/pkg/clients/gemini"
)

// OrderHandler serves the admin order workflow: listing, status changes,
// payment edits, settlement, and AI quick-notes.
type OrderHandler struct {
	svc    *orders.Service
	ai     gemini.Client
	logger *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter.
func NewOrderHandler(svc *orders.Service, ai gemini.Client, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, ai: ai, logger: logger}
}

func companyIDFrom(c *gin.Context) string {
	session, _ := middleware.SessionFrom(c)
	return session.CompanyID
}

// List returns the company's orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), companyIDFrom(c))
	if err != nil {
		h.logger.Error("list orders failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one order, hidden when it belongs to another company.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.GetForCompany(c.Request.Context(), c.Param("id"), companyIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type statusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// SetStatus moves the order to any of the four workflow states.
func (h *OrderHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	order, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), companyIDFrom(c), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type paymentRequest struct {
	Total   int64 `json:"total"`
	Advance int64 `json:"advance"`
}

// SavePayment overwrites total and advance; remaining is recomputed
// server-side and never accepted from the client.
func (h *OrderHandler) SavePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment payload"})
		return
	}

	order, err := h.svc.SavePayment(c.Request.Context(), c.Param("id"), companyIDFrom(c), req.Total, req.Advance)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Settle marks the remaining balance as paid.
func (h *OrderHandler) Settle(c *gin.Context) {
	order, err := h.svc.SettleRemaining(c.Request.Context(), c.Param("id"), companyIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type orderInfoRequest struct {
	Customer *models.Customer     `json:"customer,omitempty"`
	Details  *models.OrderDetails `json:"details,omitempty"`
}

// Update overwrites the customer and/or details sub-records.
func (h *OrderHandler) Update(c *gin.Context) {
	var req orderInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	order, err := h.svc.UpdateInfo(c.Request.Context(), c.Param("id"), companyIDFrom(c), req.Customer, req.Details)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Delete hard-deletes one order.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), companyIDFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary returns a short AI quick-note for one order. Failures degrade to
// the static fallback and are only logged.
func (h *OrderHandler) Summary(c *gin.Context) {
	order, err := h.svc.GetForCompany(c.Request.Context(), c.Param("id"), companyIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	note, err := h.ai.OrderSummary(c.Request.Context(), *order)
	if err != nil {
		h.logger.Warn("order summary fell back", zap.String("order_id", order.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"summary": note})
}

// Briefing returns the AI priority update over the company's active orders.
func (h *OrderHandler) Briefing(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), companyIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	briefing, err := h.ai.DailyBriefing(c.Request.Context(), list)
	if err != nil {
		h.logger.Warn("daily briefing fell back", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"briefing": briefing})
}
