package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/domain/models"
	"github.com/pureclean/platform/internal/service/company"
)

// CompanyHandler serves the super-admin tenant provisioning surface.
type CompanyHandler struct {
	svc    *company.Service
	logger *zap.Logger
}

// NewCompanyHandler constructs the HTTP handler adapter.
func NewCompanyHandler(svc *company.Service, logger *zap.Logger) *CompanyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyHandler{svc: svc, logger: logger}
}

type createCompanyRequest struct {
	Name      string    `json:"name" binding:"required"`
	Login     string    `json:"login" binding:"required"`
	Password  string    `json:"password" binding:"required"`
	IsEnabled bool      `json:"isEnabled"`
	ValidFrom time.Time `json:"validFrom" binding:"required"`
	ValidTo   time.Time `json:"validTo" binding:"required"`
}

// Create provisions a new laundry business.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company payload"})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), company.CreateInput{
		Name:      req.Name,
		Login:     req.Login,
		Password:  req.Password,
		IsEnabled: req.IsEnabled,
		ValidFrom: req.ValidFrom,
		ValidTo:   req.ValidTo,
	})
	if err != nil {
		h.logger.Error("create company failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List returns every provisioned company.
func (h *CompanyHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list companies failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	if list == nil {
		list = []models.Company{}
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one company.
func (h *CompanyHandler) Get(c *gin.Context) {
	found, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// Update applies a partial company update.
func (h *CompanyHandler) Update(c *gin.Context) {
	var patch models.CompanyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company patch"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle flips the manual subscription kill switch.
func (h *CompanyHandler) Toggle(c *gin.Context) {
	toggled, err := h.svc.ToggleEnabled(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toggled)
}

// Delete removes the company document. No cascade: the tenant's orders,
// employees and expenses stay behind as orphans.
func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
