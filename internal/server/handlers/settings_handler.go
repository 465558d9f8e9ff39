package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/domain/models"
)

// SettingsStore is the slice of the document store holding the two
// deployment-wide singleton documents.
type SettingsStore interface {
	LoadAdminProfile(ctx context.Context) (models.AdminProfile, error)
	SaveAdminProfile(ctx context.Context, profile models.AdminProfile) error
	LoadDashboardSettings(ctx context.Context) (models.DashboardSettings, error)
	SaveDashboardSettings(ctx context.Context, settings models.DashboardSettings) error
}

// SettingsHandler serves the admin profile and dashboard settings
// singletons. Reads degrade to the defaults on store failure.
type SettingsHandler struct {
	store  SettingsStore
	logger *zap.Logger
}

// NewSettingsHandler constructs the HTTP handler adapter.
func NewSettingsHandler(store SettingsStore, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{store: store, logger: logger}
}

// GetProfile returns the admin display profile.
func (h *SettingsHandler) GetProfile(c *gin.Context) {
	profile, err := h.store.LoadAdminProfile(c.Request.Context())
	if err != nil {
		h.logger.Error("load admin profile failed", zap.Error(err))
		profile = models.DefaultAdminProfile()
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile overwrites the admin display profile.
func (h *SettingsHandler) SaveProfile(c *gin.Context) {
	var profile models.AdminProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	if err := h.store.SaveAdminProfile(c.Request.Context(), profile); err != nil {
		h.logger.Error("save admin profile failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetSettings returns the dashboard settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.LoadDashboardSettings(c.Request.Context())
	if err != nil {
		h.logger.Error("load dashboard settings failed", zap.Error(err))
		settings = models.DefaultDashboardSettings()
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings overwrites the dashboard settings.
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var settings models.DashboardSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}

	if err := h.store.SaveDashboardSettings(c.Request.Context(), settings); err != nil {
		h.logger.Error("save dashboard settings failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
