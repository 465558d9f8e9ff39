package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/service/auth"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token   string       `json:"token"`
	Session auth.Session `json:"session"`
}

// Login checks credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login and password are required"})
		return
	}

	session, token, err := h.svc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.logger.Warn("login rejected", zap.String("login", req.Login), zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, Session: session})
}

// Logout exists for symmetry and audit logging; the token itself simply
// stops being presented by the client.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.logger.Info("logout")
	c.Status(http.StatusNoContent)
}
