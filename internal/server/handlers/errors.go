package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pureclean/platform/internal/service/auth"
	"github.com/pureclean/platform/internal/service/company"
	"github.com/pureclean/platform/internal/service/orders"
	"github.com/pureclean/platform/internal/service/reporting"
	"github.com/pureclean/platform/internal/service/staff"
)

// respondServiceError maps service sentinel errors onto HTTP status codes
// and the common {"error": "..."} envelope. Unknown errors become opaque
// 500s; the caller is expected to have logged the details already.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrSubscriptionInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrNoCompanyContext):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no company context, rescan the QR code and try again"})
	case errors.Is(err, orders.ErrInvalidStatus),
		errors.Is(err, staff.ErrBadDate),
		errors.Is(err, reporting.ErrBadDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrNotEligible):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrNotFound),
		errors.Is(err, company.ErrNotFound),
		errors.Is(err, staff.ErrNotFound),
		errors.Is(err, reporting.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error, please retry"})
	}
}
