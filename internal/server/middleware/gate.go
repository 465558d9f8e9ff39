package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/service/auth"
)

const sessionKey = "session"

// SessionFrom returns the session attached by the gate middleware. The
// second return is false on routes that never passed through the gate.
func SessionFrom(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return auth.Session{}, false
	}
	session, ok := v.(auth.Session)
	return session, ok
}

func bearerSession(c *gin.Context, tokens *auth.TokenManager) (auth.Session, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return auth.Session{}, false
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header {
		return auth.Session{}, false
	}
	session, err := tokens.Parse(tokenString)
	if err != nil {
		return auth.Session{}, false
	}
	return session, true
}

// RequireAdmin admits admin and super-admin sessions. Anyone else is sent
// back to login with a 401.
func RequireAdmin(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := bearerSession(c, tokens)
		if !ok || (!session.Admin && !session.SuperAdmin) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireSuperAdmin admits super-admin sessions only.
func RequireSuperAdmin(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := bearerSession(c, tokens)
		if !ok || !session.SuperAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireActiveSubscription blocks regular admins whose company subscription
// is missing or inactive. Super-admin sessions skip the check entirely.
// Must run after RequireAdmin.
func RequireActiveSubscription(gate *auth.Service, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		if !gate.CheckSubscription(c.Request.Context(), session) {
			logger.Info("blocked by subscription gate", zap.String("company_id", session.CompanyID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "subscription_inactive"})
			return
		}
		c.Next()
	}
}

// OptionalSession attaches a session when a valid token is present but never
// blocks. Used by the public intake route, where a logged-in admin's company
// can serve as the tenant context.
func OptionalSession(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, ok := bearerSession(c, tokens); ok {
			c.Set(sessionKey, session)
		}
		c.Next()
	}
}
