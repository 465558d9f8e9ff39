package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/server/handlers"
	"github.com/pureclean/platform/internal/server/middleware"
	"github.com/pureclean/platform/internal/service/auth"
)

// Handlers bundles every HTTP adapter the router mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Intake   *handlers.IntakeHandler
	Orders   *handlers.OrderHandler
	Company  *handlers.CompanyHandler
	Employee *handlers.EmployeeHandler
	Report   *handlers.ReportHandler
	Settings *handlers.SettingsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, gate *auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	tokens := gate.Tokens()

	api := r.Group("/api")
	{
		api.POST("/login", h.Auth.Login)
		api.POST("/logout", h.Auth.Logout)

		// Customer intake. The tenant context comes from the QR-code path
		// segment; the plain route falls back to a remembered admin session.
		api.POST("/orders", middleware.OptionalSession(tokens), h.Intake.Create)
		api.POST("/c/:companyId/orders", h.Intake.Create)
		api.GET("/orders/:id", h.Intake.Get)
	}

	admin := api.Group("/admin",
		middleware.RequireAdmin(tokens),
		middleware.RequireActiveSubscription(gate, logger))
	{
		admin.GET("/orders", h.Orders.List)
		admin.GET("/orders/:id", h.Orders.Get)
		admin.PATCH("/orders/:id", h.Orders.Update)
		admin.DELETE("/orders/:id", h.Orders.Delete)
		admin.PUT("/orders/:id/status", h.Orders.SetStatus)
		admin.PUT("/orders/:id/payment", h.Orders.SavePayment)
		admin.POST("/orders/:id/settle", h.Orders.Settle)
		admin.GET("/orders/:id/summary", h.Orders.Summary)
		admin.GET("/briefing", h.Orders.Briefing)

		admin.GET("/employees", h.Employee.List)
		admin.POST("/employees", h.Employee.Create)
		admin.GET("/employees/:id", h.Employee.Get)
		admin.PATCH("/employees/:id", h.Employee.Update)
		admin.DELETE("/employees/:id", h.Employee.Delete)
		admin.POST("/employees/:id/attendance/:date", h.Employee.MarkAttendance)
		admin.DELETE("/employees/:id/attendance/:date", h.Employee.UnmarkAttendance)
		admin.GET("/employees/:id/pay", h.Employee.MonthlyPay)

		admin.GET("/expenses", h.Report.ListExpenses)
		admin.POST("/expenses", h.Report.CreateExpense)
		admin.DELETE("/expenses/:id", h.Report.DeleteExpense)

		admin.GET("/reports/daily", h.Report.Daily)
		admin.GET("/reports/monthly", h.Report.Monthly)

		admin.GET("/profile", h.Settings.GetProfile)
		admin.PUT("/profile", h.Settings.SaveProfile)
		admin.GET("/settings", h.Settings.GetSettings)
		admin.PUT("/settings", h.Settings.SaveSettings)
	}

	super := api.Group("/superadmin", middleware.RequireSuperAdmin(tokens))
	{
		super.GET("/companies", h.Company.List)
		super.POST("/companies", h.Company.Create)
		super.GET("/companies/:id", h.Company.Get)
		super.PATCH("/companies/:id", h.Company.Update)
		super.DELETE("/companies/:id", h.Company.Delete)
		super.POST("/companies/:id/toggle", h.Company.Toggle)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.String("client_ip", c.ClientIP()))
	}
}
