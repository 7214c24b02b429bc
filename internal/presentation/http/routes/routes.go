package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restodesk/pos-api/internal/config"
	"github.com/restodesk/pos-api/internal/presentation/http/handler"
	"github.com/restodesk/pos-api/internal/presentation/http/middleware"
	"github.com/restodesk/pos-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Session    *handler.SessionHandler
	Checkout   *handler.CheckoutHandler
	Submission *handler.SubmissionHandler
	Shift      *handler.ShiftHandler
	Settings   *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Logger     *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-terminal rate limiter
		rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h)
		registerSubmissionRoutes(protected, h)
		registerShiftRoutes(protected, h)
		registerSettingsRoutes(protected, h)
		registerCatalogRoutes(protected, h)
	}

	return router
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	sessions := protected.Group("/sessions")
	{
		sessions.POST("", h.Session.Start)
		sessions.GET("/:id", h.Session.Get)
		sessions.DELETE("/:id", h.Session.End)

		// Cart
		sessions.POST("/:id/items", h.Session.AddItem)
		sessions.DELETE("/:id/items", h.Session.ClearCart)
		sessions.PATCH("/:id/items/:identifier", h.Session.UpdateItem)
		sessions.DELETE("/:id/items/:identifier", h.Session.RemoveItem)

		// Transaction context
		sessions.POST("/:id/context/take-away", h.Session.StartTakeAway)
		sessions.POST("/:id/context/dine-in", h.Session.StartDineIn)
		sessions.POST("/:id/context/quotation", h.Session.StartQuotationEdit)
		sessions.POST("/:id/context/conversion", h.Session.StartConversion)
		sessions.PUT("/:id/customer", h.Session.SetCustomer)
		sessions.GET("/:id/validate", h.Session.Validate)

		// Payment and submission
		sessions.POST("/:id/payment", h.Checkout.OpenPayment)
		sessions.GET("/:id/payment", h.Checkout.PaymentStatus)
		sessions.PUT("/:id/payment/amounts", h.Checkout.SetAmount)
		sessions.POST("/:id/submit/order", h.Checkout.SubmitOrder)
		sessions.POST("/:id/submit/quotation", h.Checkout.SubmitQuotation)
		sessions.POST("/:id/checkout", h.Checkout.Checkout)
	}
}

func registerSubmissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	submissions := protected.Group("/submissions")
	{
		submissions.GET("", h.Submission.List)
		submissions.GET("/:id", h.Submission.Get)
		submissions.POST("/:id/retry", h.Submission.Retry)
		submissions.POST("/:id/receipt", h.Submission.PrintReceipt)
	}
}

func registerShiftRoutes(protected *gin.RouterGroup, h *Handlers) {
	shifts := protected.Group("/shifts")
	{
		shifts.POST("", h.Shift.Open)
		shifts.GET("", h.Shift.List)
		shifts.GET("/current", h.Shift.Current)
		shifts.POST("/close", h.Shift.Close)
		shifts.GET("/:id", h.Shift.Get)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.Get)
		settings.PUT("", h.Settings.Update)
		settings.GET("/payment-methods", h.Settings.ListPaymentMethods)
		settings.POST("/payment-methods", h.Settings.CreatePaymentMethod)
		settings.PATCH("/payment-methods/:id", h.Settings.UpdatePaymentMethod)
		settings.DELETE("/payment-methods/:id", h.Settings.DeletePaymentMethod)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	catalog := protected.Group("/catalog")
	{
		catalog.GET("/stock", h.Session.CheckStock)
		catalog.GET("/uoms", h.Session.UnitsOfMeasure)
	}
}
