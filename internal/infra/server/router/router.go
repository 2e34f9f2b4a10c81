// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	accountingController *controller.AccountingController
	rentController       *controller.RentController
	lateFeeController    *controller.LateFeeController
	paymentController    *controller.PaymentController
	settlementLimiter    *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
	metricsHandler       http.Handler
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	accountingController *controller.AccountingController,
	rentController *controller.RentController,
	lateFeeController *controller.LateFeeController,
	paymentController *controller.PaymentController,
	settlementLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:     healthController,
		accountingController: accountingController,
		rentController:       rentController,
		lateFeeController:    lateFeeController,
		paymentController:    paymentController,
		settlementLimiter:    settlementLimiter,
		authMiddleware:       authMiddleware,
		metricsHandler:       metricsHandler,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes. Every route requires a
// landlord or admin bearer token.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole(adapter.RoleLandlord, adapter.RoleAdmin),
	)

	// Accounting routes
	if r.accountingController != nil {
		accounting := v1.Group("/accounting")
		{
			accounting.GET("/rent-roll", r.accountingController.RentRoll)
			accounting.GET("/income-statement", r.accountingController.IncomeStatement)
			accounting.GET("/tax-report", r.accountingController.TaxReport)
		}
	}

	// Rent calculation routes
	if r.rentController != nil {
		v1.GET("/rent/prorate", r.rentController.Prorate)

		leases := v1.Group("/leases/:id")
		{
			leases.GET("/charges", r.rentController.Charges)
			leases.GET("/discount", r.rentController.Discount)
			leases.POST("/rent-increase", r.rentController.RentIncrease)
			leases.POST("/recurring-payments", r.rentController.RecurringPayments)
		}
	}

	// Late fee routes
	if r.lateFeeController != nil {
		leases := v1.Group("/leases/:id")
		{
			leases.POST("/late-fees", r.lateFeeController.LateFees)
			leases.POST("/overdue", r.lateFeeController.Overdue)
		}
	}

	// Settlement callbacks
	if r.paymentController != nil {
		payments := v1.Group("/rent-payments/:id")
		if r.settlementLimiter != nil {
			payments.Use(r.settlementLimiter.Middleware())
		}
		{
			payments.POST("/settlements", r.paymentController.Settle)
			payments.POST("/failures", r.paymentController.Fail)
			payments.GET("/ledger", r.paymentController.Ledger)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
