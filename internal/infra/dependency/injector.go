// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/config"
	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/usecase/latefee"
	"github.com/property-ledger/backend/internal/application/usecase/rent"
	"github.com/property-ledger/backend/internal/application/usecase/rentroll"
	"github.com/property-ledger/backend/internal/application/usecase/statement"
	"github.com/property-ledger/backend/internal/application/usecase/sweep"
	"github.com/property-ledger/backend/internal/infra/metrics"
	"github.com/property-ledger/backend/internal/infra/server/router"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/property-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/property-ledger/backend/internal/integration/lock"
	"github.com/property-ledger/backend/internal/integration/persistence"
	"github.com/property-ledger/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry
	Router   *router.Router
	Worker   *scheduler.Worker
}

// Options overrides collaborators that tests need to control.
type Options struct {
	Clock adapter.Clock
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil; sweeps then run without cross-process claims.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts Options) *Injector {
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Create repositories
	propertyRepo := persistence.NewPropertyRepository(db)
	leaseRepo := persistence.NewLeaseRepository(db)
	paymentRepo := persistence.NewRentPaymentRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	rollRepo := persistence.NewRentRollRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	var locker adapter.UnitLocker
	if redisClient != nil {
		locker = lock.NewRedisLocker(redisClient)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	// Create rent use cases
	prorateUseCase := rent.NewCalculateProratedRentUseCase()
	chargesUseCase := rent.NewCalculateMonthlyChargesUseCase(leaseRepo)
	increaseUseCase := rent.NewApplyRentIncreaseUseCase(leaseRepo, clock)
	recurringUseCase := rent.NewGenerateRecurringPaymentsUseCase(leaseRepo, paymentRepo, clock)
	discountUseCase := rent.NewApplyEarlyPaymentDiscountUseCase(leaseRepo, clock, cfg.Billing.EarlyPaymentDiscountRate)
	recordPaymentUseCase := rent.NewRecordPaymentUseCase(paymentRepo, leaseRepo, clock)
	recordFailureUseCase := rent.NewRecordPaymentFailureUseCase(paymentRepo)
	paymentLedgerUseCase := rent.NewGetPaymentLedgerUseCase(paymentRepo, ledgerRepo)

	// Create late fee use cases
	lateFeesUseCase := latefee.NewCalculateLateFeesUseCase(leaseRepo, paymentRepo, clock)
	overdueUseCase := latefee.NewMarkOverdueUseCase(leaseRepo, paymentRepo, clock)

	// Create accounting use cases
	rentRollUseCase := rentroll.NewGenerateRentRollUseCase(propertyRepo, leaseRepo, paymentRepo, expenseRepo, rollRepo, clock)
	incomeStatementUseCase := statement.NewGenerateIncomeStatementUseCase(propertyRepo, ledgerRepo, expenseRepo)
	taxReportUseCase := statement.NewGenerateTaxReportUseCase(propertyRepo, ledgerRepo, expenseRepo)

	// Create sweeps
	dailySweep := sweep.NewDailySweepUseCase(
		leaseRepo,
		increaseUseCase,
		recurringUseCase,
		overdueUseCase,
		lateFeesUseCase,
		clock,
		locker,
		cfg.Scheduler.LockTTL,
	)
	rentRollSweep := sweep.NewRentRollSweepUseCase(propertyRepo, rentRollUseCase, clock, locker, cfg.Scheduler.LockTTL)

	worker := scheduler.NewWorker(dailySweep, rentRollSweep, clock, ledgerMetrics, scheduler.WorkerConfig{
		Interval:   cfg.Scheduler.Interval,
		RunTimeout: cfg.Scheduler.RunTimeout,
	})

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		redisHealthChecker(redisClient),
	)

	accountingController := controller.NewAccountingController(
		rentRollUseCase,
		incomeStatementUseCase,
		taxReportUseCase,
	)

	rentController := controller.NewRentController(
		prorateUseCase,
		chargesUseCase,
		increaseUseCase,
		recurringUseCase,
		discountUseCase,
	)

	lateFeeController := controller.NewLateFeeController(
		lateFeesUseCase,
		overdueUseCase,
	)

	paymentController := controller.NewPaymentController(
		recordPaymentUseCase,
		recordFailureUseCase,
		paymentLedgerUseCase,
	)

	// Create middleware
	settlementLimiter := middleware.NewRateLimiter(cfg.Server.SettlementRateLimit, cfg.Server.SettlementRateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		accountingController,
		rentController,
		lateFeeController,
		paymentController,
		settlementLimiter,
		authMiddleware,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	)

	return &Injector{
		Config:   cfg,
		DB:       db,
		Redis:    redisClient,
		Registry: registry,
		Router:   r,
		Worker:   worker,
	}
}

func redisHealthChecker(client *redis.Client) controller.HealthChecker {
	if client == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
