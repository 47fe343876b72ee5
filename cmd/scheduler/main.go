package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/segyhp/deal-ledger/internal/config"
	"github.com/segyhp/deal-ledger/internal/database"
	"github.com/segyhp/deal-ledger/internal/repository"
	"github.com/segyhp/deal-ledger/internal/service"
	"github.com/segyhp/deal-ledger/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("loading configuration", "error", err)
	}

	if _, err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		logger.Fatal("initializing logger", "error", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("connecting to database", "error", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	txManager := repository.NewTxManager(db)
	dealRepo := repository.NewDealRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	dealerRepo := repository.NewDealerRepository(db)

	ledgerService := service.NewLedgerService(txManager, dealRepo, paymentRepo, dealerRepo, redisClient, cfg)

	c := cron.New(cron.WithSeconds())

	// Nightly accrual refresh keeps the cached projections warm so deal reads
	// stay cheap the next morning.
	_, err = c.AddFunc(cfg.Scheduler.AccrualCron, func() {
		refreshAccruals(ledgerService, dealRepo)
	})
	if err != nil {
		logger.Fatal("scheduling accrual refresh", "cron", cfg.Scheduler.AccrualCron, "error", err)
	}

	c.Start()
	logger.Info("scheduler started", "accrual_cron", cfg.Scheduler.AccrualCron)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	c.Stop()
	logger.Info("scheduler stopped")
}

func refreshAccruals(ledgerService *service.LedgerService, dealRepo repository.DealRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	logger.Info("accrual refresh started")

	deals, err := dealRepo.ListActive(ctx)
	if err != nil {
		logger.Error("listing active deals", "error", err)
		return
	}

	asOf := ledgerService.Today()
	refreshed := 0
	for _, deal := range deals {
		if _, err := ledgerService.UpdateAccruedInterest(ctx, deal.DealID, asOf); err != nil {
			logger.Warn("refreshing accrual", "deal_id", deal.DealID, "error", err)
			continue
		}
		refreshed++
	}

	logger.Info("accrual refresh finished",
		"deals", len(deals),
		"refreshed", refreshed,
		"duration", time.Since(start).String(),
	)
}
