package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/deal-ledger/internal/config"
	"github.com/segyhp/deal-ledger/internal/database"
	"github.com/segyhp/deal-ledger/internal/handler"
	"github.com/segyhp/deal-ledger/internal/repository"
	"github.com/segyhp/deal-ledger/internal/service"
	"github.com/segyhp/deal-ledger/pkg/logger"
	"github.com/segyhp/deal-ledger/pkg/response"
)

func main() {
	// .env is optional; real deployments configure through the environment.
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

	if err := database.MigrateUp(db); err != nil {
		logger.Fatal("running migrations", "error", err)
	}

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	txManager := repository.NewTxManager(db)
	dealRepo := repository.NewDealRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	dealerRepo := repository.NewDealerRepository(db)

	ledgerService := service.NewLedgerService(txManager, dealRepo, paymentRepo, dealerRepo, redisClient, cfg)

	dealHandler := handler.NewDealHandler(ledgerService)
	paymentHandler := handler.NewPaymentHandler(ledgerService)
	dealerHandler := handler.NewDealerHandler(ledgerService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	router := setupRoutes(dealHandler, paymentHandler, dealerHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", "error", err)
	}

	logger.Info("server exited")
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	dealHandler *handler.DealHandler,
	paymentHandler *handler.PaymentHandler,
	dealerHandler *handler.DealerHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)
	router.Use(response.JSONMiddleware)

	// Health checks
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/deals", dealHandler.CreateDeal).Methods("POST")
	api.HandleFunc("/deals/{dealId}", dealHandler.GetDeal).Methods("GET")
	api.HandleFunc("/deals/{dealId}/installments", dealHandler.AddInstallments).Methods("POST")
	api.HandleFunc("/deals/{dealId}/payments", paymentHandler.AllocatePayment).Methods("POST")
	api.HandleFunc("/deals/{dealId}/ledger", dealHandler.GetLedger).Methods("GET")
	api.HandleFunc("/payments/cross-deal", paymentHandler.AllocateCrossDeal).Methods("POST")
	api.HandleFunc("/dealers", dealerHandler.CreateDealer).Methods("POST")
	api.HandleFunc("/dealers/{dealerId}", dealerHandler.GetDealer).Methods("GET")

	return router
}
