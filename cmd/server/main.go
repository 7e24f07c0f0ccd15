package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	httpadapter "github.com/natansalgado/otabank/internal/adapter/http"
	"github.com/natansalgado/otabank/internal/adapter/repository/postgres"
	"github.com/natansalgado/otabank/internal/config"
	"github.com/natansalgado/otabank/internal/usecase/account"
	"github.com/natansalgado/otabank/internal/usecase/client"
	"github.com/natansalgado/otabank/internal/usecase/ledger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load environment and configuration
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// 2. Setup database and schema
	db, err := postgres.NewDB(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}
	logger.Info("Database connected and schema ready")

	// 3. Initialize repositories
	clientRepo := postgres.NewClientRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// 4. Initialize services (use cases)
	ledgerService := ledger.NewLedgerService(accountRepo, transactionRepo)
	accountService := account.NewAccountService(accountRepo, clientRepo)
	clientService := client.NewClientService(clientRepo)

	// 5. Start HTTP server
	router := httpadapter.NewRouter(logger, ledgerService, accountService, clientService)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// newLogger builds a production zap logger at the configured level
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("Shutting down gracefully", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("HTTP server stopped")
}
