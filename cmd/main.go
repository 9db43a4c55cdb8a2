package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/codeclash-2026.net/internal/adapter/judge0"
	"gitlab.com/codeclash-2026.net/internal/adapter/logging"
	"gitlab.com/codeclash-2026.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/codeclash-2026.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codeclash-2026.net/internal/adapter/postgres/userrepository"
	"gitlab.com/codeclash-2026.net/internal/adapter/redis/notifier"
	"gitlab.com/codeclash-2026.net/internal/config"
	"gitlab.com/codeclash-2026.net/internal/core/services/judge"
	logger2 "gitlab.com/codeclash-2026.net/internal/global/logger"
	"gitlab.com/codeclash-2026.net/internal/handlers"
	http2 "gitlab.com/codeclash-2026.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting judge service")

	sysCfg := config.NewSystemConfig()
	if sysCfg.DebugMode {
		logger2.Logger = logging.NewDebugZapLogger()
	}
	logger := logger2.Logger

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	schema := sysCfg.PostgresConfig.Schema
	problemStore := problemrepository.New(db, logger, schema)
	submissionLedger := submissionrepository.New(db, logger, schema)
	userStore := userrepository.New(db, logger, schema)
	execClient := judge0.NewClient(sysCfg.ExecBackendConfig, logger)
	userNotifier := notifier.NewRedisNotifier(redisClient, logger)

	// services
	judgeSvc := judge.NewJudgeService(
		problemStore,
		submissionLedger,
		userStore,
		execClient,
		userNotifier,
		logger,
		sysCfg.ExecBackendConfig.MaxInflightBatches,
		sysCfg.ExecBackendConfig.MaxWait+30*time.Second,
	)
	serviceProvider := http2.NewServiceProvider(judgeSvc)
	middleware := handlers.New(sysCfg.JwtConfig.Secret)

	// server
	httpServer := http2.NewServer(sysCfg.ServerPort, "judgeService", *serviceProvider, middleware, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
	logger.Sync()
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
