package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/config"
	"github.com/google/uuid"
)

// invites issues fresh invite codes against the configured database and
// prints them one per line. Each printed code admits exactly one
// registration.
func main() {
	count := flag.Int("count", 1, "number of invite codes to issue")
	quiet := flag.Bool("quiet", false, "print only the codes, no log output")
	flag.Parse()

	if *count < 1 {
		log.Fatalf("count must be at least 1, got %d", *count)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	if *quiet {
		appLogger = logger.NewNoopLogger()
	}

	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	uow := dbManager.CreateUnitOfWork()
	invites := uow.InviteRepository(context.Background())

	issued := 0
	for i := 0; i < *count; i++ {
		code := uuid.NewString()

		invite, err := entity.NewInviteCode(code, tp)
		if err != nil {
			log.Fatalf("Failed to build invite code: %v", err)
		}

		if err := invites.Create(context.Background(), invite); err != nil {
			appLogger.Error("Failed to issue invite code", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		fmt.Println(code)
		issued++
	}

	appLogger.Info("Issued invite codes", map[string]any{
		"count": issued,
	})
}
