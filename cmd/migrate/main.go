package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"jamii/internal/pkg/config"
	"jamii/internal/pkg/dotenv"
	"jamii/internal/pkg/postgres"
	"jamii/migrations"
	"jamii/pkg/logger"
	"jamii/pkg/logger/zap_adapter"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// migrate применяет встроенные SQL-миграции: migrate [up|down|status|version].
func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var log logger.Logger = zapLogger

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			log.Error("failed to load .env file", logger.NewField("error", err))
			os.Exit(1)
		}
	}

	flag.Parse()
	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Error("load config", logger.NewField("error", err))
		os.Exit(1)
	}

	if err := run(context.Background(), log, cfg, command); err != nil {
		log.Error("migration failed",
			logger.NewField("command", command),
			logger.NewField("error", err),
		)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger, cfg *config.Database, command string) error {
	pool, err := postgres.NewConnPool(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("close sql.DB", logger.NewField("error", err))
		}
	}()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	log.Info("migrations done", logger.NewField("command", command))
	return nil
}
