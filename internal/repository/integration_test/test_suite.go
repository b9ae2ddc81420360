package integration_test

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"jamii/internal/pkg/config"
	"jamii/internal/pkg/postgres"
	"jamii/pkg/logger/zap_adapter"
	"jamii/pkg/querier"
	"jamii/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	suiteOnce       sync.Once
)

func setup() {
	suiteOnce.Do(func() {
		// godotenv.Load(.env.test) не вызываем так как Makefile подгружает их
		cfg, err := config.LoadDatabase()
		if err != nil {
			log.Fatalf("load database config: %v", err)
		}

		zapLogger, err := zap_adapter.NewZapAdapter()
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		poolInstance, err = postgres.NewConnPool(context.Background(), zapLogger, cfg)
		if err != nil {
			panic(err)
		}

		querierInstance = querier.New(poolInstance, pgxv5.DefaultCtxGetter)
	})
}

func GetQuerier() *querier.Querier {
	setup()
	return querierInstance
}

// GetTxManager возвращает менеджер поверх того же пула, что и GetQuerier,
// чтобы репозитории видели открытую транзакцию через контекст.
func GetTxManager() *tx.Manager {
	setup()
	return tx.New(poolInstance)
}

func SetupDB(t *testing.T, setupSql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE outbox, bids, order_transactions, orders, ledger_accounts, products CASCADE;
	`)
	require.NoError(t, err)
}
