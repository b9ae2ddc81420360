package account

import (
	"context"
	"errors"
	"fmt"

	"jamii/internal/service/settlement"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// GetAccount возвращает счет в платежном реестре магазина или курьера.
func (r *Repository) GetAccount(ctx context.Context, ownerID string) (string, error) {
	query := `SELECT account_id FROM ledger_accounts WHERE owner_id = $1`

	var accountID string
	if err := r.querier.QueryRow(ctx, query, ownerID).Scan(&accountID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", settlement.ErrAccountNotFound
		}
		return "", fmt.Errorf("unexpected account repository getaccount error: %w", err)
	}

	return accountID, nil
}
