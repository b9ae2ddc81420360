package product

import (
	"context"
	"fmt"

	"jamii/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// GetByIDs возвращает только товары указанного магазина, отсутствующие id молча пропускаются.
func (r *Repository) GetByIDs(ctx context.Context, storeID string, ids []string) ([]entities.Product, error) {
	if len(ids) == 0 {
		return []entities.Product{}, nil
	}

	query, args, err := qb.
		Select("id", "store_id", "name", "price").
		From("products").
		Where(sq.Eq{"store_id": storeID, "id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected product repository getbyids error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected product repository getbyids error: %w", err)
	}
	defer rows.Close()

	products := make([]entities.Product, 0, len(ids))
	for rows.Next() {
		var productDB ProductDB
		if err := rows.Scan(&productDB.ID, &productDB.StoreID, &productDB.Name, &productDB.Price); err != nil {
			return nil, fmt.Errorf("unexpected product repository getbyids error: %w", err)
		}
		products = append(products, entities.Product{
			ID:      productDB.ID,
			StoreID: productDB.StoreID,
			Name:    productDB.Name,
			Price:   productDB.Price,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected product repository getbyids error: %w", err)
	}

	return products, nil
}
