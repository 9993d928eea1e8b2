package postgres

import (
	"context"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/jmoiron/sqlx"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) AgriculturalProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT
			p.id,
			p.name,
			COALESCE(c.name, '') AS category_name,
			COALESCE(p.qty_available, 0) AS qty_available,
			COALESCE(p.standard_price, 0) AS standard_price
		FROM products p
		LEFT JOIN product_categories c ON p.category_id = c.id
		WHERE c.name IN ('Agricultural', 'Seeds', 'Fertilizers', 'Pesticides')
		ORDER BY p.name
	`

	var products []domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query); err != nil {
		return nil, fmt.Errorf("failed to fetch agricultural products: %w", err)
	}

	return products, nil
}
