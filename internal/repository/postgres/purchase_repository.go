package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/jmoiron/sqlx"
)

type purchaseRepository struct {
	db *DB
}

func NewPurchaseRepository(db *DB) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) OrdersSince(ctx context.Context, companyID int64, since time.Time) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT
			o.id,
			o.name,
			COALESCE(pt.name, '') AS partner_name,
			o.state,
			COALESCE(o.amount_total, 0) AS amount_total,
			o.date_order,
			o.company_id
		FROM purchase_orders o
		LEFT JOIN partners pt ON o.partner_id = pt.id
		WHERE o.company_id = $1
		  AND o.date_order >= $2
		  AND o.state IN ('purchase', 'done')
		ORDER BY o.date_order DESC
	`

	var orders []domain.PurchaseOrder
	if err := sqlx.SelectContext(ctx, r.db, &orders, query, companyID, since); err != nil {
		return nil, fmt.Errorf("failed to fetch purchase orders: %w", err)
	}

	return orders, nil
}

func (r *purchaseRepository) TopSuppliers(ctx context.Context, companyID int64, since time.Time, limit int) ([]domain.SupplierSpend, error) {
	rows := []struct {
		SupplierName string  `db:"supplier_name"`
		OrderCount   int     `db:"order_count"`
		TotalAmount  float64 `db:"total_amount"`
	}{}

	query := `
		SELECT
			COALESCE(pt.name, '') AS supplier_name,
			COUNT(*) AS order_count,
			COALESCE(SUM(o.amount_total), 0) AS total_amount
		FROM purchase_orders o
		LEFT JOIN partners pt ON o.partner_id = pt.id
		WHERE o.company_id = $1
		  AND o.date_order >= $2
		  AND o.state IN ('purchase', 'done')
		GROUP BY pt.name
		ORDER BY total_amount DESC
		LIMIT $3
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, companyID, since, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch top suppliers: %w", err)
	}

	out := make([]domain.SupplierSpend, len(rows))
	for i, row := range rows {
		out[i] = domain.SupplierSpend{SupplierName: row.SupplierName, OrderCount: row.OrderCount, TotalAmount: row.TotalAmount}
	}
	return out, nil
}
