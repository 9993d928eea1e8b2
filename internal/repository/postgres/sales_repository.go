package postgres

import (
	"context"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) OrdersForProjects(ctx context.Context, projectIDs []int64) ([]domain.SaleOrder, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT
			o.id,
			o.name,
			COALESCE(pt.name, '') AS partner_name,
			COALESCE(o.cultivation_project_id, 0) AS project_id,
			o.state,
			COALESCE(o.amount_total, 0) AS amount_total,
			o.date_order,
			o.company_id
		FROM sale_orders o
		LEFT JOIN partners pt ON o.partner_id = pt.id
		WHERE o.cultivation_project_id = ANY($1)
		ORDER BY o.date_order DESC
	`

	var orders []domain.SaleOrder
	if err := sqlx.SelectContext(ctx, r.db, &orders, query, pq.Array(projectIDs)); err != nil {
		return nil, fmt.Errorf("failed to fetch sale orders: %w", err)
	}

	return orders, nil
}

func (r *salesRepository) TopProducts(ctx context.Context, companyID int64, limit int) ([]domain.ProductSales, error) {
	rows := []struct {
		ProductName string  `db:"product_name"`
		Quantity    float64 `db:"quantity"`
		Amount      float64 `db:"amount"`
	}{}

	query := `
		SELECT
			COALESCE(pr.name, '') AS product_name,
			COALESCE(SUM(l.quantity), 0) AS quantity,
			COALESCE(SUM(l.price_subtotal), 0) AS amount
		FROM sale_order_lines l
		JOIN sale_orders o ON l.order_id = o.id
		LEFT JOIN products pr ON l.product_id = pr.id
		WHERE o.company_id = $1 AND o.state IN ('sale', 'done')
		GROUP BY pr.name
		ORDER BY amount DESC
		LIMIT $2
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, companyID, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch top products: %w", err)
	}

	out := make([]domain.ProductSales, len(rows))
	for i, row := range rows {
		out[i] = domain.ProductSales{ProductName: row.ProductName, Quantity: row.Quantity, Amount: row.Amount}
	}
	return out, nil
}

func (r *salesRepository) MonthlySales(ctx context.Context, companyID int64, months int) ([]repository.MonthlyAmount, error) {
	query := `
		SELECT
			TO_CHAR(date_trunc('month', date_order), 'YYYY-MM') AS month,
			COALESCE(SUM(amount_total), 0) AS amount
		FROM sale_orders
		WHERE company_id = $1
		  AND state IN ('sale', 'done')
		  AND date_order > NOW() - ($2 || ' months')::interval
		GROUP BY 1
		ORDER BY 1
	`

	var rows []repository.MonthlyAmount
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, companyID, months); err != nil {
		return nil, fmt.Errorf("failed to fetch monthly sales: %w", err)
	}

	return rows, nil
}
