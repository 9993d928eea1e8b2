package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/jmoiron/sqlx"
)

type financeRepository struct {
	db *DB
}

func NewFinanceRepository(db *DB) repository.FinanceRepository {
	return &financeRepository{db: db}
}

const moveColumns = `
	id,
	move_type,
	state,
	invoice_date,
	COALESCE(amount_total, 0) AS amount_total,
	COALESCE(amount_residual, 0) AS amount_residual,
	company_id`

func (r *financeRepository) openMoves(ctx context.Context, companyID int64, moveType string) ([]domain.AccountMove, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM account_moves
		WHERE company_id = $1
		  AND move_type = $2
		  AND state = 'posted'
		  AND amount_residual > 0
		ORDER BY invoice_date
	`, moveColumns)

	var moves []domain.AccountMove
	if err := sqlx.SelectContext(ctx, r.db, &moves, query, companyID, moveType); err != nil {
		return nil, fmt.Errorf("failed to fetch open %s moves: %w", moveType, err)
	}

	return moves, nil
}

func (r *financeRepository) OpenReceivables(ctx context.Context, companyID int64) ([]domain.AccountMove, error) {
	return r.openMoves(ctx, companyID, domain.MoveTypeCustomerInvoice)
}

func (r *financeRepository) OpenPayables(ctx context.Context, companyID int64) ([]domain.AccountMove, error) {
	return r.openMoves(ctx, companyID, domain.MoveTypeVendorBill)
}

// PostedMoveTotals sums posted move amounts per move type inside the window.
func (r *financeRepository) PostedMoveTotals(ctx context.Context, companyID int64, from, to time.Time) (map[string]float64, error) {
	rows := []struct {
		MoveType string  `db:"move_type"`
		Total    float64 `db:"total"`
	}{}

	query := `
		SELECT move_type, COALESCE(SUM(amount_total), 0) AS total
		FROM account_moves
		WHERE company_id = $1
		  AND state = 'posted'
		  AND invoice_date >= $2 AND invoice_date <= $3
		GROUP BY move_type
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, companyID, from, to); err != nil {
		return nil, fmt.Errorf("failed to aggregate posted moves: %w", err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.MoveType] = row.Total
	}
	return out, nil
}
