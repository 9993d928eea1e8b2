package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
)

type accessRepository struct {
	db *DB
}

func NewAccessRepository(db *DB) repository.AccessRepository {
	return &accessRepository{db: db}
}

const accessColumns = `
	id, user_id, company_id, role,
	can_access_overview, can_access_projects, can_access_crops, can_access_financials,
	can_access_sales, can_access_purchases, can_access_inventory, can_access_reports,
	can_export_data, can_modify_filters, can_view_costs, can_view_profits,
	created_at, updated_at`

func (r *accessRepository) GetAccessRecord(ctx context.Context, userID int64) (*domain.AccessRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM dashboard_access WHERE user_id = $1`, accessColumns)

	var record domain.AccessRecord
	if err := r.db.GetContext(ctx, &record, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get access record for user %d: %w", userID, err)
	}

	return &record, nil
}

func (r *accessRepository) CreateAccessRecord(ctx context.Context, userID, companyID int64, role string, perms domain.Permissions) (*domain.AccessRecord, error) {
	query := fmt.Sprintf(`
		INSERT INTO dashboard_access
			(user_id, company_id, role,
			 can_access_overview, can_access_projects, can_access_crops, can_access_financials,
			 can_access_sales, can_access_purchases, can_access_inventory, can_access_reports,
			 can_export_data, can_modify_filters, can_view_costs, can_view_profits,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING %s
	`, accessColumns)

	var record domain.AccessRecord
	err := r.db.GetContext(ctx, &record, query,
		userID, companyID, role,
		perms.Tabs.Overview, perms.Tabs.Projects, perms.Tabs.Crops, perms.Tabs.Financials,
		perms.Tabs.Sales, perms.Tabs.Purchases, perms.Tabs.Inventory, perms.Tabs.Reports,
		perms.Permissions.ExportData, perms.Permissions.ModifyFilters,
		perms.Permissions.ViewCosts, perms.Permissions.ViewProfits)
	if err != nil {
		return nil, fmt.Errorf("failed to create access record for user %d: %w", userID, err)
	}

	return &record, nil
}

func (r *accessRepository) UpdateAccessRole(ctx context.Context, id int64, role string, perms domain.Permissions) error {
	query := `
		UPDATE dashboard_access SET
			role = $1,
			can_access_overview = $2, can_access_projects = $3, can_access_crops = $4,
			can_access_financials = $5, can_access_sales = $6, can_access_purchases = $7,
			can_access_inventory = $8, can_access_reports = $9,
			can_export_data = $10, can_modify_filters = $11, can_view_costs = $12,
			can_view_profits = $13,
			updated_at = NOW()
		WHERE id = $14
	`

	res, err := r.db.ExecContext(ctx, query,
		role,
		perms.Tabs.Overview, perms.Tabs.Projects, perms.Tabs.Crops,
		perms.Tabs.Financials, perms.Tabs.Sales, perms.Tabs.Purchases,
		perms.Tabs.Inventory, perms.Tabs.Reports,
		perms.Permissions.ExportData, perms.Permissions.ModifyFilters,
		perms.Permissions.ViewCosts, perms.Permissions.ViewProfits,
		id)
	if err != nil {
		return fmt.Errorf("failed to update access record %d: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}

	return nil
}
