package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
)

type configRepository struct {
	db *DB
}

func NewConfigRepository(db *DB) repository.ConfigRepository {
	return &configRepository{db: db}
}

const configColumns = `
	id, name, user_id, company_id, dashboard_type, access_level,
	auto_refresh, refresh_interval, active, created_at, updated_at`

func (r *configRepository) GetConfigByUser(ctx context.Context, userID int64) (*domain.DashboardConfig, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM dashboard_configs
		WHERE user_id = $1 AND active
		ORDER BY id
		LIMIT 1
	`, configColumns)

	var cfg domain.DashboardConfig
	if err := r.db.GetContext(ctx, &cfg, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get config for user %d: %w", userID, err)
	}

	return &cfg, nil
}

func (r *configRepository) GetConfig(ctx context.Context, id int64) (*domain.DashboardConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM dashboard_configs WHERE id = $1`, configColumns)

	var cfg domain.DashboardConfig
	if err := r.db.GetContext(ctx, &cfg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get config %d: %w", id, err)
	}

	return &cfg, nil
}

func (r *configRepository) CreateConfig(ctx context.Context, cfg *domain.DashboardConfig) (*domain.DashboardConfig, error) {
	query := fmt.Sprintf(`
		INSERT INTO dashboard_configs
			(name, user_id, company_id, dashboard_type, access_level,
			 auto_refresh, refresh_interval, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s
	`, configColumns)

	var created domain.DashboardConfig
	err := r.db.GetContext(ctx, &created, query,
		cfg.Name, cfg.UserID, cfg.CompanyID, cfg.DashboardType, cfg.AccessLevel,
		cfg.AutoRefresh, cfg.RefreshInterval, cfg.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}

	return &created, nil
}

func (r *configRepository) UpdateConfig(ctx context.Context, cfg *domain.DashboardConfig) error {
	query := `
		UPDATE dashboard_configs SET
			name = $1, dashboard_type = $2, access_level = $3,
			auto_refresh = $4, refresh_interval = $5, active = $6,
			updated_at = NOW()
		WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		cfg.Name, cfg.DashboardType, cfg.AccessLevel,
		cfg.AutoRefresh, cfg.RefreshInterval, cfg.Active, cfg.ID)
	if err != nil {
		return fmt.Errorf("failed to update config %d: %w", cfg.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *configRepository) DeleteConfig(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dashboard_configs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete config %d: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}

	return nil
}
