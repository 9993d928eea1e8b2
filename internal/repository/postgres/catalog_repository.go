package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/jmoiron/sqlx"
)

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func getOne[T any](ctx context.Context, db *DB, query string, id int64) (*T, error) {
	var row T
	if err := db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup failed: %w", err)
	}
	return &row, nil
}

func (r *catalogRepository) GetFarm(ctx context.Context, id int64) (*domain.Farm, error) {
	return getOne[domain.Farm](ctx, r.db,
		`SELECT id, name, company_id FROM farms WHERE id = $1`, id)
}

func (r *catalogRepository) GetField(ctx context.Context, id int64) (*domain.Field, error) {
	return getOne[domain.Field](ctx, r.db,
		`SELECT id, name, farm_id, COALESCE(area, 0) AS area FROM farm_fields WHERE id = $1`, id)
}

func (r *catalogRepository) GetCrop(ctx context.Context, id int64) (*domain.Crop, error) {
	return getOne[domain.Crop](ctx, r.db,
		`SELECT id, name FROM crops WHERE id = $1`, id)
}

func (r *catalogRepository) GetCropBOM(ctx context.Context, id int64) (*domain.CropBOM, error) {
	return getOne[domain.CropBOM](ctx, r.db,
		`SELECT id, name, crop_id, COALESCE(budget, 0) AS budget FROM crop_boms WHERE id = $1`, id)
}

func (r *catalogRepository) ListCrops(ctx context.Context) ([]domain.Crop, error) {
	var crops []domain.Crop
	if err := sqlx.SelectContext(ctx, r.db, &crops, `SELECT id, name FROM crops ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return crops, nil
}

func (r *catalogRepository) CreateCrop(ctx context.Context, name string) (*domain.Crop, error) {
	var id int64
	if err := r.db.GetContext(ctx, &id, `INSERT INTO crops (name) VALUES ($1) RETURNING id`, name); err != nil {
		return nil, fmt.Errorf("failed to create crop: %w", err)
	}
	return &domain.Crop{ID: id, Name: name}, nil
}
