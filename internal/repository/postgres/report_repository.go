package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type reportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `
	r.id,
	COALESCE(r.name, '') AS name,
	r.project_id,
	COALESCE(p.name, '') AS project_name,
	COALESCE(f.name, '') AS farm_name,
	r.operation_type,
	r.date,
	COALESCE(r.actual_cost, 0) AS actual_cost,
	r.state,
	r.company_id`

func (r *reportRepository) RecentReports(ctx context.Context, projectIDs []int64, since time.Time, limit int) ([]domain.DailyReport, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM daily_reports r
		LEFT JOIN cultivation_projects p ON r.project_id = p.id
		LEFT JOIN farms f ON p.farm_id = f.id
		WHERE r.project_id = ANY($1) AND r.date >= $2
		ORDER BY r.date DESC
		LIMIT $3
	`, reportColumns)

	var reports []domain.DailyReport
	if err := sqlx.SelectContext(ctx, r.db, &reports, query, pq.Array(projectIDs), since, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch recent reports: %w", err)
	}

	return reports, nil
}

func (r *reportRepository) ProjectReports(ctx context.Context, projectID int64) ([]domain.DailyReport, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM daily_reports r
		LEFT JOIN cultivation_projects p ON r.project_id = p.id
		LEFT JOIN farms f ON p.farm_id = f.id
		WHERE r.project_id = $1
		ORDER BY r.date DESC
	`, reportColumns)

	var reports []domain.DailyReport
	if err := sqlx.SelectContext(ctx, r.db, &reports, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to fetch project reports: %w", err)
	}

	return reports, nil
}

func (r *reportRepository) CostByOperation(ctx context.Context, companyID int64, from, to time.Time) (map[string]float64, error) {
	rows := []struct {
		OperationType string  `db:"operation_type"`
		Total         float64 `db:"total"`
	}{}

	query := `
		SELECT operation_type, COALESCE(SUM(actual_cost), 0) AS total
		FROM daily_reports
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		GROUP BY operation_type
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, companyID, from, to); err != nil {
		return nil, fmt.Errorf("failed to aggregate report costs: %w", err)
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.OperationType] = row.Total
	}
	return out, nil
}

func (r *reportRepository) CountByState(ctx context.Context, companyID int64, from, to time.Time) (map[string]int, error) {
	rows := []struct {
		State string `db:"state"`
		Count int    `db:"count"`
	}{}

	query := `
		SELECT state, COUNT(*) AS count
		FROM daily_reports
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		GROUP BY state
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, companyID, from, to); err != nil {
		return nil, fmt.Errorf("failed to count reports by state: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.State] = row.Count
	}
	return out, nil
}
