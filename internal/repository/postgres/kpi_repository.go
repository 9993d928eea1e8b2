package postgres

import (
	"context"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type kpiRepository struct {
	db *DB
}

func NewKPIRepository(db *DB) repository.KPIRepository {
	return &kpiRepository{db: db}
}

// StateAggregates groups the filtered project set by state and sums the
// financial columns in SQL so headline numbers never load full rows.
func (r *kpiRepository) StateAggregates(ctx context.Context, companyID int64, filter *domain.DashboardFilter) ([]repository.StateAggregate, error) {
	filterClause, filterArgs := buildProjectFilterClause(filter, "p.", 2)

	query := fmt.Sprintf(`
		SELECT
			p.state,
			COUNT(*) AS count,
			COALESCE(SUM(p.budget), 0) AS budget,
			COALESCE(SUM(p.actual_cost), 0) AS actual_cost,
			COALESCE(SUM(p.revenue), 0) AS revenue,
			COALESCE(SUM(p.field_area), 0) AS field_area
		FROM cultivation_projects p
		WHERE p.company_id = $1 %s
		GROUP BY p.state
	`, filterClause)

	args := append([]interface{}{companyID}, filterArgs...)

	var aggregates []repository.StateAggregate
	if err := sqlx.SelectContext(ctx, r.db, &aggregates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate project states: %w", err)
	}

	log.Debug().Int("states", len(aggregates)).Int64("company_id", companyID).Msg("state aggregates fetched")

	return aggregates, nil
}
