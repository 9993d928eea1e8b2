package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type projectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `
	p.id,
	p.name,
	COALESCE(p.code, '') AS code,
	p.farm_id,
	COALESCE(f.name, '') AS farm_name,
	p.field_id,
	p.crop_id,
	COALESCE(c.name, '') AS crop_name,
	p.crop_bom_id,
	p.state,
	p.start_date,
	p.planned_end_date,
	p.actual_end_date,
	COALESCE(p.budget, 0) AS budget,
	COALESCE(p.actual_cost, 0) AS actual_cost,
	COALESCE(p.revenue, 0) AS revenue,
	COALESCE(p.field_area, 0) AS field_area,
	COALESCE(p.area_unit, '') AS area_unit,
	COALESCE(p.planned_yield, 0) AS planned_yield,
	COALESCE(p.actual_yield, 0) AS actual_yield,
	p.company_id`

func (r *projectRepository) ListProjects(ctx context.Context, companyID int64, filter *domain.DashboardFilter) ([]domain.Project, error) {
	filterClause, filterArgs := buildProjectFilterClause(filter, "p.", 2)

	query := fmt.Sprintf(`
		SELECT %s
		FROM cultivation_projects p
		LEFT JOIN farms f ON p.farm_id = f.id
		LEFT JOIN crops c ON p.crop_id = c.id
		WHERE p.company_id = $1 %s
		ORDER BY p.start_date DESC NULLS LAST, p.id DESC
	`, projectColumns, filterClause)

	args := append([]interface{}{companyID}, filterArgs...)

	var projects []domain.Project
	if err := sqlx.SelectContext(ctx, r.db, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	log.Debug().Int("projects", len(projects)).Int64("company_id", companyID).Msg("projects fetched")

	return projects, nil
}

func (r *projectRepository) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cultivation_projects p
		LEFT JOIN farms f ON p.farm_id = f.id
		LEFT JOIN crops c ON p.crop_id = c.id
		WHERE p.id = $1
	`, projectColumns)

	var project domain.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}

	return &project, nil
}

func (r *projectRepository) CreateProject(ctx context.Context, in repository.CreateProjectInput) (*domain.Project, error) {
	// Project codes come from the database sequence so they stay unique
	// across concurrent creators.
	query := `
		INSERT INTO cultivation_projects
			(name, code, farm_id, field_id, crop_id, crop_bom_id,
			 start_date, planned_end_date, state, description, company_id,
			 budget, field_area)
		SELECT
			$1,
			'CP' || LPAD(nextval('cultivation_project_code_seq')::text, 5, '0'),
			$2, $3, $4, $5, $6, $7, $8, $9, $10,
			COALESCE(b.budget, 0),
			COALESCE(fl.area, 0)
		FROM (SELECT 1) one
		LEFT JOIN crop_boms b ON b.id = $5
		LEFT JOIN farm_fields fl ON fl.id = $3
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		in.Name, in.FarmID, in.FieldID, in.CropID, in.CropBOMID,
		in.StartDate, in.PlannedEndDate, in.State, in.Description, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return r.GetProject(ctx, id)
}

func (r *projectRepository) UpdateProject(ctx context.Context, id int64, in repository.UpdateProjectInput) error {
	var (
		sets []string
		args []interface{}
	)
	idx := 1

	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if in.Name != nil {
		set("name", *in.Name)
	}
	if in.FarmID != nil {
		set("farm_id", *in.FarmID)
	}
	if in.CropID != nil {
		set("crop_id", *in.CropID)
	}
	if in.StartDate != nil {
		set("start_date", *in.StartDate)
	}
	if in.PlannedEndDate != nil {
		set("planned_end_date", *in.PlannedEndDate)
	}
	if in.Description != nil {
		set("description", *in.Description)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE cultivation_projects SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *projectRepository) UpdateProjectState(ctx context.Context, id int64, state string, actualEndDate *time.Time) error {
	var (
		res sql.Result
		err error
	)
	if actualEndDate != nil {
		res, err = r.db.ExecContext(ctx,
			`UPDATE cultivation_projects SET state = $1, actual_end_date = $2 WHERE id = $3`,
			state, *actualEndDate, id)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE cultivation_projects SET state = $1 WHERE id = $2`, state, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update project %d state: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *projectRepository) DeleteProject(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cultivation_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}

	return nil
}
