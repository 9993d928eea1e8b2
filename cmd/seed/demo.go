package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/urfave/cli/v2"
)

// runDemo loads one demo company: users in each role, two farms with fields,
// a crop catalog with BOMs, projects across the lifecycle and a few weeks of
// daily reports.
func runDemo(c *cli.Context) error {
	db := contextDB(c)
	companyID := c.Int64("company-id")

	users := []struct {
		name, login, group string
	}{
		{"Olivia Owner", "owner@demo.farm", "farm_owner"},
		{"Mark Manager", "manager@demo.farm", "farm_manager"},
		{"Alice Accountant", "accountant@demo.farm", "farm_accountant"},
		{"Victor Visitor", "visitor@demo.farm", "dashboard_access"},
	}
	for _, u := range users {
		var userID int64
		err := db.QueryRowContext(c.Context, `
			INSERT INTO users (name, login, company_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (login) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, u.name, u.login, companyID).Scan(&userID)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.login, err)
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO user_groups (user_id, group_id)
			SELECT $1, id FROM groups WHERE name = $2
			ON CONFLICT DO NOTHING
		`, userID, u.group)
		if err != nil {
			return fmt.Errorf("failed to assign group for %s: %w", u.login, err)
		}
	}

	var farmID int64
	if err := db.QueryRowContext(c.Context, `
		INSERT INTO farms (name, company_id) VALUES ('Green Valley', $1) RETURNING id
	`, companyID).Scan(&farmID); err != nil {
		return fmt.Errorf("failed to seed farm: %w", err)
	}

	fieldIDs := make([]int64, 0, 3)
	for _, f := range []struct {
		name string
		area float64
	}{{"North Field", 8.0}, {"South Field", 12.5}, {"Greenhouse 1", 1.2}} {
		var id int64
		if err := db.QueryRowContext(c.Context, `
			INSERT INTO farm_fields (name, farm_id, area) VALUES ($1, $2, $3) RETURNING id
		`, f.name, farmID, f.area).Scan(&id); err != nil {
			return fmt.Errorf("failed to seed field %s: %w", f.name, err)
		}
		fieldIDs = append(fieldIDs, id)
	}

	type bomRef struct {
		cropID, bomID int64
	}
	boms := make([]bomRef, 0, 3)
	for _, cr := range []struct {
		crop   string
		bom    string
		budget float64
	}{
		{"Corn", "Corn Standard Season", 25000},
		{"Wheat", "Wheat Standard Season", 30000},
		{"Tomato", "Tomato Greenhouse Cycle", 18000},
	} {
		var cropID, bomID int64
		if err := db.QueryRowContext(c.Context,
			`INSERT INTO crops (name) VALUES ($1) RETURNING id`, cr.crop).Scan(&cropID); err != nil {
			return fmt.Errorf("failed to seed crop %s: %w", cr.crop, err)
		}
		if err := db.QueryRowContext(c.Context, `
			INSERT INTO crop_boms (name, crop_id, budget) VALUES ($1, $2, $3) RETURNING id
		`, cr.bom, cropID, cr.budget).Scan(&bomID); err != nil {
			return fmt.Errorf("failed to seed BOM %s: %w", cr.bom, err)
		}
		boms = append(boms, bomRef{cropID: cropID, bomID: bomID})
	}

	today := time.Now().UTC()
	projects := []struct {
		name       string
		field      int
		bom        int
		state      string
		startDays  int
		actualCost float64
		revenue    float64
	}{
		{"Corn North 2026", 0, 0, "growing", -90, 14000, 0},
		{"Wheat South 2026", 1, 1, "done", -240, 27500, 41000},
		{"Tomato Cycle 14", 2, 2, "harvest", -60, 20200, 9500},
	}
	projectIDs := make([]int64, 0, len(projects))
	for _, p := range projects {
		start := today.AddDate(0, 0, p.startDays)
		planned := start.AddDate(0, 6, 0)
		var id int64
		err := db.QueryRowContext(c.Context, `
			INSERT INTO cultivation_projects
				(name, code, farm_id, field_id, crop_id, crop_bom_id, state,
				 start_date, planned_end_date, budget, actual_cost, revenue,
				 field_area, company_id)
			SELECT
				$1, 'CP' || LPAD(nextval('cultivation_project_code_seq')::text, 5, '0'),
				$2, $3, $4, $5, $6, $7, $8,
				COALESCE(b.budget, 0), $9, $10, COALESCE(fl.area, 0), $11
			FROM (SELECT 1) one
			LEFT JOIN crop_boms b ON b.id = $5
			LEFT JOIN farm_fields fl ON fl.id = $3
			RETURNING id
		`, p.name, farmID, fieldIDs[p.field], boms[p.bom].cropID, boms[p.bom].bomID,
			p.state, start, planned, p.actualCost, p.revenue, companyID).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed project %s: %w", p.name, err)
		}
		projectIDs = append(projectIDs, id)
	}

	operations := []string{"preparation", "planting", "fertilizing", "irrigation", "harvest"}
	for _, projectID := range projectIDs {
		for week := 0; week < 4; week++ {
			op := operations[week%len(operations)]
			date := today.AddDate(0, 0, -7*week)
			_, err := db.ExecContext(c.Context, `
				INSERT INTO daily_reports (name, project_id, operation_type, date, actual_cost, state, company_id)
				VALUES ($1, $2, $3, $4, $5, 'done', $6)
			`, fmt.Sprintf("%s week %d", op, week+1), projectID, op, date, 250+float64(week)*75, companyID)
			if err != nil {
				return fmt.Errorf("failed to seed report: %w", err)
			}
		}
	}

	if err := seedTrade(c, db, companyID, projectIDs); err != nil {
		return err
	}

	log.Printf("demo data loaded for company %d", companyID)
	return nil
}

func seedTrade(c *cli.Context, db *sql.DB, companyID int64, projectIDs []int64) error {
	var partnerID int64
	if err := db.QueryRowContext(c.Context,
		`INSERT INTO partners (name) VALUES ('AgriMarket Wholesale') RETURNING id`).Scan(&partnerID); err != nil {
		return fmt.Errorf("failed to seed partner: %w", err)
	}

	now := time.Now().UTC()
	for i, projectID := range projectIDs {
		_, err := db.ExecContext(c.Context, `
			INSERT INTO sale_orders (name, partner_id, cultivation_project_id, state, amount_total, date_order, company_id)
			VALUES ($1, $2, $3, 'sale', $4, $5, $6)
		`, fmt.Sprintf("SO%04d", i+1), partnerID, projectID, 9500+float64(i)*4200, now.AddDate(0, 0, -10*i), companyID)
		if err != nil {
			return fmt.Errorf("failed to seed sale order: %w", err)
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO purchase_orders (name, partner_id, state, amount_total, date_order, company_id)
			VALUES ($1, $2, 'purchase', $3, $4, $5)
		`, fmt.Sprintf("PO%04d", i+1), partnerID, 3100+float64(i)*900, now.AddDate(0, 0, -5*i), companyID)
		if err != nil {
			return fmt.Errorf("failed to seed purchase order: %w", err)
		}
	}

	moves := []struct {
		moveType string
		total    float64
		residual float64
		ageDays  int
	}{
		{"out_invoice", 15000, 4000, 12},
		{"out_invoice", 9800, 9800, 48},
		{"in_invoice", 6200, 2100, 20},
		{"in_invoice", 3400, 3400, 95},
	}
	for _, m := range moves {
		_, err := db.ExecContext(c.Context, `
			INSERT INTO account_moves (move_type, state, invoice_date, amount_total, amount_residual, company_id)
			VALUES ($1, 'posted', $2, $3, $4, $5)
		`, m.moveType, now.AddDate(0, 0, -m.ageDays), m.total, m.residual, companyID)
		if err != nil {
			return fmt.Errorf("failed to seed account move: %w", err)
		}
	}

	return nil
}
