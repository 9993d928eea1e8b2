package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"
)

// Statements are idempotent so the command can run against an existing
// database without clobbering data.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		login TEXT NOT NULL UNIQUE,
		company_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS user_groups (
		user_id BIGINT NOT NULL REFERENCES users(id),
		group_id BIGINT NOT NULL REFERENCES groups(id),
		PRIMARY KEY (user_id, group_id)
	)`,
	`CREATE TABLE IF NOT EXISTS farms (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		company_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS farm_fields (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		farm_id BIGINT NOT NULL REFERENCES farms(id),
		area NUMERIC DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS crops (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crop_boms (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		crop_id BIGINT NOT NULL REFERENCES crops(id),
		budget NUMERIC DEFAULT 0
	)`,
	`CREATE SEQUENCE IF NOT EXISTS cultivation_project_code_seq`,
	`CREATE TABLE IF NOT EXISTS cultivation_projects (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL UNIQUE,
		farm_id BIGINT NOT NULL REFERENCES farms(id),
		field_id BIGINT NOT NULL REFERENCES farm_fields(id),
		crop_id BIGINT NOT NULL REFERENCES crops(id),
		crop_bom_id BIGINT NOT NULL REFERENCES crop_boms(id),
		state TEXT NOT NULL DEFAULT 'draft',
		description TEXT,
		start_date DATE,
		planned_end_date DATE,
		actual_end_date DATE,
		budget NUMERIC DEFAULT 0,
		actual_cost NUMERIC DEFAULT 0,
		revenue NUMERIC DEFAULT 0,
		field_area NUMERIC DEFAULT 0,
		area_unit TEXT DEFAULT 'ha',
		planned_yield NUMERIC DEFAULT 0,
		actual_yield NUMERIC DEFAULT 0,
		company_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_reports (
		id BIGSERIAL PRIMARY KEY,
		name TEXT,
		project_id BIGINT NOT NULL REFERENCES cultivation_projects(id),
		operation_type TEXT NOT NULL,
		date DATE,
		actual_cost NUMERIC DEFAULT 0,
		state TEXT NOT NULL DEFAULT 'draft',
		company_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS partners (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sale_orders (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		partner_id BIGINT REFERENCES partners(id),
		cultivation_project_id BIGINT REFERENCES cultivation_projects(id),
		state TEXT NOT NULL DEFAULT 'draft',
		amount_total NUMERIC DEFAULT 0,
		date_order TIMESTAMPTZ,
		company_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category_id BIGINT,
		qty_available NUMERIC DEFAULT 0,
		standard_price NUMERIC DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS product_categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sale_order_lines (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES sale_orders(id),
		product_id BIGINT REFERENCES products(id),
		quantity NUMERIC DEFAULT 0,
		price_subtotal NUMERIC DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		partner_id BIGINT REFERENCES partners(id),
		state TEXT NOT NULL DEFAULT 'draft',
		amount_total NUMERIC DEFAULT 0,
		date_order TIMESTAMPTZ,
		company_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS account_moves (
		id BIGSERIAL PRIMARY KEY,
		move_type TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT 'draft',
		invoice_date DATE,
		amount_total NUMERIC DEFAULT 0,
		amount_residual NUMERIC DEFAULT 0,
		company_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dashboard_access (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE REFERENCES users(id),
		company_id BIGINT NOT NULL,
		role TEXT NOT NULL,
		can_access_overview BOOLEAN NOT NULL DEFAULT FALSE,
		can_access_projects BOOLEAN NOT NULL DEFAULT FALSE,
		can_access_crops BOOLEAN NOT NULL DEFAULT FALSE,
		can_access_financials BOOLEAN NOT NULL DEFAULT FALSE,
		can_access_sales BOOLEAN NOT NULL DEFAULT FALSE,
		can_access_purchases BOOLEAN NOT NULL DEFAULT FALSE,
		can_access_inventory BOOLEAN NOT NULL DEFAULT FALSE,
		can_access_reports BOOLEAN NOT NULL DEFAULT FALSE,
		can_export_data BOOLEAN NOT NULL DEFAULT FALSE,
		can_modify_filters BOOLEAN NOT NULL DEFAULT FALSE,
		can_view_costs BOOLEAN NOT NULL DEFAULT FALSE,
		can_view_profits BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS dashboard_configs (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		company_id BIGINT NOT NULL,
		dashboard_type TEXT NOT NULL DEFAULT 'farm_management',
		access_level TEXT NOT NULL DEFAULT 'user',
		auto_refresh BOOLEAN NOT NULL DEFAULT TRUE,
		refresh_interval INT NOT NULL DEFAULT 300,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`INSERT INTO groups (name) VALUES
		('system_admin'), ('farm_owner'), ('farm_manager'),
		('farm_accountant'), ('dashboard_access'), ('farm_user')
	ON CONFLICT (name) DO NOTHING`,
}

func runSchema(c *cli.Context) error {
	db := contextDB(c)

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	log.Println("schema created")
	return nil
}
