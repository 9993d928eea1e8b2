package domain

import "time"

// Dashboard config access levels.
const (
	AccessLevelOwner   = "owner"
	AccessLevelManager = "manager"
	AccessLevelUser    = "user"
)

// DashboardConfig is a per-user dashboard preference record.
type DashboardConfig struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	UserID          int64     `json:"user_id" db:"user_id"`
	CompanyID       int64     `json:"company_id" db:"company_id"`
	DashboardType   string    `json:"dashboard_type" db:"dashboard_type"`
	AccessLevel     string    `json:"access_level" db:"access_level"`
	AutoRefresh     bool      `json:"auto_refresh" db:"auto_refresh"`
	RefreshInterval int       `json:"refresh_interval" db:"refresh_interval"`
	Active          bool      `json:"active" db:"active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
