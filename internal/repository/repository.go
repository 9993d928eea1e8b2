package repository

import (
	"context"
	"time"

	"github.com/agristack/farmdash/internal/domain"
)

// CreateProjectInput carries the validated fields for a new cultivation project.
// The project code is generated by the database sequence, not the caller.
type CreateProjectInput struct {
	Name           string
	FarmID         int64
	FieldID        int64
	CropID         int64
	CropBOMID      int64
	StartDate      time.Time
	PlannedEndDate time.Time
	State          string
	Description    string
	CompanyID      int64
}

// UpdateProjectInput holds optional project updates; nil fields are left untouched.
type UpdateProjectInput struct {
	Name           *string
	FarmID         *int64
	CropID         *int64
	StartDate      *time.Time
	PlannedEndDate *time.Time
	Description    *string
}

// StateAggregate is one grouped-sum row per project state.
type StateAggregate struct {
	State      string  `db:"state"`
	Count      int     `db:"count"`
	Budget     float64 `db:"budget"`
	ActualCost float64 `db:"actual_cost"`
	Revenue    float64 `db:"revenue"`
	FieldArea  float64 `db:"field_area"`
}

// MonthlyAmount is one month bucket of an amount series.
type MonthlyAmount struct {
	Month  string  `db:"month"`
	Amount float64 `db:"amount"`
}

type ProjectRepository interface {
	ListProjects(ctx context.Context, companyID int64, filter *domain.DashboardFilter) ([]domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, in UpdateProjectInput) error
	UpdateProjectState(ctx context.Context, id int64, state string, actualEndDate *time.Time) error
	DeleteProject(ctx context.Context, id int64) error
}

// CatalogRepository covers the reference entities projects hang off.
type CatalogRepository interface {
	GetFarm(ctx context.Context, id int64) (*domain.Farm, error)
	GetField(ctx context.Context, id int64) (*domain.Field, error)
	GetCrop(ctx context.Context, id int64) (*domain.Crop, error)
	GetCropBOM(ctx context.Context, id int64) (*domain.CropBOM, error)
	ListCrops(ctx context.Context) ([]domain.Crop, error)
	CreateCrop(ctx context.Context, name string) (*domain.Crop, error)
}

type ReportRepository interface {
	RecentReports(ctx context.Context, projectIDs []int64, since time.Time, limit int) ([]domain.DailyReport, error)
	ProjectReports(ctx context.Context, projectID int64) ([]domain.DailyReport, error)
	CostByOperation(ctx context.Context, companyID int64, from, to time.Time) (map[string]float64, error)
	CountByState(ctx context.Context, companyID int64, from, to time.Time) (map[string]int, error)
}

type SalesRepository interface {
	OrdersForProjects(ctx context.Context, projectIDs []int64) ([]domain.SaleOrder, error)
	TopProducts(ctx context.Context, companyID int64, limit int) ([]domain.ProductSales, error)
	MonthlySales(ctx context.Context, companyID int64, months int) ([]MonthlyAmount, error)
}

type PurchaseRepository interface {
	OrdersSince(ctx context.Context, companyID int64, since time.Time) ([]domain.PurchaseOrder, error)
	TopSuppliers(ctx context.Context, companyID int64, since time.Time, limit int) ([]domain.SupplierSpend, error)
}

type InventoryRepository interface {
	AgriculturalProducts(ctx context.Context) ([]domain.Product, error)
}

type FinanceRepository interface {
	OpenReceivables(ctx context.Context, companyID int64) ([]domain.AccountMove, error)
	OpenPayables(ctx context.Context, companyID int64) ([]domain.AccountMove, error)
	PostedMoveTotals(ctx context.Context, companyID int64, from, to time.Time) (map[string]float64, error)
}

// KPIRepository is the grouped-sum aggregation surface. It answers the same
// questions as iterating ListProjects rows but pushes the arithmetic into SQL.
type KPIRepository interface {
	StateAggregates(ctx context.Context, companyID int64, filter *domain.DashboardFilter) ([]StateAggregate, error)
}

type AccessRepository interface {
	GetAccessRecord(ctx context.Context, userID int64) (*domain.AccessRecord, error)
	CreateAccessRecord(ctx context.Context, userID, companyID int64, role string, perms domain.Permissions) (*domain.AccessRecord, error)
	UpdateAccessRole(ctx context.Context, id int64, role string, perms domain.Permissions) error
}

type GroupRepository interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	UserInGroup(ctx context.Context, userID int64, group string) (bool, error)
}

type ConfigRepository interface {
	GetConfigByUser(ctx context.Context, userID int64) (*domain.DashboardConfig, error)
	GetConfig(ctx context.Context, id int64) (*domain.DashboardConfig, error)
	CreateConfig(ctx context.Context, cfg *domain.DashboardConfig) (*domain.DashboardConfig, error)
	UpdateConfig(ctx context.Context, cfg *domain.DashboardConfig) error
	DeleteConfig(ctx context.Context, id int64) error
}
