package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/agristack/farmdash/internal/cache"
	"github.com/agristack/farmdash/internal/config"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
)

type fakeProjectRepo struct {
	projects []domain.Project
	err      error
}

func (f *fakeProjectRepo) ListProjects(ctx context.Context, companyID int64, filter *domain.DashboardFilter) ([]domain.Project, error) {
	return f.projects, f.err
}
func (f *fakeProjectRepo) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			return &f.projects[i], nil
		}
	}
	return nil, errors.New("not found")
}
func (f *fakeProjectRepo) CreateProject(ctx context.Context, in repository.CreateProjectInput) (*domain.Project, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeProjectRepo) UpdateProject(ctx context.Context, id int64, in repository.UpdateProjectInput) error {
	return nil
}
func (f *fakeProjectRepo) UpdateProjectState(ctx context.Context, id int64, state string, actualEndDate *time.Time) error {
	return nil
}
func (f *fakeProjectRepo) DeleteProject(ctx context.Context, id int64) error { return nil }

type fakeReportRepo struct {
	reports []domain.DailyReport
	costs   map[string]float64
	counts  map[string]int
}

func (f *fakeReportRepo) RecentReports(ctx context.Context, projectIDs []int64, since time.Time, limit int) ([]domain.DailyReport, error) {
	return f.reports, nil
}
func (f *fakeReportRepo) ProjectReports(ctx context.Context, projectID int64) ([]domain.DailyReport, error) {
	return f.reports, nil
}
func (f *fakeReportRepo) CostByOperation(ctx context.Context, companyID int64, from, to time.Time) (map[string]float64, error) {
	return f.costs, nil
}
func (f *fakeReportRepo) CountByState(ctx context.Context, companyID int64, from, to time.Time) (map[string]int, error) {
	return f.counts, nil
}

type fakeSalesRepo struct {
	orders []domain.SaleOrder
}

func (f *fakeSalesRepo) OrdersForProjects(ctx context.Context, projectIDs []int64) ([]domain.SaleOrder, error) {
	return f.orders, nil
}
func (f *fakeSalesRepo) TopProducts(ctx context.Context, companyID int64, limit int) ([]domain.ProductSales, error) {
	return nil, nil
}
func (f *fakeSalesRepo) MonthlySales(ctx context.Context, companyID int64, months int) ([]repository.MonthlyAmount, error) {
	return nil, nil
}

type fakePurchaseRepo struct {
	orders []domain.PurchaseOrder
}

func (f *fakePurchaseRepo) OrdersSince(ctx context.Context, companyID int64, since time.Time) ([]domain.PurchaseOrder, error) {
	return f.orders, nil
}
func (f *fakePurchaseRepo) TopSuppliers(ctx context.Context, companyID int64, since time.Time, limit int) ([]domain.SupplierSpend, error) {
	return nil, nil
}

type fakeInventoryRepo struct {
	products []domain.Product
}

func (f *fakeInventoryRepo) AgriculturalProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

type fakeFinanceRepo struct{}

func (f *fakeFinanceRepo) OpenReceivables(ctx context.Context, companyID int64) ([]domain.AccountMove, error) {
	return nil, nil
}
func (f *fakeFinanceRepo) OpenPayables(ctx context.Context, companyID int64) ([]domain.AccountMove, error) {
	return nil, nil
}
func (f *fakeFinanceRepo) PostedMoveTotals(ctx context.Context, companyID int64, from, to time.Time) (map[string]float64, error) {
	return nil, nil
}

type fakeResolver struct {
	perms  domain.Permissions
	denied bool
}

func (f *fakeResolver) Resolve(ctx context.Context, userID, companyID int64) (domain.Permissions, error) {
	return f.perms, nil
}
func (f *fakeResolver) CheckTabAccess(ctx context.Context, userID, companyID int64, tab string) (bool, error) {
	return !f.denied, nil
}
func (f *fakeResolver) AccessibleTabs(ctx context.Context, userID, companyID int64) ([]domain.TabInfo, error) {
	return domain.TabDisplayOrder(), nil
}

func newTestDashboard(projects *fakeProjectRepo, kpis *fakeKPIRepo, resolver *fakeResolver) *DashboardService {
	return NewDashboardService(
		projects,
		&fakeReportRepo{},
		&fakeSalesRepo{},
		&fakePurchaseRepo{},
		&fakeInventoryRepo{},
		&fakeFinanceRepo{},
		NewKPIService(kpis),
		resolver,
		cache.NewDashboardCache(&config.CacheConfig{Enabled: false}),
	)
}

func ownerResolver() *fakeResolver {
	return &fakeResolver{perms: domain.RolePermissions(domain.RoleOwner)}
}

func TestNormalizeTab(t *testing.T) {
	if got := NormalizeTab("bogus"); got != domain.TabOverview {
		t.Errorf("NormalizeTab(bogus) = %q, want overview", got)
	}
	if got := NormalizeTab(domain.TabSales); got != domain.TabSales {
		t.Errorf("NormalizeTab(sales) = %q", got)
	}
}

func TestOverviewFallsBackToDemoWhenEmpty(t *testing.T) {
	svc := newTestDashboard(&fakeProjectRepo{}, &fakeKPIRepo{}, ownerResolver())

	payload, err := svc.GetTabData(context.Background(), 1, 1, domain.TabOverview, nil)
	if err != nil {
		t.Fatalf("GetTabData returned error: %v", err)
	}

	var data domain.OverviewData
	if err := json.Unmarshal(payload, &data); err != nil {
		t.Fatalf("payload not decodable: %v", err)
	}

	if data.DataSource != domain.DataSourceDemo {
		t.Errorf("data_source = %q, want demo", data.DataSource)
	}
	if data.KPIs.TotalProfit != data.KPIs.TotalRevenue-data.KPIs.TotalActualCost {
		t.Errorf("demo KPIs inconsistent: %+v", data.KPIs)
	}
	if data.KPIs.TotalProjects == 0 {
		t.Error("demo payload should show sample projects")
	}
}

func TestOverviewFallsBackToDemoOnError(t *testing.T) {
	svc := newTestDashboard(&fakeProjectRepo{}, &fakeKPIRepo{err: errors.New("db gone")}, ownerResolver())

	payload, err := svc.GetTabData(context.Background(), 1, 1, domain.TabOverview, nil)
	if err != nil {
		t.Fatalf("aggregation failure must degrade, not error: %v", err)
	}

	var data domain.OverviewData
	if err := json.Unmarshal(payload, &data); err != nil {
		t.Fatalf("payload not decodable: %v", err)
	}
	if data.DataSource != domain.DataSourceDemo {
		t.Errorf("data_source = %q, want demo", data.DataSource)
	}
}

func TestOverviewLiveScenario(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	projects := &fakeProjectRepo{projects: []domain.Project{{
		ID: 1, Name: "Corn North", State: domain.StateGrowing,
		Budget: 1000, ActualCost: 1200, Revenue: 0, StartDate: &start, CompanyID: 1,
	}}}
	kpis := &fakeKPIRepo{aggregates: []repository.StateAggregate{
		{State: domain.StateGrowing, Count: 1, Budget: 1000, ActualCost: 1200, Revenue: 0},
	}}

	svc := newTestDashboard(projects, kpis, ownerResolver())

	payload, err := svc.GetTabData(context.Background(), 1, 1, domain.TabOverview, nil)
	if err != nil {
		t.Fatalf("GetTabData returned error: %v", err)
	}

	var data domain.OverviewData
	if err := json.Unmarshal(payload, &data); err != nil {
		t.Fatalf("payload not decodable: %v", err)
	}

	if data.DataSource != domain.DataSourceLive {
		t.Fatalf("data_source = %q, want live", data.DataSource)
	}
	if data.KPIs.BudgetVariance != 20.0 {
		t.Errorf("budget_variance = %v, want 20.0", data.KPIs.BudgetVariance)
	}
	if data.KPIs.ProfitMargin != 0 {
		t.Errorf("profit_margin = %v, want 0", data.KPIs.ProfitMargin)
	}
	if data.KPIs.ActiveProjects != 1 {
		t.Errorf("active_projects = %d, want 1", data.KPIs.ActiveProjects)
	}
	if data.UserRole != domain.RoleOwner {
		t.Errorf("user_role = %q, want owner", data.UserRole)
	}
}

func TestTabAccessDenied(t *testing.T) {
	svc := newTestDashboard(&fakeProjectRepo{}, &fakeKPIRepo{}, &fakeResolver{denied: true})

	_, err := svc.GetTabData(context.Background(), 1, 1, domain.TabFinancials, nil)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestProjectsTabProfitIdentity(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	projects := &fakeProjectRepo{projects: []domain.Project{
		{ID: 1, Name: "A", State: domain.StateGrowing, Budget: 500, ActualCost: 300, Revenue: 900, StartDate: &start, CompanyID: 1},
		{ID: 2, Name: "B", State: domain.StateDone, Budget: 800, ActualCost: 700, Revenue: 450, StartDate: &start, CompanyID: 1},
	}}

	svc := newTestDashboard(projects, &fakeKPIRepo{}, ownerResolver())

	payload, err := svc.GetTabData(context.Background(), 1, 1, domain.TabProjects, nil)
	if err != nil {
		t.Fatalf("GetTabData returned error: %v", err)
	}

	var data domain.ProjectsData
	if err := json.Unmarshal(payload, &data); err != nil {
		t.Fatalf("payload not decodable: %v", err)
	}

	if data.DataSource != domain.DataSourceLive {
		t.Fatalf("data_source = %q, want live", data.DataSource)
	}
	for _, p := range data.Projects {
		if p.Profit != p.Revenue-p.ActualCost {
			t.Errorf("project %s profit identity broken: %+v", p.Name, p)
		}
	}
	if data.KPIs.CompletedProjects != 1 || data.KPIs.ActiveProjects != 1 {
		t.Errorf("kpis = %+v", data.KPIs)
	}
}

func TestInventoryStatusThresholds(t *testing.T) {
	inventory := &fakeInventoryRepo{products: []domain.Product{
		{ID: 1, Name: "Fertilizer", QtyAvailable: 40, StandardPrice: 10},
		{ID: 2, Name: "Seeds", QtyAvailable: 5, StandardPrice: 100},
		{ID: 3, Name: "Fungicide", QtyAvailable: 0, StandardPrice: 50},
	}}

	svc := NewDashboardService(
		&fakeProjectRepo{},
		&fakeReportRepo{},
		&fakeSalesRepo{},
		&fakePurchaseRepo{},
		inventory,
		&fakeFinanceRepo{},
		NewKPIService(&fakeKPIRepo{}),
		ownerResolver(),
		cache.NewDashboardCache(&config.CacheConfig{Enabled: false}),
	)

	payload, err := svc.GetTabData(context.Background(), 1, 1, domain.TabInventory, nil)
	if err != nil {
		t.Fatalf("GetTabData returned error: %v", err)
	}

	var data domain.InventoryData
	if err := json.Unmarshal(payload, &data); err != nil {
		t.Fatalf("payload not decodable: %v", err)
	}

	if data.LowStockItems != 2 {
		t.Errorf("low stock items = %d, want 2", data.LowStockItems)
	}
	if data.TotalValue != 40*10+5*100 {
		t.Errorf("total value = %v", data.TotalValue)
	}
	statuses := map[string]string{}
	for _, item := range data.Items {
		statuses[item.ProductName] = item.Status
	}
	if statuses["Fertilizer"] != "ok" || statuses["Seeds"] != "low" || statuses["Fungicide"] != "out" {
		t.Errorf("statuses = %v", statuses)
	}
}
