package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/agristack/farmdash/internal/cache"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrAccessDenied is returned when the resolved permissions exclude the
// requested tab.
var ErrAccessDenied = errors.New("access denied")

// PermissionResolver is the slice of the access resolver the dashboard needs.
type PermissionResolver interface {
	Resolve(ctx context.Context, userID, companyID int64) (domain.Permissions, error)
	CheckTabAccess(ctx context.Context, userID, companyID int64, tab string) (bool, error)
	AccessibleTabs(ctx context.Context, userID, companyID int64) ([]domain.TabInfo, error)
}

// DashboardService aggregates the per-tab payloads. Every tab falls back to
// canned demo data when live aggregation fails or the company has no
// projects, flagged through the data_source field.
type DashboardService struct {
	projects  repository.ProjectRepository
	reports   repository.ReportRepository
	sales     repository.SalesRepository
	purchases repository.PurchaseRepository
	inventory repository.InventoryRepository
	finance   repository.FinanceRepository
	kpis      *KPIService
	resolver  PermissionResolver
	cache     cache.DashboardCache
}

func NewDashboardService(
	projects repository.ProjectRepository,
	reports repository.ReportRepository,
	sales repository.SalesRepository,
	purchases repository.PurchaseRepository,
	inventory repository.InventoryRepository,
	finance repository.FinanceRepository,
	kpis *KPIService,
	resolver PermissionResolver,
	payloadCache cache.DashboardCache,
) *DashboardService {
	return &DashboardService{
		projects:  projects,
		reports:   reports,
		sales:     sales,
		purchases: purchases,
		inventory: inventory,
		finance:   finance,
		kpis:      kpis,
		resolver:  resolver,
		cache:     payloadCache,
	}
}

// NormalizeTab maps unknown tab keys to the overview tab.
func NormalizeTab(tab string) string {
	switch tab {
	case domain.TabOverview, domain.TabProjects, domain.TabCrops, domain.TabFinancials,
		domain.TabSales, domain.TabPurchases, domain.TabInventory, domain.TabReports:
		return tab
	}
	return domain.TabOverview
}

// GetTabData returns the payload for one dashboard tab. The result is an
// already-rendered JSON document so cache hits skip re-aggregation entirely.
func (s *DashboardService) GetTabData(ctx context.Context, userID, companyID int64, tab string, filter *domain.DashboardFilter) (json.RawMessage, error) {
	tab = NormalizeTab(tab)

	allowed, err := s.resolver.CheckTabAccess(ctx, userID, companyID, tab)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	if payload, ok := s.cache.Get(ctx, companyID, tab, filter); ok {
		log.Debug().Str("tab", tab).Int64("company_id", companyID).Msg("dashboard cache hit")
		return payload, nil
	}

	perms, err := s.resolver.Resolve(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	data := s.buildTabData(ctx, companyID, tab, filter, perms)

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", tab, err)
	}

	s.cache.Set(ctx, companyID, tab, filter, payload)

	return payload, nil
}

// buildTabData never fails: aggregation errors and empty datasets degrade to
// the demo payload for the tab.
func (s *DashboardService) buildTabData(ctx context.Context, companyID int64, tab string, filter *domain.DashboardFilter, perms domain.Permissions) any {
	var (
		data any
		err  error
	)

	switch tab {
	case domain.TabProjects:
		data, err = s.projectsData(ctx, companyID, filter)
	case domain.TabCrops:
		data, err = s.cropsData(ctx, companyID, filter)
	case domain.TabFinancials:
		data, err = s.financialsData(ctx, companyID, filter)
	case domain.TabSales:
		data, err = s.salesData(ctx, companyID, filter)
	case domain.TabPurchases:
		data, err = s.purchasesData(ctx, companyID)
	case domain.TabInventory:
		data, err = s.inventoryData(ctx)
	case domain.TabReports:
		data, err = s.reportsData(ctx, companyID, filter)
	default:
		data, err = s.overviewData(ctx, companyID, filter, perms)
	}

	if err != nil {
		log.Warn().Err(err).Str("tab", tab).Int64("company_id", companyID).Msg("live aggregation failed, serving demo data")
		return demoTabData(tab, perms.Role)
	}

	return data
}

func demoTabData(tab, role string) any {
	switch tab {
	case domain.TabProjects:
		return demoProjectsData()
	case domain.TabCrops:
		return demoCropsData()
	case domain.TabFinancials:
		return demoFinancialsData()
	case domain.TabSales:
		return demoSalesData()
	case domain.TabPurchases:
		return demoPurchasesData()
	case domain.TabInventory:
		return demoInventoryData()
	case domain.TabReports:
		return demoReportsData()
	}
	return demoOverviewData(role)
}

// errNoLiveData marks an empty dataset so the demo fallback kicks in.
var errNoLiveData = errors.New("no live data")

func (s *DashboardService) overviewData(ctx context.Context, companyID int64, filter *domain.DashboardFilter, perms domain.Permissions) (*domain.OverviewData, error) {
	kpis, stageCounts, err := s.kpis.OverviewKPIs(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	if kpis.TotalProjects == 0 {
		return nil, errNoLiveData
	}

	projects, err := s.projects.ListProjects(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	activities, err := s.recentActivities(ctx, projects)
	if err != nil {
		return nil, err
	}

	data := &domain.OverviewData{
		KPIs:             kpis,
		RecentActivities: activities,
		Alerts:           buildAlerts(projects, time.Now().UTC()),
		Charts:           s.overviewCharts(ctx, companyID, stageCounts, projects, perms),
		UserRole:         perms.Role,
		DataSource:       domain.DataSourceLive,
		LastUpdated:      time.Now().UTC(),
	}

	return data, nil
}

func (s *DashboardService) recentActivities(ctx context.Context, projects []domain.Project) ([]domain.Activity, error) {
	ids := make([]int64, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	since := time.Now().UTC().AddDate(0, 0, -7)
	reports, err := s.reports.RecentReports(ctx, ids, since, 10)
	if err != nil {
		return nil, err
	}

	activities := make([]domain.Activity, len(reports))
	for i, r := range reports {
		date := ""
		if r.Date != nil {
			date = r.Date.Format("2006-01-02")
		}
		activities[i] = domain.Activity{
			ID:          r.ID,
			Date:        date,
			Type:        r.OperationType,
			Project:     r.ProjectName,
			Farm:        r.FarmName,
			Description: r.Name,
			Cost:        r.ActualCost,
		}
	}
	return activities, nil
}

// buildAlerts flags overdue and over-budget projects.
func buildAlerts(projects []domain.Project, today time.Time) []domain.Alert {
	var alerts []domain.Alert
	for _, p := range projects {
		if p.IsOverdue(today) && p.State != domain.StateDone {
			alerts = append(alerts, domain.Alert{
				Type:      "danger",
				Title:     "Overdue project",
				Message:   fmt.Sprintf("%s passed its planned end date", p.Name),
				ProjectID: p.ID,
			})
		}
		if p.Budget > 0 && p.ActualCost > p.Budget {
			over := (p.ActualCost - p.Budget) / p.Budget * 100
			alerts = append(alerts, domain.Alert{
				Type:      "warning",
				Title:     "Over budget",
				Message:   fmt.Sprintf("%s is %.0f%% over budget", p.Name, over),
				ProjectID: p.ID,
			})
		}
	}
	return alerts
}

func (s *DashboardService) overviewCharts(ctx context.Context, companyID int64, stageCounts map[string]int, projects []domain.Project, perms domain.Permissions) domain.OverviewCharts {
	charts := domain.OverviewCharts{
		ProjectsByStage: stageChart(stageCounts),
	}

	if costs, err := s.reports.CostByOperation(ctx, companyID, time.Now().UTC().AddDate(0, -6, 0), time.Now().UTC()); err == nil {
		charts.CostTrends = operationCostChart(costs)
	} else {
		log.Warn().Err(err).Msg("cost trend chart unavailable")
	}

	if perms.Permissions.ViewProfits {
		charts.Profitability = profitabilityChart(projects)
	}

	return charts
}

func stageChart(stageCounts map[string]int) domain.ChartData {
	chart := domain.ChartData{Type: "bar"}
	for _, state := range []string{
		domain.StateDraft, domain.StatePlanning, domain.StatePreparation, domain.StateSowing,
		domain.StateGrowing, domain.StateHarvest, domain.StateSales, domain.StateDone,
	} {
		if count, ok := stageCounts[state]; ok && count > 0 {
			chart.Labels = append(chart.Labels, domain.ProjectStateLabel(state))
			chart.Data = append(chart.Data, float64(count))
		}
	}
	return chart
}

func operationCostChart(costs map[string]float64) domain.ChartData {
	keys := make([]string, 0, len(costs))
	for k := range costs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	chart := domain.ChartData{Type: "line"}
	for _, k := range keys {
		chart.Labels = append(chart.Labels, k)
		chart.Data = append(chart.Data, costs[k])
	}
	return chart
}

// profitabilityChart picks the five most profitable projects.
func profitabilityChart(projects []domain.Project) *domain.ChartData {
	sorted := make([]domain.Project, len(projects))
	copy(sorted, projects)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Profit() > sorted[j].Profit() })

	chart := &domain.ChartData{Type: "bar"}
	for i, p := range sorted {
		if i == 5 {
			break
		}
		chart.Labels = append(chart.Labels, p.Name)
		chart.Data = append(chart.Data, p.Profit())
	}
	return chart
}

func (s *DashboardService) projectsData(ctx context.Context, companyID int64, filter *domain.DashboardFilter) (*domain.ProjectsData, error) {
	projects, err := s.projects.ListProjects(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, errNoLiveData
	}

	today := time.Now().UTC()
	summaries := make([]domain.ProjectSummary, len(projects))
	stageCounts := make(map[string]int)
	kpis := domain.ProjectKPIs{TotalProjects: len(projects)}

	var totalDuration float64
	for i, p := range projects {
		summaries[i] = projectSummary(&p, today)
		stageCounts[p.State]++

		if domain.IsActiveState(p.State) {
			kpis.ActiveProjects++
		}
		if p.State == domain.StateDone {
			kpis.CompletedProjects++
		}
		if summaries[i].Overdue {
			kpis.OverdueProjects++
		}
		totalDuration += p.Duration(today)
	}

	kpis.AvgProjectDuration = totalDuration / float64(len(projects))
	kpis.CompletionRate = CompletionRate(kpis.CompletedProjects, kpis.TotalProjects)

	return &domain.ProjectsData{
		KPIs:        kpis,
		Projects:    summaries,
		StageCounts: stageCounts,
		DataSource:  domain.DataSourceLive,
		LastUpdated: today,
	}, nil
}

func projectSummary(p *domain.Project, today time.Time) domain.ProjectSummary {
	summary := domain.ProjectSummary{
		ID:                 p.ID,
		Name:               p.Name,
		Code:               p.Code,
		FarmName:           p.FarmName,
		CropName:           p.CropName,
		State:              p.State,
		StateLabel:         domain.ProjectStateLabel(p.State),
		Budget:             p.Budget,
		ActualCost:         p.ActualCost,
		Revenue:            p.Revenue,
		Profit:             p.Profit(),
		FieldArea:          p.FieldArea,
		ProgressPercentage: domain.ProjectProgress(p.State),
		Overdue:            p.IsOverdue(today),
	}
	if p.StartDate != nil {
		summary.StartDate = p.StartDate.Format("2006-01-02")
	}
	if p.PlannedEndDate != nil {
		summary.PlannedEndDate = p.PlannedEndDate.Format("2006-01-02")
	}
	return summary
}

func (s *DashboardService) cropsData(ctx context.Context, companyID int64, filter *domain.DashboardFilter) (*domain.CropsData, error) {
	projects, err := s.projects.ListProjects(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, errNoLiveData
	}

	type cropAgg struct {
		name         string
		count        int
		area         float64
		actualYield  float64
		plannedYield float64
		revenue      float64
		cost         float64
	}

	byCrop := make(map[int64]*cropAgg)
	var totalPlanned, totalActual float64
	for _, p := range projects {
		agg, ok := byCrop[p.CropID]
		if !ok {
			agg = &cropAgg{name: p.CropName}
			byCrop[p.CropID] = agg
		}
		agg.count++
		agg.area += p.FieldArea
		agg.actualYield += p.ActualYield
		agg.plannedYield += p.PlannedYield
		agg.revenue += p.Revenue
		agg.cost += p.ActualCost
		totalPlanned += p.PlannedYield
		totalActual += p.ActualYield
	}

	crops := make([]domain.CropPerformance, 0, len(byCrop))
	for id, agg := range byCrop {
		perf := domain.CropPerformance{
			CropID:       id,
			CropName:     agg.name,
			ProjectCount: agg.count,
			TotalArea:    agg.area,
		}
		if agg.area > 0 {
			perf.YieldPerArea = agg.actualYield / agg.area
			perf.RevenuePerArea = agg.revenue / agg.area
			perf.CostPerArea = agg.cost / agg.area
			perf.ProfitPerArea = (agg.revenue - agg.cost) / agg.area
		}
		if agg.plannedYield > 0 {
			perf.YieldEfficiency = agg.actualYield / agg.plannedYield * 100
		}
		crops = append(crops, perf)
	}
	sort.Slice(crops, func(i, j int) bool { return crops[i].CropName < crops[j].CropName })

	data := &domain.CropsData{
		Crops:             crops,
		TotalPlannedYield: totalPlanned,
		TotalActualYield:  totalActual,
		DataSource:        domain.DataSourceLive,
		LastUpdated:       time.Now().UTC(),
	}
	if totalPlanned > 0 {
		data.OverallEfficiency = totalActual / totalPlanned * 100
	}

	return data, nil
}

func (s *DashboardService) financialsData(ctx context.Context, companyID int64, filter *domain.DashboardFilter) (*domain.FinancialsData, error) {
	kpis, err := s.kpis.FinancialKPIs(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	if kpis.TotalBudget == 0 && kpis.TotalActualCost == 0 && kpis.TotalRevenue == 0 {
		return nil, errNoLiveData
	}

	today := time.Now().UTC()

	receivableMoves, err := s.finance.OpenReceivables(ctx, companyID)
	if err != nil {
		return nil, err
	}
	payableMoves, err := s.finance.OpenPayables(ctx, companyID)
	if err != nil {
		return nil, err
	}

	receivables := ageMoves(receivableMoves, today)
	payables := ageMoves(payableMoves, today)

	yearStart := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	totals, err := s.finance.PostedMoveTotals(ctx, companyID, yearStart, today)
	if err != nil {
		return nil, err
	}

	revenue := totals[domain.MoveTypeCustomerInvoice] - totals[domain.MoveTypeCustomerRefund]
	expenses := totals[domain.MoveTypeVendorBill] - totals[domain.MoveTypeVendorRefund]

	return &domain.FinancialsData{
		KPIs:             kpis,
		AgedReceivables:  receivables,
		AgedPayables:     payables,
		TotalReceivables: receivables.Total(),
		TotalPayables:    payables.Total(),
		ProfitAndLoss: domain.ProfitAndLoss{
			Revenue:   revenue,
			Expenses:  expenses,
			NetProfit: revenue - expenses,
		},
		CashFlow: domain.CashFlow{
			Inflows:  revenue - receivables.Total(),
			Outflows: expenses - payables.Total(),
			Net:      (revenue - receivables.Total()) - (expenses - payables.Total()),
		},
		DataSource:  domain.DataSourceLive,
		LastUpdated: today,
	}, nil
}

// ageMoves buckets open balances by invoice date age. Moves without an
// invoice date land in the oldest bucket.
func ageMoves(moves []domain.AccountMove, today time.Time) domain.AgedBuckets {
	var buckets domain.AgedBuckets
	for _, m := range moves {
		if m.InvoiceDate == nil {
			buckets.Days90Plus += m.AmountResidual
			continue
		}
		age := int(today.Sub(*m.InvoiceDate).Hours() / 24)
		switch {
		case age <= 30:
			buckets.Days0To30 += m.AmountResidual
		case age <= 60:
			buckets.Days31To60 += m.AmountResidual
		case age <= 90:
			buckets.Days61To90 += m.AmountResidual
		default:
			buckets.Days90Plus += m.AmountResidual
		}
	}
	return buckets
}

func (s *DashboardService) salesData(ctx context.Context, companyID int64, filter *domain.DashboardFilter) (*domain.SalesData, error) {
	projects, err := s.projects.ListProjects(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	orders, err := s.sales.OrdersForProjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errNoLiveData
	}

	data := &domain.SalesData{
		TotalOrders: len(orders),
		DataSource:  domain.DataSourceLive,
		LastUpdated: time.Now().UTC(),
	}
	for _, o := range orders {
		data.TotalAmount += o.AmountTotal
		if o.State == "sale" || o.State == "done" {
			data.ConfirmedOrders++
		}
	}
	data.AvgOrderValue = data.TotalAmount / float64(len(orders))

	if top, err := s.sales.TopProducts(ctx, companyID, 5); err == nil {
		data.TopProducts = top
	} else {
		log.Warn().Err(err).Msg("top products unavailable")
	}

	if monthly, err := s.sales.MonthlySales(ctx, companyID, 12); err == nil {
		trend := domain.ChartData{Type: "line"}
		for _, m := range monthly {
			trend.Labels = append(trend.Labels, m.Month)
			trend.Data = append(trend.Data, m.Amount)
		}
		data.MonthlyTrend = trend
	} else {
		log.Warn().Err(err).Msg("monthly sales trend unavailable")
	}

	return data, nil
}

func (s *DashboardService) purchasesData(ctx context.Context, companyID int64) (*domain.PurchasesData, error) {
	since := time.Now().UTC().AddDate(0, 0, -30)

	orders, err := s.purchases.OrdersSince(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errNoLiveData
	}

	data := &domain.PurchasesData{
		TotalOrders: len(orders),
		DataSource:  domain.DataSourceLive,
		LastUpdated: time.Now().UTC(),
	}
	for _, o := range orders {
		data.TotalAmount += o.AmountTotal
		if o.State == "purchase" {
			data.PendingReceipts++
		}
	}
	data.AvgOrderValue = data.TotalAmount / float64(len(orders))

	if top, err := s.purchases.TopSuppliers(ctx, companyID, since, 5); err == nil {
		data.TopSuppliers = top
	} else {
		log.Warn().Err(err).Msg("top suppliers unavailable")
	}

	return data, nil
}

const lowStockThreshold = 10

func (s *DashboardService) inventoryData(ctx context.Context) (*domain.InventoryData, error) {
	products, err := s.inventory.AgriculturalProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, errNoLiveData
	}

	data := &domain.InventoryData{
		TotalProducts: len(products),
		Items:         make([]domain.StockItem, len(products)),
		DataSource:    domain.DataSourceLive,
		LastUpdated:   time.Now().UTC(),
	}
	for i, p := range products {
		status := "ok"
		switch {
		case p.QtyAvailable <= 0:
			status = "out"
		case p.QtyAvailable < lowStockThreshold:
			status = "low"
		}
		if status != "ok" {
			data.LowStockItems++
		}

		value := p.QtyAvailable * p.StandardPrice
		data.TotalValue += value
		data.Items[i] = domain.StockItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    p.CategoryName,
			QtyOnHand:   p.QtyAvailable,
			UnitCost:    p.StandardPrice,
			Value:       value,
			Status:      status,
		}
	}

	return data, nil
}

func (s *DashboardService) reportsData(ctx context.Context, companyID int64, filter *domain.DashboardFilter) (*domain.ReportsData, error) {
	today := time.Now().UTC()
	from := today.AddDate(0, 0, -30)
	to := today
	if filter != nil && filter.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", filter.DateFrom); err == nil {
			from = t
		}
	}
	if filter != nil && filter.DateTo != "" {
		if t, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
			to = t
		}
	}

	costs, err := s.reports.CostByOperation(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	counts, err := s.reports.CountByState(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return nil, errNoLiveData
	}

	projects, err := s.projects.ListProjects(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentActivities(ctx, projects)
	if err != nil {
		return nil, err
	}

	return &domain.ReportsData{
		TotalReports:    total,
		CostByOperation: costs,
		CountByState:    counts,
		RecentReports:   recent,
		DataSource:      domain.DataSourceLive,
		LastUpdated:     today,
	}, nil
}
