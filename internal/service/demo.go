package service

import (
	"time"

	"github.com/agristack/farmdash/internal/domain"
)

// Canned fallback payloads served when live aggregation fails or the company
// has no data yet. The numbers are fictional but arithmetically consistent
// with the live KPI formulas.

func demoOverviewData(role string) *domain.OverviewData {
	kpis := domain.OverviewKPIs{
		ActiveProjects:    5,
		TotalProjects:     12,
		CompletedProjects: 6,
		TotalArea:         48.5,
		TotalBudget:       200000,
		TotalActualCost:   170000,
		TotalRevenue:      250000,
	}
	kpis.TotalProfit = kpis.TotalRevenue - kpis.TotalActualCost
	kpis.BudgetVariance = BudgetVariance(kpis.TotalBudget, kpis.TotalActualCost)
	kpis.ProfitMargin = ProfitMargin(kpis.TotalProfit, kpis.TotalRevenue)
	kpis.CompletionRate = CompletionRate(kpis.CompletedProjects, kpis.TotalProjects)

	return &domain.OverviewData{
		KPIs: kpis,
		RecentActivities: []domain.Activity{
			{ID: 1, Date: "2026-08-28", Type: domain.OperationIrrigation, Project: "Corn North Field", Farm: "Green Valley", Description: "Drip irrigation cycle", Cost: 350},
			{ID: 2, Date: "2026-08-27", Type: domain.OperationFertilizing, Project: "Tomato Greenhouse", Farm: "Sunrise", Description: "NPK application", Cost: 1200},
			{ID: 3, Date: "2026-08-25", Type: domain.OperationHarvest, Project: "Wheat South Field", Farm: "Green Valley", Description: "First harvest pass", Cost: 2800},
		},
		Alerts: []domain.Alert{
			{Type: "warning", Title: "Over budget", Message: "Tomato Greenhouse is 12% over budget", ProjectID: 2},
			{Type: "info", Title: "Harvest due", Message: "Wheat South Field harvest window opens this week", ProjectID: 3},
		},
		Charts:      demoOverviewCharts(),
		UserRole:    role,
		DataSource:  domain.DataSourceDemo,
		LastUpdated: time.Now().UTC(),
	}
}

func demoOverviewCharts() domain.OverviewCharts {
	return domain.OverviewCharts{
		ProjectsByStage: domain.ChartData{
			Type:   "bar",
			Labels: []string{"Land Preparation", "Sowing", "Growing", "Harvest", "Sales", "Done"},
			Data:   []float64{1, 1, 2, 1, 0, 6},
		},
		CostTrends: domain.ChartData{
			Type:   "line",
			Labels: []string{"2026-03", "2026-04", "2026-05", "2026-06", "2026-07", "2026-08"},
			Data:   []float64{18000, 24000, 31000, 29500, 34000, 33500},
		},
	}
}

func demoProjectsData() *domain.ProjectsData {
	projects := []domain.ProjectSummary{
		{ID: 1, Name: "Corn North Field", Code: "CP00001", FarmName: "Green Valley", CropName: "Corn", State: domain.StateGrowing, StateLabel: "Growing", Budget: 25000, ActualCost: 14000, Revenue: 0, FieldArea: 8.0, ProgressPercentage: 60},
		{ID: 2, Name: "Tomato Greenhouse", Code: "CP00002", FarmName: "Sunrise", CropName: "Tomato", State: domain.StateHarvest, StateLabel: "Harvest", Budget: 18000, ActualCost: 20200, Revenue: 9500, FieldArea: 1.2, ProgressPercentage: 80},
		{ID: 3, Name: "Wheat South Field", Code: "CP00003", FarmName: "Green Valley", CropName: "Wheat", State: domain.StateDone, StateLabel: "Done", Budget: 30000, ActualCost: 27500, Revenue: 41000, FieldArea: 12.5, ProgressPercentage: 100},
	}
	for i := range projects {
		projects[i].Profit = projects[i].Revenue - projects[i].ActualCost
	}

	return &domain.ProjectsData{
		KPIs: domain.ProjectKPIs{
			TotalProjects:      3,
			ActiveProjects:     2,
			CompletedProjects:  1,
			OverdueProjects:    0,
			AvgProjectDuration: 96,
			CompletionRate:     CompletionRate(1, 3),
		},
		Projects: projects,
		StageCounts: map[string]int{
			domain.StateGrowing: 1,
			domain.StateHarvest: 1,
			domain.StateDone:    1,
		},
		DataSource:  domain.DataSourceDemo,
		LastUpdated: time.Now().UTC(),
	}
}

func demoCropsData() *domain.CropsData {
	return &domain.CropsData{
		Crops: []domain.CropPerformance{
			{CropID: 1, CropName: "Corn", ProjectCount: 2, TotalArea: 16.0, YieldPerArea: 8.2, RevenuePerArea: 2100, CostPerArea: 1400, ProfitPerArea: 700, YieldEfficiency: 94.5},
			{CropID: 2, CropName: "Tomato", ProjectCount: 1, TotalArea: 1.2, YieldPerArea: 62.0, RevenuePerArea: 7900, CostPerArea: 6200, ProfitPerArea: 1700, YieldEfficiency: 88.0},
			{CropID: 3, CropName: "Wheat", ProjectCount: 3, TotalArea: 31.3, YieldPerArea: 4.1, RevenuePerArea: 1300, CostPerArea: 880, ProfitPerArea: 420, YieldEfficiency: 101.2},
		},
		TotalPlannedYield: 340,
		TotalActualYield:  322,
		OverallEfficiency: 322.0 / 340 * 100,
		DataSource:        domain.DataSourceDemo,
		LastUpdated:       time.Now().UTC(),
	}
}

func demoFinancialsData() *domain.FinancialsData {
	kpis := domain.FinancialKPIs{
		TotalBudget:     200000,
		TotalActualCost: 170000,
		TotalRevenue:    250000,
	}
	kpis.TotalProfit = kpis.TotalRevenue - kpis.TotalActualCost
	kpis.BudgetVariance = BudgetVariance(kpis.TotalBudget, kpis.TotalActualCost)
	kpis.ProfitMargin = ProfitMargin(kpis.TotalProfit, kpis.TotalRevenue)
	kpis.ROI = ReturnOnInvestment(kpis.TotalProfit, kpis.TotalActualCost)

	receivables := domain.AgedBuckets{Days0To30: 21000, Days31To60: 8500, Days61To90: 3200, Days90Plus: 1100}
	payables := domain.AgedBuckets{Days0To30: 14300, Days31To60: 5100, Days61To90: 900, Days90Plus: 0}

	return &domain.FinancialsData{
		KPIs:             kpis,
		AgedReceivables:  receivables,
		AgedPayables:     payables,
		TotalReceivables: receivables.Total(),
		TotalPayables:    payables.Total(),
		ProfitAndLoss: domain.ProfitAndLoss{
			Revenue:   250000,
			Expenses:  170000,
			NetProfit: 80000,
		},
		CashFlow: domain.CashFlow{
			Inflows:  216200,
			Outflows: 149700,
			Net:      66500,
		},
		DataSource:  domain.DataSourceDemo,
		LastUpdated: time.Now().UTC(),
	}
}

func demoSalesData() *domain.SalesData {
	return &domain.SalesData{
		TotalOrders:     28,
		TotalAmount:     250000,
		AvgOrderValue:   250000.0 / 28,
		ConfirmedOrders: 24,
		TopProducts: []domain.ProductSales{
			{ProductName: "Wheat Grain", Quantity: 52000, Amount: 98000},
			{ProductName: "Fresh Tomatoes", Quantity: 8400, Amount: 71000},
			{ProductName: "Corn", Quantity: 34000, Amount: 54000},
		},
		MonthlyTrend: domain.ChartData{
			Type:   "line",
			Labels: []string{"2026-03", "2026-04", "2026-05", "2026-06", "2026-07", "2026-08"},
			Data:   []float64{21000, 29000, 38000, 46000, 55000, 61000},
		},
		DataSource:  domain.DataSourceDemo,
		LastUpdated: time.Now().UTC(),
	}
}

func demoPurchasesData() *domain.PurchasesData {
	return &domain.PurchasesData{
		TotalOrders:     14,
		TotalAmount:     46200,
		PendingReceipts: 3,
		AvgOrderValue:   46200.0 / 14,
		TopSuppliers: []domain.SupplierSpend{
			{SupplierName: "AgriSupply Co", OrderCount: 6, TotalAmount: 21500},
			{SupplierName: "GrowWell Seeds", OrderCount: 4, TotalAmount: 13700},
			{SupplierName: "FieldTech Services", OrderCount: 4, TotalAmount: 11000},
		},
		DataSource:  domain.DataSourceDemo,
		LastUpdated: time.Now().UTC(),
	}
}

func demoInventoryData() *domain.InventoryData {
	items := []domain.StockItem{
		{ProductID: 1, ProductName: "NPK Fertilizer 20kg", Category: "Fertilizers", QtyOnHand: 42, UnitCost: 35, Status: "ok"},
		{ProductID: 2, ProductName: "Corn Seed SC-501", Category: "Seeds", QtyOnHand: 6, UnitCost: 120, Status: "low"},
		{ProductID: 3, ProductName: "Copper Fungicide 5L", Category: "Pesticides", QtyOnHand: 0, UnitCost: 48, Status: "out"},
	}
	var total float64
	low := 0
	for i := range items {
		items[i].Value = items[i].QtyOnHand * items[i].UnitCost
		total += items[i].Value
		if items[i].Status != "ok" {
			low++
		}
	}

	return &domain.InventoryData{
		TotalProducts: len(items),
		LowStockItems: low,
		TotalValue:    total,
		Items:         items,
		DataSource:    domain.DataSourceDemo,
		LastUpdated:   time.Now().UTC(),
	}
}

func demoReportsData() *domain.ReportsData {
	return &domain.ReportsData{
		TotalReports: 57,
		CostByOperation: map[string]float64{
			domain.OperationPreparation: 8200,
			domain.OperationPlanting:    5400,
			domain.OperationFertilizing: 9800,
			domain.OperationIrrigation:  4300,
			domain.OperationHarvest:     12100,
		},
		CountByState: map[string]int{
			"draft":     4,
			"confirmed": 11,
			"done":      42,
		},
		RecentReports: []domain.Activity{
			{ID: 1, Date: "2026-08-28", Type: domain.OperationIrrigation, Project: "Corn North Field", Farm: "Green Valley", Cost: 350},
			{ID: 2, Date: "2026-08-27", Type: domain.OperationFertilizing, Project: "Tomato Greenhouse", Farm: "Sunrise", Cost: 1200},
		},
		DataSource:  domain.DataSourceDemo,
		LastUpdated: time.Now().UTC(),
	}
}
