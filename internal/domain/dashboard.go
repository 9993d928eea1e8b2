package domain

import "time"

// Dashboard tab identifiers.
const (
	TabOverview   = "overview"
	TabProjects   = "projects"
	TabCrops      = "crops"
	TabFinancials = "financials"
	TabSales      = "sales"
	TabPurchases  = "purchases"
	TabInventory  = "inventory"
	TabReports    = "reports"
)

// Data source discriminator carried by every tab payload so clients can tell
// real data from the canned fallback.
const (
	DataSourceLive = "live"
	DataSourceDemo = "demo"
)

// OverviewKPIs are the headline numbers on the overview tab.
type OverviewKPIs struct {
	ActiveProjects    int     `json:"active_projects"`
	TotalProjects     int     `json:"total_projects"`
	CompletedProjects int     `json:"completed_projects"`
	TotalArea         float64 `json:"total_area"`
	TotalBudget       float64 `json:"total_budget"`
	TotalActualCost   float64 `json:"total_actual_cost"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalProfit       float64 `json:"total_profit"`
	BudgetVariance    float64 `json:"budget_variance"`
	ProfitMargin      float64 `json:"profit_margin"`
	CompletionRate    float64 `json:"completion_rate"`
}

// Activity is a recent-activity feed entry sourced from daily reports.
type Activity struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Project     string  `json:"project"`
	Farm        string  `json:"farm"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// Alert severities follow bootstrap naming since the front end maps them
// straight onto alert classes.
type Alert struct {
	Type      string `json:"type"` // info | success | warning | danger
	Title     string `json:"title"`
	Message   string `json:"message"`
	ProjectID int64  `json:"project_id,omitempty"`
}

// ChartData is a generic labelled series.
type ChartData struct {
	Type   string    `json:"type"`
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type OverviewCharts struct {
	ProjectsByStage ChartData  `json:"projects_by_stage"`
	CostTrends      ChartData  `json:"cost_trends"`
	Profitability   *ChartData `json:"profitability_chart,omitempty"`
}

// OverviewData is the overview tab payload.
type OverviewData struct {
	KPIs             OverviewKPIs   `json:"kpis"`
	RecentActivities []Activity     `json:"recent_activities"`
	Alerts           []Alert        `json:"alerts"`
	Charts           OverviewCharts `json:"charts"`
	UserRole         string         `json:"user_role"`
	DataSource       string         `json:"data_source"`
	LastUpdated      time.Time      `json:"last_updated"`
}

// ProjectSummary is a project row on the projects tab.
type ProjectSummary struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	FarmName           string  `json:"farm_name"`
	CropName           string  `json:"crop_name"`
	State              string  `json:"state"`
	StateLabel         string  `json:"state_label"`
	StartDate          string  `json:"start_date,omitempty"`
	PlannedEndDate     string  `json:"planned_end_date,omitempty"`
	Budget             float64 `json:"budget"`
	ActualCost         float64 `json:"actual_cost"`
	Revenue            float64 `json:"revenue"`
	Profit             float64 `json:"profit"`
	FieldArea          float64 `json:"field_area"`
	ProgressPercentage int     `json:"progress_percentage"`
	Overdue            bool    `json:"overdue"`
}

// ProjectKPIs are the projects tab rollups.
type ProjectKPIs struct {
	TotalProjects      int     `json:"total_projects"`
	ActiveProjects     int     `json:"active_projects"`
	CompletedProjects  int     `json:"completed_projects"`
	OverdueProjects    int     `json:"overdue_projects"`
	AvgProjectDuration float64 `json:"avg_project_duration"`
	CompletionRate     float64 `json:"completion_rate"`
}

type ProjectsData struct {
	KPIs        ProjectKPIs      `json:"kpis"`
	Projects    []ProjectSummary `json:"projects"`
	StageCounts map[string]int   `json:"stage_counts"`
	DataSource  string           `json:"data_source"`
	LastUpdated time.Time        `json:"last_updated"`
}

// CropPerformance is a per-crop rollup across its cultivation projects.
type CropPerformance struct {
	CropID          int64   `json:"crop_id"`
	CropName        string  `json:"crop_name"`
	ProjectCount    int     `json:"project_count"`
	TotalArea       float64 `json:"total_area"`
	YieldPerArea    float64 `json:"yield_per_area"`
	RevenuePerArea  float64 `json:"revenue_per_area"`
	CostPerArea     float64 `json:"cost_per_area"`
	ProfitPerArea   float64 `json:"profit_per_area"`
	YieldEfficiency float64 `json:"yield_efficiency"`
}

type CropsData struct {
	Crops             []CropPerformance `json:"crops"`
	TotalPlannedYield float64           `json:"total_planned_yield"`
	TotalActualYield  float64           `json:"total_actual_yield"`
	OverallEfficiency float64           `json:"overall_efficiency"`
	DataSource        string            `json:"data_source"`
	LastUpdated       time.Time         `json:"last_updated"`
}

// AgedBuckets splits open balances into age windows by document date.
type AgedBuckets struct {
	Days0To30  float64 `json:"0-30"`
	Days31To60 float64 `json:"31-60"`
	Days61To90 float64 `json:"61-90"`
	Days90Plus float64 `json:"90+"`
}

// Total sums all four windows.
func (b AgedBuckets) Total() float64 {
	return b.Days0To30 + b.Days31To60 + b.Days61To90 + b.Days90Plus
}

type FinancialKPIs struct {
	TotalBudget     float64 `json:"total_budget"`
	TotalActualCost float64 `json:"total_actual_cost"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalProfit     float64 `json:"total_profit"`
	BudgetVariance  float64 `json:"budget_variance"`
	ProfitMargin    float64 `json:"profit_margin"`
	ROI             float64 `json:"roi"`
}

type ProfitAndLoss struct {
	Revenue   float64 `json:"revenue"`
	Expenses  float64 `json:"expenses"`
	NetProfit float64 `json:"net_profit"`
}

type CashFlow struct {
	Inflows  float64 `json:"inflows"`
	Outflows float64 `json:"outflows"`
	Net      float64 `json:"net"`
}

type FinancialsData struct {
	KPIs             FinancialKPIs `json:"kpis"`
	AgedReceivables  AgedBuckets   `json:"aged_receivables"`
	AgedPayables     AgedBuckets   `json:"aged_payables"`
	TotalReceivables float64       `json:"total_receivables"`
	TotalPayables    float64       `json:"total_payables"`
	ProfitAndLoss    ProfitAndLoss `json:"profit_and_loss"`
	CashFlow         CashFlow      `json:"cash_flow"`
	DataSource       string        `json:"data_source"`
	LastUpdated      time.Time     `json:"last_updated"`
}

type ProductSales struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Amount      float64 `json:"amount"`
}

type SalesData struct {
	TotalOrders     int            `json:"total_sales_orders"`
	TotalAmount     float64        `json:"total_sales_amount"`
	AvgOrderValue   float64        `json:"avg_order_value"`
	ConfirmedOrders int            `json:"confirmed_orders"`
	TopProducts     []ProductSales `json:"top_products"`
	MonthlyTrend    ChartData      `json:"monthly_trend"`
	DataSource      string         `json:"data_source"`
	LastUpdated     time.Time      `json:"last_updated"`
}

type SupplierSpend struct {
	SupplierName string  `json:"supplier_name"`
	OrderCount   int     `json:"order_count"`
	TotalAmount  float64 `json:"total_amount"`
}

type PurchasesData struct {
	TotalOrders     int             `json:"total_purchase_orders"`
	TotalAmount     float64         `json:"total_purchase_amount"`
	PendingReceipts int             `json:"pending_receipts"`
	AvgOrderValue   float64         `json:"avg_order_value"`
	TopSuppliers    []SupplierSpend `json:"top_suppliers"`
	DataSource      string          `json:"data_source"`
	LastUpdated     time.Time       `json:"last_updated"`
}

type StockItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	QtyOnHand   float64 `json:"qty_on_hand"`
	UnitCost    float64 `json:"unit_cost"`
	Value       float64 `json:"value"`
	Status      string  `json:"status"` // ok | low | out
}

type InventoryData struct {
	TotalProducts int         `json:"total_products"`
	LowStockItems int         `json:"low_stock_items"`
	TotalValue    float64     `json:"total_inventory_value"`
	Items         []StockItem `json:"items"`
	DataSource    string      `json:"data_source"`
	LastUpdated   time.Time   `json:"last_updated"`
}

type ReportsData struct {
	TotalReports    int                `json:"total_reports"`
	CostByOperation map[string]float64 `json:"cost_by_operation"`
	CountByState    map[string]int     `json:"count_by_state"`
	RecentReports   []Activity         `json:"recent_reports"`
	DataSource      string             `json:"data_source"`
	LastUpdated     time.Time          `json:"last_updated"`
}
