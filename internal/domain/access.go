package domain

import "time"

// Dashboard roles, ordered from widest to narrowest access.
const (
	RoleOwner      = "owner"
	RoleManager    = "manager"
	RoleAccountant = "accountant"
	RoleNoAccess   = "no_access"
)

// Security group identifiers checked during role resolution.
const (
	GroupSystemAdmin     = "system_admin"
	GroupFarmOwner       = "farm_owner"
	GroupFarmManager     = "farm_manager"
	GroupFarmAccountant  = "farm_accountant"
	GroupDashboardAccess = "dashboard_access"
	GroupFarmUser        = "farm_user"
)

// TabAccess holds the per-tab visibility flags.
type TabAccess struct {
	Overview   bool `json:"overview" db:"can_access_overview"`
	Projects   bool `json:"projects" db:"can_access_projects"`
	Crops      bool `json:"crops" db:"can_access_crops"`
	Financials bool `json:"financials" db:"can_access_financials"`
	Sales      bool `json:"sales" db:"can_access_sales"`
	Purchases  bool `json:"purchases" db:"can_access_purchases"`
	Inventory  bool `json:"inventory" db:"can_access_inventory"`
	Reports    bool `json:"reports" db:"can_access_reports"`
}

// Tab returns the flag for a tab key. Unknown keys report false.
func (t TabAccess) Tab(name string) bool {
	switch name {
	case TabOverview:
		return t.Overview
	case TabProjects:
		return t.Projects
	case TabCrops:
		return t.Crops
	case TabFinancials:
		return t.Financials
	case TabSales:
		return t.Sales
	case TabPurchases:
		return t.Purchases
	case TabInventory:
		return t.Inventory
	case TabReports:
		return t.Reports
	}
	return false
}

// Capabilities are the non-tab permissions a role grants.
type Capabilities struct {
	ExportData    bool `json:"export_data" db:"can_export_data"`
	ModifyFilters bool `json:"modify_filters" db:"can_modify_filters"`
	ViewCosts     bool `json:"view_costs" db:"can_view_costs"`
	ViewProfits   bool `json:"view_profits" db:"can_view_profits"`
}

// Permissions is the resolved access set handed to callers.
type Permissions struct {
	Role        string       `json:"role"`
	Tabs        TabAccess    `json:"tabs"`
	Permissions Capabilities `json:"permissions"`
}

// AccessRecord is the persisted per-user access row.
type AccessRecord struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CompanyID int64     `json:"company_id" db:"company_id"`
	Role      string    `json:"role" db:"role"`
	TabAccess
	Capabilities
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Permissions converts the stored flags into the resolved shape.
func (r *AccessRecord) Permissions() Permissions {
	return Permissions{
		Role:        r.Role,
		Tabs:        r.TabAccess,
		Permissions: r.Capabilities,
	}
}

var rolePermissions = map[string]Permissions{
	RoleOwner: {
		Role: RoleOwner,
		Tabs: TabAccess{
			Overview: true, Projects: true, Crops: true, Financials: true,
			Sales: true, Purchases: true, Inventory: true, Reports: true,
		},
		Permissions: Capabilities{
			ExportData: true, ModifyFilters: true, ViewCosts: true, ViewProfits: true,
		},
	},
	RoleManager: {
		Role: RoleManager,
		Tabs: TabAccess{
			Overview: true, Projects: true, Crops: true, Financials: true,
			Sales: true, Purchases: true, Inventory: true, Reports: true,
		},
		Permissions: Capabilities{
			ExportData: true, ModifyFilters: true, ViewCosts: true, ViewProfits: false,
		},
	},
	RoleAccountant: {
		Role: RoleAccountant,
		Tabs: TabAccess{
			Overview: true, Projects: false, Crops: false, Financials: true,
			Sales: true, Purchases: true, Inventory: true, Reports: true,
		},
		Permissions: Capabilities{
			ExportData: true, ModifyFilters: false, ViewCosts: true, ViewProfits: true,
		},
	},
}

// RolePermissions returns the permission template for a role. Unknown roles
// get the all-false no_access set.
func RolePermissions(role string) Permissions {
	if perms, ok := rolePermissions[role]; ok {
		return perms
	}
	return Permissions{Role: RoleNoAccess}
}

// TabInfo describes a tab for menu rendering.
type TabInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var tabDisplay = []TabInfo{
	{Key: TabOverview, Label: "Overview", Icon: "fa-chart-pie"},
	{Key: TabProjects, Label: "Projects", Icon: "fa-seedling"},
	{Key: TabCrops, Label: "Crops", Icon: "fa-leaf"},
	{Key: TabFinancials, Label: "Financials", Icon: "fa-coins"},
	{Key: TabSales, Label: "Sales", Icon: "fa-cart-shopping"},
	{Key: TabPurchases, Label: "Purchases", Icon: "fa-truck"},
	{Key: TabInventory, Label: "Inventory", Icon: "fa-warehouse"},
	{Key: TabReports, Label: "Reports", Icon: "fa-clipboard-list"},
}

// TabDisplayOrder returns all tabs in fixed display order.
func TabDisplayOrder() []TabInfo {
	return tabDisplay
}
