package domain

import "time"

// Read-only collaborators owned by the farm-management schema. The dashboard
// never writes these; it only aggregates them.

type Farm struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	CompanyID int64  `json:"company_id" db:"company_id"`
}

type Field struct {
	ID     int64   `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	FarmID int64   `json:"farm_id" db:"farm_id"`
	Area   float64 `json:"area" db:"area"`
}

type Crop struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type CropBOM struct {
	ID     int64   `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	CropID int64   `json:"crop_id" db:"crop_id"`
	Budget float64 `json:"budget" db:"budget"`
}

// Daily report operation types, fixed enumeration.
const (
	OperationPreparation = "preparation"
	OperationPlanting    = "planting"
	OperationFertilizing = "fertilizing"
	OperationIrrigation  = "irrigation"
	OperationPestControl = "pest_control"
	OperationHarvest     = "harvest"
	OperationOther       = "other"
)

type DailyReport struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	ProjectID     int64      `json:"project_id" db:"project_id"`
	ProjectName   string     `json:"project_name" db:"project_name"`
	FarmName      string     `json:"farm_name" db:"farm_name"`
	OperationType string     `json:"operation_type" db:"operation_type"`
	Date          *time.Time `json:"date" db:"date"`
	ActualCost    float64    `json:"actual_cost" db:"actual_cost"`
	State         string     `json:"state" db:"state"`
	CompanyID     int64      `json:"company_id" db:"company_id"`
}

type SaleOrder struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	PartnerName string     `json:"partner_name" db:"partner_name"`
	ProjectID   int64      `json:"project_id" db:"project_id"`
	State       string     `json:"state" db:"state"`
	AmountTotal float64    `json:"amount_total" db:"amount_total"`
	DateOrder   *time.Time `json:"date_order" db:"date_order"`
	CompanyID   int64      `json:"company_id" db:"company_id"`
}

type PurchaseOrder struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	PartnerName string     `json:"partner_name" db:"partner_name"`
	State       string     `json:"state" db:"state"`
	AmountTotal float64    `json:"amount_total" db:"amount_total"`
	DateOrder   *time.Time `json:"date_order" db:"date_order"`
	CompanyID   int64      `json:"company_id" db:"company_id"`
}

type StockMove struct {
	ID            int64   `json:"id" db:"id"`
	ProductID     int64   `json:"product_id" db:"product_id"`
	ProductName   string  `json:"product_name" db:"product_name"`
	Quantity      float64 `json:"quantity" db:"quantity"`
	LocationFrom  string  `json:"location_from" db:"location_from"`
	LocationTo    string  `json:"location_to" db:"location_to"`
	State         string  `json:"state" db:"state"`
	DailyReportID *int64  `json:"daily_report_id" db:"daily_report_id"`
	Origin        string  `json:"origin" db:"origin"`
	CompanyID     int64   `json:"company_id" db:"company_id"`
}

// Account move types mirroring the ledger schema.
const (
	MoveTypeCustomerInvoice = "out_invoice"
	MoveTypeCustomerRefund  = "out_refund"
	MoveTypeVendorBill      = "in_invoice"
	MoveTypeVendorRefund    = "in_refund"
)

type AccountMove struct {
	ID             int64      `json:"id" db:"id"`
	MoveType       string     `json:"move_type" db:"move_type"`
	State          string     `json:"state" db:"state"`
	InvoiceDate    *time.Time `json:"invoice_date" db:"invoice_date"`
	AmountTotal    float64    `json:"amount_total" db:"amount_total"`
	AmountResidual float64    `json:"amount_residual" db:"amount_residual"`
	CompanyID      int64      `json:"company_id" db:"company_id"`
}

type AnalyticLine struct {
	ID            int64      `json:"id" db:"id"`
	AccountID     int64      `json:"account_id" db:"account_id"`
	AccountName   string     `json:"account_name" db:"account_name"`
	Amount        float64    `json:"amount" db:"amount"`
	Date          *time.Time `json:"date" db:"date"`
	DailyReportID *int64     `json:"daily_report_id" db:"daily_report_id"`
	CompanyID     int64      `json:"company_id" db:"company_id"`
}

type Product struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	CategoryName  string  `json:"category_name" db:"category_name"`
	QtyAvailable  float64 `json:"qty_available" db:"qty_available"`
	StandardPrice float64 `json:"standard_price" db:"standard_price"`
}

type ProjectTask struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	ProjectID   int64  `json:"project_id" db:"project_id"`
	ProjectName string `json:"project_name" db:"project_name"`
	StageName   string `json:"stage_name" db:"stage_name"`
	CompanyID   int64  `json:"company_id" db:"company_id"`
}

type MaintenanceRequest struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	EquipmentName string `json:"equipment_name" db:"equipment_name"`
	StageName     string `json:"stage_name" db:"stage_name"`
	CompanyID     int64  `json:"company_id" db:"company_id"`
}

// User is the minimal identity the dashboard needs.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Login     string `json:"login" db:"login"`
	CompanyID int64  `json:"company_id" db:"company_id"`
}
