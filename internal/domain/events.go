package domain

import (
	"fmt"
	"time"
)

// Dashboard event types published to the per-company channel.
const (
	EventProjectCreated            = "project_created"
	EventProjectStateChanged       = "project_state_changed"
	EventProjectFinancialUpdated   = "project_financial_updated"
	EventProjectDeleted            = "project_deleted"
	EventDailyReportStateChanged   = "daily_report_state_changed"
	EventStockMoveValidated        = "stock_move_validated"
	EventAnalyticLineCreated       = "analytic_line_created"
	EventPurchaseOrderStateChanged = "purchase_order_state_changed"
	EventSaleOrderStateChanged     = "sale_order_state_changed"
	EventTaskStageChanged          = "task_stage_changed"
	EventMaintenanceStageChanged   = "maintenance_request_stage_changed"
	EventInvalidateCache           = "invalidate_cache"
)

// Event is the wire format for dashboard push notifications.
type Event struct {
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// DashboardChannel names the per-company pub/sub topic.
func DashboardChannel(companyID int64) string {
	return fmt.Sprintf("farm_dashboard_%d", companyID)
}
