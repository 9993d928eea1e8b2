package notify

import (
	"context"
	"strings"

	"github.com/agristack/farmdash/internal/bus"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/rs/zerolog/log"
)

// CacheInvalidator drops cached dashboard payloads for a company.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context, companyID int64) error
}

// Forwarder translates record changes into dashboard events. Every domain
// event is paired with an invalidate_cache event so connected clients refetch.
// Publishing is fire and forget: failures are logged, never returned.
type Forwarder struct {
	publisher bus.Publisher
	cache     CacheInvalidator
}

func NewForwarder(publisher bus.Publisher, cache CacheInvalidator) *Forwarder {
	return &Forwarder{publisher: publisher, cache: cache}
}

func (f *Forwarder) emit(ctx context.Context, companyID int64, eventType string, data map[string]any) {
	if f.cache != nil {
		if err := f.cache.InvalidateAll(ctx, companyID); err != nil {
			log.Warn().Err(err).Int64("company_id", companyID).Msg("cache invalidation failed")
		}
	}

	for _, event := range []domain.Event{
		{Type: eventType, Data: data},
		{Type: domain.EventInvalidateCache, Data: map[string]any{"reason": eventType}},
	} {
		if err := f.publisher.Publish(ctx, companyID, event); err != nil {
			log.Warn().Err(err).Str("event", event.Type).Int64("company_id", companyID).Msg("event publish failed")
		}
	}
}

func (f *Forwarder) ProjectCreated(ctx context.Context, p *domain.Project) {
	f.emit(ctx, p.CompanyID, domain.EventProjectCreated, map[string]any{
		"project_id": p.ID,
		"name":       p.Name,
		"state":      p.State,
	})
}

func (f *Forwarder) ProjectStateChanged(ctx context.Context, p *domain.Project, oldState string) {
	f.emit(ctx, p.CompanyID, domain.EventProjectStateChanged, map[string]any{
		"project_id": p.ID,
		"name":       p.Name,
		"old_state":  oldState,
		"new_state":  p.State,
	})
}

func (f *Forwarder) ProjectFinancialUpdated(ctx context.Context, p *domain.Project) {
	f.emit(ctx, p.CompanyID, domain.EventProjectFinancialUpdated, map[string]any{
		"project_id":  p.ID,
		"budget":      p.Budget,
		"actual_cost": p.ActualCost,
		"revenue":     p.Revenue,
	})
}

func (f *Forwarder) ProjectDeleted(ctx context.Context, projectID, companyID int64) {
	f.emit(ctx, companyID, domain.EventProjectDeleted, map[string]any{
		"project_id": projectID,
	})
}

func (f *Forwarder) DailyReportStateChanged(ctx context.Context, r *domain.DailyReport) {
	f.emit(ctx, r.CompanyID, domain.EventDailyReportStateChanged, map[string]any{
		"report_id":  r.ID,
		"project_id": r.ProjectID,
		"state":      r.State,
	})
}

// StockMoveValidated forwards only moves traceable to a daily report or a
// farm-tagged origin; other warehouse traffic is not dashboard material.
func (f *Forwarder) StockMoveValidated(ctx context.Context, m *domain.StockMove) {
	if m.DailyReportID == nil && !strings.Contains(strings.ToLower(m.Origin), "farm") {
		return
	}
	f.emit(ctx, m.CompanyID, domain.EventStockMoveValidated, map[string]any{
		"move_id":    m.ID,
		"product_id": m.ProductID,
		"quantity":   m.Quantity,
	})
}

// AnalyticLineCreated forwards only lines attached to a daily report.
func (f *Forwarder) AnalyticLineCreated(ctx context.Context, l *domain.AnalyticLine) {
	if l.DailyReportID == nil {
		return
	}
	f.emit(ctx, l.CompanyID, domain.EventAnalyticLineCreated, map[string]any{
		"line_id":    l.ID,
		"account_id": l.AccountID,
		"amount":     l.Amount,
	})
}

func (f *Forwarder) PurchaseOrderStateChanged(ctx context.Context, o *domain.PurchaseOrder) {
	f.emit(ctx, o.CompanyID, domain.EventPurchaseOrderStateChanged, map[string]any{
		"order_id": o.ID,
		"name":     o.Name,
		"state":    o.State,
	})
}

func (f *Forwarder) SaleOrderStateChanged(ctx context.Context, o *domain.SaleOrder) {
	f.emit(ctx, o.CompanyID, domain.EventSaleOrderStateChanged, map[string]any{
		"order_id": o.ID,
		"name":     o.Name,
		"state":    o.State,
	})
}

// TaskStageChanged forwards only tasks whose project looks farm related.
func (f *Forwarder) TaskStageChanged(ctx context.Context, t *domain.ProjectTask) {
	name := strings.ToLower(t.ProjectName)
	if !strings.Contains(name, "farm") && !strings.Contains(name, "cultivation") {
		return
	}
	f.emit(ctx, t.CompanyID, domain.EventTaskStageChanged, map[string]any{
		"task_id": t.ID,
		"name":    t.Name,
		"stage":   t.StageName,
	})
}

func (f *Forwarder) MaintenanceStageChanged(ctx context.Context, m *domain.MaintenanceRequest) {
	f.emit(ctx, m.CompanyID, domain.EventMaintenanceStageChanged, map[string]any{
		"request_id": m.ID,
		"equipment":  m.EquipmentName,
		"stage":      m.StageName,
	})
}
