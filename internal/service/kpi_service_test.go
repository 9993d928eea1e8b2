package service

import (
	"context"
	"testing"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
)

type fakeKPIRepo struct {
	aggregates []repository.StateAggregate
	err        error
}

func (f *fakeKPIRepo) StateAggregates(ctx context.Context, companyID int64, filter *domain.DashboardFilter) ([]repository.StateAggregate, error) {
	return f.aggregates, f.err
}

func TestZeroDenominatorsYieldZero(t *testing.T) {
	if got := BudgetVariance(0, 500); got != 0 {
		t.Errorf("BudgetVariance(0, 500) = %v, want 0", got)
	}
	if got := ProfitMargin(100, 0); got != 0 {
		t.Errorf("ProfitMargin(100, 0) = %v, want 0", got)
	}
	if got := CompletionRate(3, 0); got != 0 {
		t.Errorf("CompletionRate(3, 0) = %v, want 0", got)
	}
	if got := ReturnOnInvestment(100, 0); got != 0 {
		t.Errorf("ReturnOnInvestment(100, 0) = %v, want 0", got)
	}
}

func TestOverviewKPIScenario(t *testing.T) {
	repo := &fakeKPIRepo{aggregates: []repository.StateAggregate{
		{State: domain.StateGrowing, Count: 1, Budget: 1000, ActualCost: 1200, Revenue: 0, FieldArea: 2.5},
	}}
	svc := NewKPIService(repo)

	kpis, stageCounts, err := svc.OverviewKPIs(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("OverviewKPIs returned error: %v", err)
	}

	if kpis.BudgetVariance != 20.0 {
		t.Errorf("budget_variance = %v, want 20.0", kpis.BudgetVariance)
	}
	if kpis.ProfitMargin != 0 {
		t.Errorf("profit_margin = %v, want 0", kpis.ProfitMargin)
	}
	if kpis.ActiveProjects != 1 {
		t.Errorf("active_projects = %d, want 1", kpis.ActiveProjects)
	}
	if kpis.TotalProfit != kpis.TotalRevenue-kpis.TotalActualCost {
		t.Errorf("profit identity broken: %v != %v - %v", kpis.TotalProfit, kpis.TotalRevenue, kpis.TotalActualCost)
	}
	if stageCounts[domain.StateGrowing] != 1 {
		t.Errorf("stage counts = %v", stageCounts)
	}
}

func TestFinancialKPIIdentities(t *testing.T) {
	repo := &fakeKPIRepo{aggregates: []repository.StateAggregate{
		{State: domain.StateDone, Count: 2, Budget: 50000, ActualCost: 42000, Revenue: 61000},
		{State: domain.StateGrowing, Count: 1, Budget: 20000, ActualCost: 9000, Revenue: 0},
	}}
	svc := NewKPIService(repo)

	kpis, err := svc.FinancialKPIs(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("FinancialKPIs returned error: %v", err)
	}

	if kpis.TotalProfit != kpis.TotalRevenue-kpis.TotalActualCost {
		t.Errorf("profit identity broken: %+v", kpis)
	}
	wantVariance := (51000.0 - 70000.0) / 70000.0 * 100
	if kpis.BudgetVariance != wantVariance {
		t.Errorf("budget_variance = %v, want %v", kpis.BudgetVariance, wantVariance)
	}
	wantROI := kpis.TotalProfit / 51000.0 * 100
	if kpis.ROI != wantROI {
		t.Errorf("roi = %v, want %v", kpis.ROI, wantROI)
	}
}
