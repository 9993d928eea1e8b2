package service

import (
	"context"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
)

// BudgetVariance is the cost overrun as a percentage of budget. Positive
// means overspent. A zero budget yields exactly 0.
func BudgetVariance(budget, actualCost float64) float64 {
	if budget == 0 {
		return 0
	}
	return (actualCost - budget) / budget * 100
}

// ProfitMargin is profit as a percentage of revenue. A zero revenue yields
// exactly 0.
func ProfitMargin(profit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return profit / revenue * 100
}

// CompletionRate is the share of projects in the done state.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// ReturnOnInvestment is profit as a percentage of cost. A zero cost yields
// exactly 0.
func ReturnOnInvestment(profit, actualCost float64) float64 {
	if actualCost == 0 {
		return 0
	}
	return profit / actualCost * 100
}

// KPIService derives headline numbers from grouped state aggregates so the
// hot dashboard path never loads full project rows.
type KPIService struct {
	kpis repository.KPIRepository
}

func NewKPIService(kpis repository.KPIRepository) *KPIService {
	return &KPIService{kpis: kpis}
}

// rollup is the flattened view of a state aggregate set.
type rollup struct {
	total       int
	active      int
	completed   int
	area        float64
	budget      float64
	actualCost  float64
	revenue     float64
	stageCounts map[string]int
}

func rollupAggregates(aggregates []repository.StateAggregate) rollup {
	r := rollup{stageCounts: make(map[string]int, len(aggregates))}
	for _, agg := range aggregates {
		r.total += agg.Count
		r.stageCounts[agg.State] = agg.Count
		if domain.IsActiveState(agg.State) {
			r.active += agg.Count
		}
		if agg.State == domain.StateDone {
			r.completed += agg.Count
		}
		r.area += agg.FieldArea
		r.budget += agg.Budget
		r.actualCost += agg.ActualCost
		r.revenue += agg.Revenue
	}
	return r
}

// OverviewKPIs computes the overview headline numbers for the filtered set.
func (s *KPIService) OverviewKPIs(ctx context.Context, companyID int64, filter *domain.DashboardFilter) (domain.OverviewKPIs, map[string]int, error) {
	aggregates, err := s.kpis.StateAggregates(ctx, companyID, filter)
	if err != nil {
		return domain.OverviewKPIs{}, nil, fmt.Errorf("failed to compute overview KPIs: %w", err)
	}

	r := rollupAggregates(aggregates)
	profit := r.revenue - r.actualCost

	return domain.OverviewKPIs{
		ActiveProjects:    r.active,
		TotalProjects:     r.total,
		CompletedProjects: r.completed,
		TotalArea:         r.area,
		TotalBudget:       r.budget,
		TotalActualCost:   r.actualCost,
		TotalRevenue:      r.revenue,
		TotalProfit:       profit,
		BudgetVariance:    BudgetVariance(r.budget, r.actualCost),
		ProfitMargin:      ProfitMargin(profit, r.revenue),
		CompletionRate:    CompletionRate(r.completed, r.total),
	}, r.stageCounts, nil
}

// FinancialKPIs computes the financials tab headline numbers.
func (s *KPIService) FinancialKPIs(ctx context.Context, companyID int64, filter *domain.DashboardFilter) (domain.FinancialKPIs, error) {
	aggregates, err := s.kpis.StateAggregates(ctx, companyID, filter)
	if err != nil {
		return domain.FinancialKPIs{}, fmt.Errorf("failed to compute financial KPIs: %w", err)
	}

	r := rollupAggregates(aggregates)
	profit := r.revenue - r.actualCost

	return domain.FinancialKPIs{
		TotalBudget:     r.budget,
		TotalActualCost: r.actualCost,
		TotalRevenue:    r.revenue,
		TotalProfit:     profit,
		BudgetVariance:  BudgetVariance(r.budget, r.actualCost),
		ProfitMargin:    ProfitMargin(profit, r.revenue),
		ROI:             ReturnOnInvestment(profit, r.actualCost),
	}, nil
}
