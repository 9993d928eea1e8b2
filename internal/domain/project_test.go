package domain

import (
	"testing"
	"time"
)

var allStates = []string{
	StateDraft, StatePlanning, StatePreparation, StateSowing,
	StateGrowing, StateHarvest, StateSales, StateDone, StateCancel,
}

func TestProjectProgressBounds(t *testing.T) {
	for _, state := range allStates {
		first := ProjectProgress(state)
		if first < 0 || first > 100 {
			t.Errorf("progress(%s) = %d, out of [0,100]", state, first)
		}
		if second := ProjectProgress(state); second != first {
			t.Errorf("progress(%s) not stable: %d then %d", state, first, second)
		}
	}

	if ProjectProgress("bogus") != 0 {
		t.Error("unknown state should report zero progress")
	}
	if ProjectProgress(StateDone) != 100 {
		t.Errorf("done progress = %d, want 100", ProjectProgress(StateDone))
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StateDraft, StatePlanning, true},
		{StateDraft, StateHarvest, false},
		{StateHarvest, StateDone, true},
		{StateHarvest, StateSales, true},
		{StateSales, StateDone, true},
		{StateGrowing, StateSowing, false},
		{StateDone, StateDraft, false},
		{StateCancel, StatePlanning, false},
		{StateGrowing, StateCancel, true},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStatesHaveNoTransitions(t *testing.T) {
	for _, state := range []string{StateDone, StateCancel} {
		if next := StateTransitions(state); len(next) != 0 {
			t.Errorf("%s should be terminal, got transitions %v", state, next)
		}
	}
}

func TestActiveStates(t *testing.T) {
	active := []string{StatePreparation, StateSowing, StateGrowing, StateHarvest, StateSales}
	inactive := []string{StateDraft, StatePlanning, StateDone, StateCancel}

	for _, state := range active {
		if !IsActiveState(state) {
			t.Errorf("%s should be active", state)
		}
	}
	for _, state := range inactive {
		if IsActiveState(state) {
			t.Errorf("%s should not be active", state)
		}
	}
}

func TestProjectProfit(t *testing.T) {
	p := Project{Revenue: 4100, ActualCost: 2750}
	if got := p.Profit(); got != 1350 {
		t.Errorf("profit = %v, want 1350", got)
	}
}

func TestProjectIsOverdue(t *testing.T) {
	day := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}
	today := *day("2026-08-30")

	tests := []struct {
		name string
		p    Project
		want bool
	}{
		{"running past planned end", Project{State: StateGrowing, PlannedEndDate: day("2026-08-01")}, true},
		{"running before planned end", Project{State: StateGrowing, PlannedEndDate: day("2026-09-15")}, false},
		{"done late", Project{State: StateDone, PlannedEndDate: day("2026-08-01"), ActualEndDate: day("2026-08-10")}, true},
		{"done on time", Project{State: StateDone, PlannedEndDate: day("2026-08-10"), ActualEndDate: day("2026-08-01")}, false},
		{"cancelled never overdue", Project{State: StateCancel, PlannedEndDate: day("2026-01-01")}, false},
		{"no planned end", Project{State: StateGrowing}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsOverdue(today); got != tt.want {
				t.Errorf("IsOverdue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashboardChannel(t *testing.T) {
	if got := DashboardChannel(42); got != "farm_dashboard_42" {
		t.Errorf("channel = %q", got)
	}
}

func TestRolePermissionsMatrix(t *testing.T) {
	owner := RolePermissions(RoleOwner)
	if !owner.Tabs.Financials || !owner.Permissions.ViewProfits {
		t.Error("owner must have full access")
	}

	manager := RolePermissions(RoleManager)
	if manager.Permissions.ViewProfits {
		t.Error("manager must not view profits")
	}
	if !manager.Tabs.Projects || !manager.Permissions.ExportData {
		t.Error("manager keeps projects tab and export")
	}

	accountant := RolePermissions(RoleAccountant)
	if accountant.Tabs.Projects || accountant.Tabs.Crops {
		t.Error("accountant must not see projects or crops tabs")
	}
	if !accountant.Permissions.ViewProfits || accountant.Permissions.ModifyFilters {
		t.Error("accountant sees profits but cannot modify filters")
	}

	none := RolePermissions("whatever")
	if none.Role != RoleNoAccess || none.Tabs.Overview || none.Permissions.ExportData {
		t.Error("unknown roles collapse to all-false no_access")
	}
}
