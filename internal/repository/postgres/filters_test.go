package postgres

import (
	"reflect"
	"strings"
	"testing"

	"github.com/agristack/farmdash/internal/domain"
)

func TestEmptyFilterYieldsNoClause(t *testing.T) {
	for _, filter := range []*domain.DashboardFilter{nil, {}} {
		clause, args := buildProjectFilterClause(filter, "p.", 2)
		if clause != "" || args != nil {
			t.Errorf("empty filter produced clause %q with args %v", clause, args)
		}
	}
}

func TestFilterClauseIsPure(t *testing.T) {
	min := 100.0
	filter := &domain.DashboardFilter{
		DateFrom:  "2026-01-01",
		FarmIDs:   []int64{1, 2},
		Stage:     domain.StateGrowing,
		Search:    "corn",
		BudgetMin: &min,
	}

	clause1, args1 := buildProjectFilterClause(filter, "p.", 2)
	clause2, args2 := buildProjectFilterClause(filter, "p.", 2)

	if clause1 != clause2 || !reflect.DeepEqual(args1, args2) {
		t.Errorf("same filter produced different output:\n%q %v\n%q %v", clause1, args1, clause2, args2)
	}
}

func TestFilterClauseContents(t *testing.T) {
	min, max := 100.0, 5000.0
	filter := &domain.DashboardFilter{
		DateFrom:  "2026-01-01",
		DateTo:    "2026-06-30",
		FarmIDs:   []int64{3, 7},
		Stage:     domain.StateHarvest,
		Search:    "corn",
		BudgetMin: &min,
		BudgetMax: &max,
	}

	clause, args := buildProjectFilterClause(filter, "p.", 2)

	for _, want := range []string{
		"p.start_date >= $2",
		"p.start_date <= $3",
		"p.farm_id IN ($4,$5)",
		"p.state = $6",
		"p.name ILIKE $7",
		"p.code ILIKE $8",
		"p.budget >= $9",
		"p.budget <= $10",
	} {
		if !strings.Contains(clause, want) {
			t.Errorf("clause missing %q:\n%s", want, clause)
		}
	}

	wantArgs := []interface{}{"2026-01-01", "2026-06-30", int64(3), int64(7), domain.StateHarvest, "%corn%", "%corn%", min, max}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestFarmIDsWinOverFarmID(t *testing.T) {
	filter := &domain.DashboardFilter{FarmIDs: []int64{9}, FarmID: "4"}

	clause, args := buildProjectFilterClause(filter, "", 1)
	if !strings.Contains(clause, "farm_id IN ($1)") {
		t.Errorf("clause = %q, want IN-list form", clause)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Errorf("args = %v, want [9]", args)
	}
}

func TestInvalidNumericFiltersIgnored(t *testing.T) {
	filter := &domain.DashboardFilter{FarmID: "abc", CropID: "xyz"}

	clause, args := buildProjectFilterClause(filter, "", 1)
	if clause != "" || args != nil {
		t.Errorf("invalid ids should be ignored, got %q %v", clause, args)
	}
}
