package cache

import (
	"strings"
	"testing"

	"github.com/agristack/farmdash/internal/domain"
)

func TestCacheKeyDistinguishesFilters(t *testing.T) {
	empty := cacheKey(1, domain.TabOverview, nil)
	zero := cacheKey(1, domain.TabOverview, &domain.DashboardFilter{})
	if empty != zero {
		t.Errorf("nil and zero filters should share a key: %q vs %q", empty, zero)
	}
	if !strings.HasSuffix(empty, ":none") {
		t.Errorf("unfiltered key = %q, want :none suffix", empty)
	}

	filtered := cacheKey(1, domain.TabOverview, &domain.DashboardFilter{Stage: domain.StateGrowing})
	if filtered == empty {
		t.Error("filtered key must differ from the unfiltered key")
	}

	other := cacheKey(1, domain.TabOverview, &domain.DashboardFilter{Stage: domain.StateHarvest})
	if filtered == other {
		t.Error("different filters must produce different keys")
	}
}

func TestCacheKeyScopedByCompanyAndTab(t *testing.T) {
	a := cacheKey(1, domain.TabOverview, nil)
	b := cacheKey(2, domain.TabOverview, nil)
	c := cacheKey(1, domain.TabSales, nil)

	if a == b {
		t.Error("keys must be scoped by company")
	}
	if a == c {
		t.Error("keys must be scoped by tab")
	}
	if !strings.HasPrefix(a, "dashboard:1:") {
		t.Errorf("key = %q, want dashboard:1: prefix", a)
	}
}
