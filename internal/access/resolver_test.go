package access

import (
	"context"
	"testing"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository/postgres"
)

type fakeGroups struct {
	memberships map[string]bool
	err         error
}

func (f *fakeGroups) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return &domain.User{ID: userID, Name: "Test User", CompanyID: 1}, nil
}

func (f *fakeGroups) UserInGroup(ctx context.Context, userID int64, group string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.memberships[group], nil
}

type fakeAccess struct {
	record  *domain.AccessRecord
	created *domain.AccessRecord
	updated string
}

func (f *fakeAccess) GetAccessRecord(ctx context.Context, userID int64) (*domain.AccessRecord, error) {
	if f.record == nil {
		return nil, postgres.ErrNotFound
	}
	return f.record, nil
}

func (f *fakeAccess) CreateAccessRecord(ctx context.Context, userID, companyID int64, role string, perms domain.Permissions) (*domain.AccessRecord, error) {
	rec := &domain.AccessRecord{ID: 1, UserID: userID, CompanyID: companyID, Role: role}
	f.created = rec
	return rec, nil
}

func (f *fakeAccess) UpdateAccessRole(ctx context.Context, id int64, role string, perms domain.Permissions) error {
	f.updated = role
	return nil
}

func TestResolveRoleFromGroups(t *testing.T) {
	tests := []struct {
		name        string
		memberships map[string]bool
		wantRole    string
	}{
		{
			name:        "system admin wins",
			memberships: map[string]bool{domain.GroupSystemAdmin: true, domain.GroupFarmAccountant: true},
			wantRole:    domain.RoleOwner,
		},
		{
			name:        "farm owner",
			memberships: map[string]bool{domain.GroupFarmOwner: true},
			wantRole:    domain.RoleOwner,
		},
		{
			name:        "manager outranks accountant",
			memberships: map[string]bool{domain.GroupFarmManager: true, domain.GroupFarmAccountant: true},
			wantRole:    domain.RoleManager,
		},
		{
			name:        "accountant",
			memberships: map[string]bool{domain.GroupFarmAccountant: true},
			wantRole:    domain.RoleAccountant,
		},
		{
			name:        "no farm group means no access",
			memberships: map[string]bool{domain.GroupDashboardAccess: true},
			wantRole:    domain.RoleNoAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(&fakeGroups{memberships: tt.memberships}, &fakeAccess{}, PolicyEnforce)

			perms, err := resolver.Resolve(context.Background(), 7, 1)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if perms.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", perms.Role, tt.wantRole)
			}
		})
	}
}

func TestResolvePermissionMatrix(t *testing.T) {
	tests := []struct {
		name  string
		group string
		want  domain.Permissions
	}{
		{
			name:  "owner",
			group: domain.GroupFarmOwner,
			want: domain.Permissions{
				Role: domain.RoleOwner,
				Tabs: domain.TabAccess{
					Overview: true, Projects: true, Crops: true, Financials: true,
					Sales: true, Purchases: true, Inventory: true, Reports: true,
				},
				Permissions: domain.Capabilities{
					ExportData: true, ModifyFilters: true, ViewCosts: true, ViewProfits: true,
				},
			},
		},
		{
			name:  "manager",
			group: domain.GroupFarmManager,
			want: domain.Permissions{
				Role: domain.RoleManager,
				Tabs: domain.TabAccess{
					Overview: true, Projects: true, Crops: true, Financials: true,
					Sales: true, Purchases: true, Inventory: true, Reports: true,
				},
				Permissions: domain.Capabilities{
					ExportData: true, ModifyFilters: true, ViewCosts: true, ViewProfits: false,
				},
			},
		},
		{
			name:  "accountant",
			group: domain.GroupFarmAccountant,
			want: domain.Permissions{
				Role: domain.RoleAccountant,
				Tabs: domain.TabAccess{
					Overview: true, Projects: false, Crops: false, Financials: true,
					Sales: true, Purchases: true, Inventory: true, Reports: true,
				},
				Permissions: domain.Capabilities{
					ExportData: true, ModifyFilters: false, ViewCosts: true, ViewProfits: true,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Start from a stored record of a different role so the matrix
			// is proven to follow the groups, not the stale row.
			store := &fakeAccess{record: &domain.AccessRecord{ID: 4, UserID: 7, Role: domain.RoleNoAccess}}
			resolver := NewResolver(&fakeGroups{memberships: map[string]bool{tt.group: true}}, store, PolicyEnforce)

			perms, err := resolver.Resolve(context.Background(), 7, 1)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if perms != tt.want {
				t.Errorf("permissions = %+v, want %+v", perms, tt.want)
			}
			if got := domain.RolePermissions(tt.want.Role); got != tt.want {
				t.Errorf("RolePermissions(%q) = %+v, want %+v", tt.want.Role, got, tt.want)
			}
		})
	}
}

func TestResolveCreatesMissingRecord(t *testing.T) {
	store := &fakeAccess{}
	resolver := NewResolver(&fakeGroups{memberships: map[string]bool{domain.GroupFarmManager: true}}, store, PolicyEnforce)

	perms, err := resolver.Resolve(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if store.created == nil {
		t.Fatal("expected an access record to be created")
	}
	if store.created.Role != domain.RoleManager || store.created.CompanyID != 3 {
		t.Errorf("created record = %+v", store.created)
	}
	if perms.Permissions.ViewProfits {
		t.Error("manager must not see profits")
	}
}

func TestResolveOverwritesStaleRole(t *testing.T) {
	store := &fakeAccess{record: &domain.AccessRecord{ID: 9, UserID: 7, Role: domain.RoleAccountant}}
	resolver := NewResolver(&fakeGroups{memberships: map[string]bool{domain.GroupFarmOwner: true}}, store, PolicyEnforce)

	perms, err := resolver.Resolve(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if store.updated != domain.RoleOwner {
		t.Errorf("stored role updated to %q, want %q", store.updated, domain.RoleOwner)
	}
	if perms.Role != domain.RoleOwner {
		t.Errorf("resolved role = %q, want owner", perms.Role)
	}
}

func TestResolveNoAccessSkipsStore(t *testing.T) {
	store := &fakeAccess{}
	resolver := NewResolver(&fakeGroups{memberships: nil}, store, PolicyEnforce)

	perms, err := resolver.Resolve(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if perms.Role != domain.RoleNoAccess {
		t.Errorf("role = %q, want no_access", perms.Role)
	}
	if store.created != nil {
		t.Error("no_access must not create an access record")
	}
	if perms.Tabs.Overview || perms.Permissions.ExportData {
		t.Error("no_access grants nothing")
	}
}

func TestResolveDemoPolicy(t *testing.T) {
	resolver := NewResolver(&fakeGroups{memberships: nil}, &fakeAccess{}, PolicyDemoAllowAll)

	perms, err := resolver.Resolve(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if perms.Role != domain.RoleOwner {
		t.Errorf("demo policy role = %q, want owner", perms.Role)
	}
}

func TestAccessibleTabsOrdered(t *testing.T) {
	resolver := NewResolver(&fakeGroups{memberships: map[string]bool{domain.GroupFarmAccountant: true}}, &fakeAccess{}, PolicyEnforce)

	tabs, err := resolver.AccessibleTabs(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("AccessibleTabs returned error: %v", err)
	}

	want := []string{
		domain.TabOverview, domain.TabFinancials, domain.TabSales,
		domain.TabPurchases, domain.TabInventory, domain.TabReports,
	}
	if len(tabs) != len(want) {
		t.Fatalf("got %d tabs, want %d", len(tabs), len(want))
	}
	for i, key := range want {
		if tabs[i].Key != key {
			t.Errorf("tabs[%d] = %q, want %q", i, tabs[i].Key, key)
		}
	}
}
