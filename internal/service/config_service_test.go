package service

import (
	"context"
	"errors"
	"testing"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository/postgres"
)

type fakeConfigRepo struct {
	byUser  map[int64]*domain.DashboardConfig
	created *domain.DashboardConfig
}

func (f *fakeConfigRepo) GetConfigByUser(ctx context.Context, userID int64) (*domain.DashboardConfig, error) {
	if cfg, ok := f.byUser[userID]; ok {
		return cfg, nil
	}
	return nil, postgres.ErrNotFound
}
func (f *fakeConfigRepo) GetConfig(ctx context.Context, id int64) (*domain.DashboardConfig, error) {
	return nil, postgres.ErrNotFound
}
func (f *fakeConfigRepo) CreateConfig(ctx context.Context, cfg *domain.DashboardConfig) (*domain.DashboardConfig, error) {
	created := *cfg
	created.ID = 1
	f.created = &created
	return &created, nil
}
func (f *fakeConfigRepo) UpdateConfig(ctx context.Context, cfg *domain.DashboardConfig) error {
	return nil
}
func (f *fakeConfigRepo) DeleteConfig(ctx context.Context, id int64) error { return nil }

type fakeMembershipRepo struct {
	groups map[int64][]string
}

func (f *fakeMembershipRepo) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return &domain.User{ID: userID, Name: "Mark Manager"}, nil
}

func (f *fakeMembershipRepo) UserInGroup(ctx context.Context, userID int64, group string) (bool, error) {
	for _, g := range f.groups[userID] {
		if g == group {
			return true, nil
		}
	}
	return false, nil
}

func TestEnsureDefaultAdmittedGroups(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		want   bool
	}{
		{"system admin", []string{domain.GroupSystemAdmin}, true},
		{"dashboard access only", []string{domain.GroupDashboardAccess}, true},
		{"farm user only", []string{domain.GroupFarmUser}, true},
		{"manager without dashboard access", []string{domain.GroupFarmManager}, false},
		{"no groups", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs := &fakeConfigRepo{byUser: map[int64]*domain.DashboardConfig{}}
			svc := NewConfigService(configs, &fakeMembershipRepo{groups: map[int64][]string{1: tt.groups}}, "enforce")

			cfg, err := svc.EnsureDefault(context.Background(), 1, 1)
			if tt.want {
				if err != nil {
					t.Fatalf("EnsureDefault returned error: %v", err)
				}
				if cfg.DashboardType != domain.TabOverview {
					t.Errorf("default dashboard_type = %q, want %q", cfg.DashboardType, domain.TabOverview)
				}
				return
			}
			if !errors.Is(err, ErrAccessDenied) {
				t.Fatalf("err = %v, want ErrAccessDenied", err)
			}
			if configs.created != nil {
				t.Error("denied user must not get a config record")
			}
		})
	}
}

func TestEnsureDefaultReturnsExisting(t *testing.T) {
	existing := &domain.DashboardConfig{ID: 7, UserID: 1, DashboardType: domain.TabOverview, Active: true}
	configs := &fakeConfigRepo{byUser: map[int64]*domain.DashboardConfig{1: existing}}
	svc := NewConfigService(configs, &fakeMembershipRepo{groups: map[int64][]string{1: {domain.GroupFarmUser}}}, "enforce")

	cfg, err := svc.EnsureDefault(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("EnsureDefault returned error: %v", err)
	}
	if cfg.ID != 7 {
		t.Errorf("config id = %d, want the existing record", cfg.ID)
	}
	if configs.created != nil {
		t.Error("existing config must not be recreated")
	}
}
