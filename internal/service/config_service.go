package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/agristack/farmdash/internal/access"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/agristack/farmdash/internal/repository/postgres"
	"github.com/rs/zerolog/log"
)

// configGroups are the memberships that admit a user to dashboard configs.
// Any dashboard or farm user may hold a config record; role-based gating
// happens per tab, not here.
var configGroups = []string{
	domain.GroupSystemAdmin,
	domain.GroupDashboardAccess,
	domain.GroupFarmUser,
}

// ConfigService manages per-user dashboard preference records.
type ConfigService struct {
	configs repository.ConfigRepository
	groups  repository.GroupRepository
	policy  string
}

func NewConfigService(configs repository.ConfigRepository, groups repository.GroupRepository, policy string) *ConfigService {
	return &ConfigService{configs: configs, groups: groups, policy: policy}
}

func (s *ConfigService) canManage(ctx context.Context, userID int64) (bool, error) {
	if s.policy == access.PolicyDemoAllowAll {
		return true, nil
	}
	for _, group := range configGroups {
		in, err := s.groups.UserInGroup(ctx, userID, group)
		if err != nil {
			return false, fmt.Errorf("failed to check config access for user %d: %w", userID, err)
		}
		if in {
			return true, nil
		}
	}
	return false, nil
}

// EnsureDefault returns the user's active config, creating the stock one
// when none exists.
func (s *ConfigService) EnsureDefault(ctx context.Context, userID, companyID int64) (*domain.DashboardConfig, error) {
	allowed, err := s.canManage(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	cfg, err := s.configs.GetConfigByUser(ctx, userID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, postgres.ErrNotFound) {
		return nil, err
	}

	user, err := s.groups.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	created, err := s.configs.CreateConfig(ctx, &domain.DashboardConfig{
		Name:            fmt.Sprintf("Farm Dashboard - %s", user.Name),
		UserID:          userID,
		CompanyID:       companyID,
		DashboardType:   domain.TabOverview,
		AccessLevel:     domain.AccessLevelUser,
		AutoRefresh:     true,
		RefreshInterval: 300,
		Active:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default config: %w", err)
	}

	log.Info().Int64("user_id", userID).Int64("config_id", created.ID).Msg("default dashboard config created")

	return created, nil
}

// UpdateConfigRequest carries optional config updates.
type UpdateConfigRequest struct {
	Name            *string `json:"name"`
	DashboardType   *string `json:"dashboard_type"`
	AccessLevel     *string `json:"access_level"`
	AutoRefresh     *bool   `json:"auto_refresh"`
	RefreshInterval *int    `json:"refresh_interval"`
	Active          *bool   `json:"active"`
}

// UpdateConfig applies partial updates to a config record.
func (s *ConfigService) UpdateConfig(ctx context.Context, userID, id int64, req *UpdateConfigRequest) (*domain.DashboardConfig, error) {
	allowed, err := s.canManage(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	cfg, err := s.configs.GetConfig(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		cfg.Name = *req.Name
	}
	if req.DashboardType != nil {
		cfg.DashboardType = *req.DashboardType
	}
	if req.AccessLevel != nil {
		switch *req.AccessLevel {
		case domain.AccessLevelOwner, domain.AccessLevelManager, domain.AccessLevelUser:
			cfg.AccessLevel = *req.AccessLevel
		default:
			return nil, validationErrorf("unknown access_level %q", *req.AccessLevel)
		}
	}
	if req.AutoRefresh != nil {
		cfg.AutoRefresh = *req.AutoRefresh
	}
	if req.RefreshInterval != nil {
		if *req.RefreshInterval < 30 {
			return nil, validationErrorf("refresh_interval must be at least 30 seconds")
		}
		cfg.RefreshInterval = *req.RefreshInterval
	}
	if req.Active != nil {
		cfg.Active = *req.Active
	}

	if err := s.configs.UpdateConfig(ctx, cfg); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update config %d: %w", id, err)
	}

	return cfg, nil
}

// DeleteConfig removes a config record.
func (s *ConfigService) DeleteConfig(ctx context.Context, userID, id int64) error {
	allowed, err := s.canManage(ctx, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrAccessDenied
	}

	if err := s.configs.DeleteConfig(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
