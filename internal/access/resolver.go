package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/agristack/farmdash/internal/repository/postgres"
	"github.com/rs/zerolog/log"
)

// Policy decides whether group membership is enforced at all.
const (
	PolicyEnforce      = "enforce"
	PolicyDemoAllowAll = "demo_allow_all"
)

// roleGroups is checked in priority order; the first matching group wins.
var roleGroups = []struct {
	group string
	role  string
}{
	{domain.GroupSystemAdmin, domain.RoleOwner},
	{domain.GroupFarmOwner, domain.RoleOwner},
	{domain.GroupFarmManager, domain.RoleManager},
	{domain.GroupFarmAccountant, domain.RoleAccountant},
}

// Resolver turns a user's group memberships into dashboard permissions and
// keeps the persisted access record in step with them.
type Resolver struct {
	groups repository.GroupRepository
	access repository.AccessRepository
	policy string
}

func NewResolver(groups repository.GroupRepository, access repository.AccessRepository, policy string) *Resolver {
	if policy == "" {
		policy = PolicyEnforce
	}
	return &Resolver{groups: groups, access: access, policy: policy}
}

// roleFromGroups walks the group priority list and returns the first role
// whose group the user belongs to.
func (r *Resolver) roleFromGroups(ctx context.Context, userID int64) (string, error) {
	for _, rg := range roleGroups {
		in, err := r.groups.UserInGroup(ctx, userID, rg.group)
		if err != nil {
			return "", fmt.Errorf("failed to resolve groups for user %d: %w", userID, err)
		}
		if in {
			return rg.role, nil
		}
	}
	return domain.RoleNoAccess, nil
}

// Resolve returns the effective permissions for a user. Under the demo
// policy everyone gets the owner template. Otherwise the role comes from
// group membership and the stored access record is created or corrected to
// match; persistence failures are logged and the template is served anyway.
func (r *Resolver) Resolve(ctx context.Context, userID, companyID int64) (domain.Permissions, error) {
	if r.policy == PolicyDemoAllowAll {
		return domain.RolePermissions(domain.RoleOwner), nil
	}

	role, err := r.roleFromGroups(ctx, userID)
	if err != nil {
		return domain.Permissions{}, err
	}
	if role == domain.RoleNoAccess {
		return domain.RolePermissions(domain.RoleNoAccess), nil
	}

	perms := domain.RolePermissions(role)

	record, err := r.access.GetAccessRecord(ctx, userID)
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		if _, createErr := r.access.CreateAccessRecord(ctx, userID, companyID, role, perms); createErr != nil {
			log.Warn().Err(createErr).Int64("user_id", userID).Msg("failed to create access record")
		}
	case err != nil:
		log.Warn().Err(err).Int64("user_id", userID).Msg("failed to load access record")
	case record.Role != role:
		// Groups are authoritative; a stale stored role is overwritten.
		if updateErr := r.access.UpdateAccessRole(ctx, record.ID, role, perms); updateErr != nil {
			log.Warn().Err(updateErr).Int64("user_id", userID).Msg("failed to update access record")
		}
	}

	return perms, nil
}

// CheckTabAccess reports whether the user may open the given tab.
func (r *Resolver) CheckTabAccess(ctx context.Context, userID, companyID int64, tab string) (bool, error) {
	perms, err := r.Resolve(ctx, userID, companyID)
	if err != nil {
		return false, err
	}
	return perms.Tabs.Tab(tab), nil
}

// AccessibleTabs returns the tabs the user may see, in display order.
func (r *Resolver) AccessibleTabs(ctx context.Context, userID, companyID int64) ([]domain.TabInfo, error) {
	perms, err := r.Resolve(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	var tabs []domain.TabInfo
	for _, info := range domain.TabDisplayOrder() {
		if perms.Tabs.Tab(info.Key) {
			tabs = append(tabs, info)
		}
	}
	return tabs, nil
}
