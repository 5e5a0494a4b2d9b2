package role

import (
	"context"

	"github.com/google/uuid"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/domain"
	"github.com/arraypress/contentquery/internal/static/errs"
)

type roleService struct {
	users  secondary.UserPort
	roles  secondary.RoleRepository
	logger primary.Logger
}

var _ IRoleService = &roleService{}

func NewRoleService(users secondary.UserPort, roles secondary.RoleRepository, logger primary.Logger) IRoleService {
	return &roleService{
		users:  users,
		roles:  roles,
		logger: logger,
	}
}

// UserCan resolves the user's role and checks the capability against it.
// Super admins pass every check.
func (s *roleService) UserCan(ctx context.Context, userID uuid.UUID, capability string) (bool, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, errs.UserNotFound
	}
	if user.SuperAdmin {
		return true, nil
	}

	role, err := s.roles.GetRole(ctx, user.Role)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, errs.RoleNotFound
	}
	return role.Can(capability), nil
}

func (s *roleService) GetRole(ctx context.Context, name string) (*domain.Role, error) {
	role, err := s.roles.GetRole(ctx, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errs.RoleNotFound
	}
	return role, nil
}

func (s *roleService) SaveRole(ctx context.Context, role *domain.Role) error {
	return s.roles.SaveRole(ctx, role)
}

func (s *roleService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.ListRoles(ctx)
}

func (s *roleService) AddCapability(ctx context.Context, roleName, capability string) error {
	role, err := s.GetRole(ctx, roleName)
	if err != nil {
		return err
	}
	if role.Can(capability) {
		return nil
	}
	role.Capabilities = append(role.Capabilities, capability)
	return s.roles.SaveRole(ctx, role)
}

func (s *roleService) RemoveCapability(ctx context.Context, roleName, capability string) error {
	role, err := s.GetRole(ctx, roleName)
	if err != nil {
		return err
	}
	kept := role.Capabilities[:0]
	for _, c := range role.Capabilities {
		if c != capability {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(role.Capabilities) {
		return nil
	}
	role.Capabilities = kept
	return s.roles.SaveRole(ctx, role)
}
