package role

import (
	"context"

	"github.com/google/uuid"

	"github.com/arraypress/contentquery/internal/domain"
)

// IRoleService answers capability checks and manages the role catalogue.
type IRoleService interface {
	UserCan(ctx context.Context, userID uuid.UUID, capability string) (bool, error)
	GetRole(ctx context.Context, name string) (*domain.Role, error)
	SaveRole(ctx context.Context, role *domain.Role) error
	ListRoles(ctx context.Context) ([]*domain.Role, error)
	AddCapability(ctx context.Context, roleName, capability string) error
	RemoveCapability(ctx context.Context, roleName, capability string) error
}
