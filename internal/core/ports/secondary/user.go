package secondary

import (
	"context"

	"github.com/google/uuid"

	"github.com/arraypress/contentquery/internal/domain"
)

type UserPort interface {
	Create(ctx context.Context, user *domain.Users) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Users, error)
	GetByUserName(ctx context.Context, userName string) (*domain.Users, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoleRepository abstracts the role table; no ambient global registry.
type RoleRepository interface {
	GetRole(ctx context.Context, name string) (*domain.Role, error)
	SaveRole(ctx context.Context, role *domain.Role) error
	ListRoles(ctx context.Context) ([]*domain.Role, error)
}
