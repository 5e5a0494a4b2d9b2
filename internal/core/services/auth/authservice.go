package auth

import (
	"context"

	"github.com/arraypress/contentquery/internal/domain"
)

type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, userName, password string) (string, error)
}
