package auth

import (
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/domain"
	"github.com/arraypress/contentquery/internal/global/logger"
	"github.com/arraypress/contentquery/internal/static/errs"
)

var _ IAuthService = &localAuthService{}

type localAuthService struct {
	userPort    secondary.UserPort
	rolePort    secondary.RoleRepository
	jwtProvider primary.JWTService
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	rolePort secondary.RoleRepository,
	jwtProvider primary.JWTService,
) IAuthService {
	return &localAuthService{
		userPort:    userPort,
		rolePort:    rolePort,
		jwtProvider: jwtProvider,
	}
}

func (g localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

func (g localAuthService) Login(ctx context.Context, userName, password string) (string, error) {
	usr, err := g.userPort.GetByUserName(ctx, userName)
	if err != nil {
		return "", err
	}
	if usr == nil || usr.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, password)
	if err != nil {
		return "", errs.InvalidCredentials
	}
	if !valid {
		return "", errs.InvalidCredentials
	}

	authPayload := domain.AuthPayload{
		Username:   usr.UserName,
		Role:       usr.Role,
		Capability: g.capabilities(ctx, usr),
	}
	encoded, err := json.Marshal(authPayload)
	if err != nil {
		return "", errs.InternalError
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(encoded, &payload); err != nil {
		logger.Error("Failed to unmarshal auth payload", "error", err)
		return "", errs.InternalError
	}
	token, err := g.jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, payload)
	if err != nil {
		return "", errs.GeneratingToken
	}
	return token, nil
}

// capabilities flattens the user's role into its capability list. A missing
// role yields an empty claim set rather than a failed login.
func (g localAuthService) capabilities(ctx context.Context, usr *domain.Users) []string {
	if usr.SuperAdmin {
		return []string{"*"}
	}
	role, err := g.rolePort.GetRole(ctx, usr.Role)
	if err != nil || role == nil {
		logger.Warn("Failed to resolve role for login", "role", usr.Role, "error", err)
		return []string{}
	}
	return role.Capabilities
}
