package userrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/domain"
)

var _ secondary.UserPort = &userRepo{}
var _ secondary.RoleRepository = &userRepo{}

var (
	usersTbl = domain.GetUserTable()
	rolesTbl = domain.GetRoleTable()
)

var (
	userColumns = strings.Join([]string{
		usersTbl.ID,
		usersTbl.UserName,
		usersTbl.PasswordHash,
		usersTbl.Email,
		usersTbl.Role,
		usersTbl.SuperAdmin,
	}, ", ")
	roleColumns = strings.Join([]string{
		rolesTbl.Name,
		rolesTbl.DisplayName,
		rolesTbl.Capabilities,
	}, ", ")
)

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

func New(db *sqlx.DB, logger primary.Logger) *userRepo {
	return &userRepo{
		db:     db,
		logger: logger,
	}
}

func (u *userRepo) Create(ctx context.Context, user *domain.Users) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, usersTbl.GetTableName(), userColumns)
	_, err := u.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.UserName,
		user.PasswordHash,
		user.Email,
		user.Role,
		user.SuperAdmin,
	)
	if err != nil {
		u.logger.Error("Failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	var user domain.Users
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, usersTbl.GetTableName(), usersTbl.ID)
	err := u.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u *userRepo) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	var user domain.Users
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, usersTbl.GetTableName(), usersTbl.UserName)
	err := u.db.GetContext(ctx, &user, query, userName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (u *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, usersTbl.GetTableName(), usersTbl.ID)
	if _, err := u.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// roleRow carries the JSON-encoded capability list out of the roles table.
type roleRow struct {
	Name         string `db:"name"`
	DisplayName  string `db:"display_name"`
	Capabilities []byte `db:"capabilities"`
}

func (u *userRepo) GetRole(ctx context.Context, name string) (*domain.Role, error) {
	var row roleRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, roleColumns, rolesTbl.TableName(), rolesTbl.Name)
	err := u.db.GetContext(ctx, &row, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToRole(row)
}

func (u *userRepo) SaveRole(ctx context.Context, role *domain.Role) error {
	caps, err := json.Marshal(role.Capabilities)
	if err != nil {
		return fmt.Errorf("failed to marshal capabilities: %w", err)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET
			%[4]s = EXCLUDED.%[4]s,
			%[5]s = EXCLUDED.%[5]s
	`, rolesTbl.TableName(), roleColumns, rolesTbl.Name, rolesTbl.DisplayName, rolesTbl.Capabilities)
	if _, err := u.db.ExecContext(ctx, query, role.Name, role.DisplayName, caps); err != nil {
		u.logger.Error("Failed to save role", "role", role.Name, "error", err)
		return fmt.Errorf("failed to save role: %w", err)
	}
	return nil
}

func (u *userRepo) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	var rows []roleRow
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, roleColumns, rolesTbl.TableName(), rolesTbl.Name)
	if err := u.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	roles := make([]*domain.Role, 0, len(rows))
	for _, row := range rows {
		role, err := rowToRole(row)
		if err != nil {
			u.logger.Warn("Skipping role with bad capabilities", "role", row.Name, "error", err)
			continue
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func rowToRole(row roleRow) (*domain.Role, error) {
	role := &domain.Role{
		Name:        row.Name,
		DisplayName: row.DisplayName,
	}
	if len(row.Capabilities) > 0 {
		if err := json.Unmarshal(row.Capabilities, &role.Capabilities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal capabilities: %w", err)
		}
	}
	return role, nil
}
