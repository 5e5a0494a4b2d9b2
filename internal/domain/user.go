package domain

import "github.com/google/uuid"

type Users struct {
	ID           uuid.UUID `db:"id"`
	UserName     string    `db:"user_name"`
	PasswordHash *string   `db:"password_hash"`
	Email        *string   `db:"email"`
	Role         string    `db:"role"`
	SuperAdmin   bool      `db:"super_admin"`
}

type UsersTable struct {
	ID           string
	UserName     string
	PasswordHash string
	Email        string
	Role         string
	SuperAdmin   string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:           "id",
		UserName:     "user_name",
		PasswordHash: "password_hash",
		Email:        "email",
		Role:         "role",
		SuperAdmin:   "super_admin",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}

// Role groups capabilities under a name. Capabilities are stored as a JSON
// array in the roles table.
type Role struct {
	Name         string   `db:"name"`
	DisplayName  string   `db:"display_name"`
	Capabilities []string `db:"-"`
}

// Can reports whether the role carries the capability.
func (r *Role) Can(capability string) bool {
	for _, c := range r.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type RoleTable struct {
	Name         string
	DisplayName  string
	Capabilities string
}

func GetRoleTable() RoleTable {
	return RoleTable{
		Name:         "name",
		DisplayName:  "display_name",
		Capabilities: "capabilities",
	}
}

func (RoleTable) TableName() string {
	return "roles"
}
