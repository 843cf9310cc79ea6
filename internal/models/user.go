package models

import "time"

// Role enumerates the account roles known to the store.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

// ParseRole converts a raw role token into a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// CanManageInventory reports whether the role may mutate the catalog.
func (r Role) CanManageInventory() bool {
	return r == RoleManager || r == RoleAdmin
}

// User represents a store account.
type User struct {
	ID           int       `db:"id" json:"-"`
	Username     string    `db:"username" json:"username"`
	Name         string    `db:"name" json:"name"`
	Surname      string    `db:"surname" json:"surname"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}
