package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AdminUserID is the reserved numeric id of the configuration-supplied
// super-admin, which has no row in the users table.
const AdminUserID int64 = 0

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Not exposed
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal is the resolved identity of a request's caller. It is rebuilt on
// every request from the token plus (for store-backed users) a fresh row
// read, so role changes take effect without re-issuing tokens.
type Principal struct {
	ID    int64  `json:"id"`
	Name  string `json:"username"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
