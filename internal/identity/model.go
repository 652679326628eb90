package identity

import "time"

// Role is the access level attached to an identity.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleSuperadmin Role = "superadmin"
)

// RegisteredUser is an account created through self-registration or by an
// administrator. Passwords are stored as-is: the store mirrors what the
// dashboard UI kept in browser storage, hashing is handled by a different
// boundary.
type RegisteredUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session describes the currently logged-in principal.
type Session struct {
	Username  string
	Role      Role
	LoginTime time.Time
}

// Result reports the outcome of an operation. Expected user-facing failures
// (wrong password, name taken, no session) are values, not errors: the
// accompanying error is reserved for store I/O problems.
type Result struct {
	OK      bool
	Message string
}

// AuthResult is the outcome of Authenticate.
type AuthResult struct {
	OK      bool
	Role    Role
	Message string
}

// CleanupResult reports how many orphaned credentials were removed and how
// many entries remain.
type CleanupResult struct {
	Cleaned   int
	Remaining int
}
