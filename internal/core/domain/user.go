package domain

// UserRole determines the visibility scope a user has over other users' data.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// User represents an account holder who owns budgets and transactions.
type User struct {
	UserID       string   `json:"userID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Never serialized
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	Department   string   `json:"department,omitempty"`
	Avatar       string   `json:"avatar,omitempty"`
	AuditFields
}

// IsAdmin reports whether the user holds admin authority.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
